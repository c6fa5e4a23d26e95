package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func promoAt(id, serviceID int64, createdAt time.Time, mutate func(*Promotion)) Promotion {
	p := Promotion{
		ID:        id,
		ServiceID: serviceID,
		Kind:      KindPercentage,
		Value:     decimal.NewFromInt(10),
		Active:    true,
		CreatedAt: createdAt,
		Monday:    true,
		Tuesday:   true,
		Wednesday: true,
		Thursday:  true,
		Friday:    true,
		Saturday:  true,
		Sunday:    true,
	}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func strPtr(s string) *string { return &s }

// 2025-06-06 is a Friday.
var friday10am = time.Date(2025, 6, 6, 10, 0, 0, 0, time.UTC)

func TestMatchReturnsNilWithoutCandidates(t *testing.T) {
	assert.Nil(t, Match(nil, 1, friday10am))
}

func TestMatchSkipsInactive(t *testing.T) {
	promos := []Promotion{
		promoAt(1, 1, friday10am.Add(-time.Hour), func(p *Promotion) { p.Active = false }),
	}
	assert.Nil(t, Match(promos, 1, friday10am))
}

func TestMatchSkipsOtherService(t *testing.T) {
	promos := []Promotion{promoAt(1, 2, friday10am.Add(-time.Hour), nil)}
	assert.Nil(t, Match(promos, 1, friday10am))
}

func TestMatchRequiresWeekdayFlag(t *testing.T) {
	// Date range and time window match, but Friday is off.
	promos := []Promotion{
		promoAt(1, 1, friday10am.Add(-time.Hour), func(p *Promotion) { p.Friday = false }),
	}
	assert.Nil(t, Match(promos, 1, friday10am))
}

func TestMatchNoWeekdayFlagsNeverMatches(t *testing.T) {
	promos := []Promotion{
		promoAt(1, 1, friday10am.Add(-time.Hour), func(p *Promotion) {
			p.Monday, p.Tuesday, p.Wednesday, p.Thursday = false, false, false, false
			p.Friday, p.Saturday, p.Sunday = false, false, false
		}),
	}
	assert.Nil(t, Match(promos, 1, friday10am))
}

func TestMatchDateRange(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	inRange := promoAt(1, 1, friday10am.Add(-time.Hour), func(p *Promotion) {
		p.StartDate, p.EndDate = &start, &end
	})
	assert.Equal(t, int64(1), Match([]Promotion{inRange}, 1, friday10am).ID)

	expired := promoAt(2, 1, friday10am.Add(-time.Hour), func(p *Promotion) {
		past := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
		p.EndDate = &past
	})
	assert.Nil(t, Match([]Promotion{expired}, 1, friday10am))

	notYet := promoAt(3, 1, friday10am.Add(-time.Hour), func(p *Promotion) {
		future := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
		p.StartDate = &future
	})
	assert.Nil(t, Match([]Promotion{notYet}, 1, friday10am))
}

func TestMatchTimeWindow(t *testing.T) {
	morning := promoAt(1, 1, friday10am.Add(-time.Hour), func(p *Promotion) {
		p.StartTime, p.EndTime = strPtr("09:00"), strPtr("12:00")
	})
	assert.Equal(t, int64(1), Match([]Promotion{morning}, 1, friday10am).ID)

	evening := promoAt(2, 1, friday10am.Add(-time.Hour), func(p *Promotion) {
		p.StartTime, p.EndTime = strPtr("18:00"), strPtr("21:00")
	})
	assert.Nil(t, Match([]Promotion{evening}, 1, friday10am))
}

func TestMatchMostRecentWins(t *testing.T) {
	older := promoAt(1, 1, friday10am.Add(-48*time.Hour), nil)
	newer := promoAt(2, 1, friday10am.Add(-time.Hour), nil)
	got := Match([]Promotion{older, newer}, 1, friday10am)
	assert.Equal(t, int64(2), got.ID)
}

func TestMatchWindowFilterRunsBeforeRecencyRanking(t *testing.T) {
	// The newest candidate has an unsatisfied window; the older one has a
	// satisfied window and must win instead of the newer one blocking it.
	older := promoAt(1, 1, friday10am.Add(-48*time.Hour), func(p *Promotion) {
		p.StartTime, p.EndTime = strPtr("09:00"), strPtr("12:00")
	})
	newer := promoAt(2, 1, friday10am.Add(-time.Hour), func(p *Promotion) {
		p.StartTime, p.EndTime = strPtr("18:00"), strPtr("21:00")
	})
	got := Match([]Promotion{newer, older}, 1, friday10am)
	assert.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
}

func TestMatchNoWindowIsAlwaysTimeEligible(t *testing.T) {
	open := promoAt(1, 1, friday10am.Add(-time.Hour), func(p *Promotion) {
		p.StartTime, p.EndTime = nil, nil
	})
	assert.Equal(t, int64(1), Match([]Promotion{open}, 1, friday10am).ID)
}
