package domain

import "time"

// Match selects the single promotion applicable to a service at ts.
//
// Hard predicate: active, targets the service, date range contains the
// date, the weekday flag for ts is set. Candidates that define a time
// window must also contain the clock time. Window eligibility is decided
// before ranking; the most recently created eligible promotion wins.
// Returns nil when nothing qualifies.
func Match(candidates []Promotion, serviceID int64, ts time.Time) *Promotion {
	var best *Promotion
	for i := range candidates {
		p := &candidates[i]
		if !p.Active || p.ServiceID != serviceID {
			continue
		}
		if !p.InDateRange(ts) {
			continue
		}
		if !p.AppliesOnWeekday(ts.Weekday()) {
			continue
		}
		if !p.InTimeWindow(ts) {
			continue
		}
		if best == nil || p.CreatedAt.After(best.CreatedAt) {
			best = p
		}
	}
	return best
}
