package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/redbarber/pos/internal/promotion/domain"
	"github.com/redbarber/pos/pkg/money"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("promotion.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	serviceID, err := snowflake.ParseString(strings.TrimSpace(req.ServiceID))
	if err != nil {
		return nil, domain.ErrInvalidService
	}

	kind := strings.ToLower(strings.TrimSpace(req.Kind))
	if kind != domain.KindPercentage && kind != domain.KindFixed {
		return nil, domain.ErrInvalidKind
	}

	value, err := decimal.NewFromString(strings.TrimSpace(req.Value))
	if err != nil || value.IsNegative() {
		return nil, domain.ErrInvalidValue
	}

	var finalPrice *money.Money
	if req.FinalPrice != nil {
		parsed, err := money.FromString(strings.TrimSpace(*req.FinalPrice))
		if err != nil || parsed.IsNegative() {
			return nil, domain.ErrInvalidValue
		}
		finalPrice = &parsed
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, domain.ErrInvalidDate
	}

	startTime, err := parseTime(req.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := parseTime(req.EndTime)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	promo := &domain.Promotion{
		ID:         s.genID.Generate().Int64(),
		ServiceID:  serviceID.Int64(),
		Kind:       kind,
		Value:      value,
		FinalPrice: finalPrice,
		StartDate:  startDate,
		EndDate:    endDate,
		StartTime:  startTime,
		EndTime:    endTime,
		Active:     active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := applyWeekdays(promo, req.Weekdays); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, s.db, promo); err != nil {
		return nil, err
	}

	resp := s.toResponse(promo)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	items, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, s.toResponse(&item))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	promoID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, promoID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	promoID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, promoID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.Value != nil {
		value, err := decimal.NewFromString(strings.TrimSpace(*req.Value))
		if err != nil || value.IsNegative() {
			return nil, domain.ErrInvalidValue
		}
		item.Value = value
	}
	if req.FinalPrice != nil {
		if strings.TrimSpace(*req.FinalPrice) == "" {
			item.FinalPrice = nil
		} else {
			parsed, err := money.FromString(strings.TrimSpace(*req.FinalPrice))
			if err != nil || parsed.IsNegative() {
				return nil, domain.ErrInvalidValue
			}
			item.FinalPrice = &parsed
		}
	}
	if req.StartDate != nil {
		startDate, err := parseDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		item.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		item.EndDate = endDate
	}
	if item.StartDate != nil && item.EndDate != nil && item.EndDate.Before(*item.StartDate) {
		return nil, domain.ErrInvalidDate
	}
	if req.Weekdays != nil {
		clearWeekdays(item)
		if err := applyWeekdays(item, req.Weekdays); err != nil {
			return nil, err
		}
	}
	if req.StartTime != nil {
		startTime, err := parseTime(req.StartTime)
		if err != nil {
			return nil, err
		}
		item.StartTime = startTime
	}
	if req.EndTime != nil {
		endTime, err := parseTime(req.EndTime)
		if err != nil {
			return nil, err
		}
		item.EndTime = endTime
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) Archive(ctx context.Context, id string) (*domain.Response, error) {
	promoID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, promoID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	item.Active = false
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) FindApplicable(ctx context.Context, serviceID string, ts time.Time) (*domain.Response, error) {
	svcID, err := snowflake.ParseString(strings.TrimSpace(serviceID))
	if err != nil {
		return nil, domain.ErrInvalidService
	}

	candidates, err := s.repo.ListCandidates(ctx, s.db, svcID.Int64())
	if err != nil {
		return nil, err
	}

	match := domain.Match(candidates, svcID.Int64(), ts.UTC())
	if match == nil {
		return nil, nil
	}

	resp := s.toResponse(match)
	return &resp, nil
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func applyWeekdays(promo *domain.Promotion, weekdays []string) error {
	for _, raw := range weekdays {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(raw))]
		if !ok {
			return domain.ErrInvalidWeekday
		}
		switch day {
		case time.Monday:
			promo.Monday = true
		case time.Tuesday:
			promo.Tuesday = true
		case time.Wednesday:
			promo.Wednesday = true
		case time.Thursday:
			promo.Thursday = true
		case time.Friday:
			promo.Friday = true
		case time.Saturday:
			promo.Saturday = true
		case time.Sunday:
			promo.Sunday = true
		}
	}
	return nil
}

func clearWeekdays(promo *domain.Promotion) {
	promo.Monday = false
	promo.Tuesday = false
	promo.Wednesday = false
	promo.Thursday = false
	promo.Friday = false
	promo.Saturday = false
	promo.Sunday = false
}

func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(*raw), time.UTC)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	return &parsed, nil
}

func parseTime(raw *string) (*string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if _, err := time.Parse("15:04", value); err != nil {
		return nil, domain.ErrInvalidTime
	}
	return &value, nil
}

func (s *Service) toResponse(p *domain.Promotion) domain.Response {
	resp := domain.Response{
		ID:        snowflake.ID(p.ID).String(),
		ServiceID: snowflake.ID(p.ServiceID).String(),
		Kind:      p.Kind,
		Value:     p.Value.String(),
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.FinalPrice != nil {
		final := p.FinalPrice.String()
		resp.FinalPrice = &final
	}
	if p.StartDate != nil {
		start := p.StartDate.Format("2006-01-02")
		resp.StartDate = &start
	}
	if p.EndDate != nil {
		end := p.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}

	days := make([]string, 0, 7)
	for _, day := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday} {
		if p.AppliesOnWeekday(day) {
			days = append(days, strings.ToLower(day.String()))
		}
	}
	resp.Weekdays = days

	return resp
}
