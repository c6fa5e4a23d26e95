package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	apptdomain "github.com/redbarber/pos/internal/appointment/domain"
	auditdomain "github.com/redbarber/pos/internal/audit/domain"
	catalogdomain "github.com/redbarber/pos/internal/catalog/domain"
	"github.com/redbarber/pos/internal/clock"
	"github.com/redbarber/pos/internal/commission"
	"github.com/redbarber/pos/internal/observability/metrics"
	"github.com/redbarber/pos/internal/pricing"
	promodomain "github.com/redbarber/pos/internal/promotion/domain"
	saledomain "github.com/redbarber/pos/internal/sale/domain"
	workerdomain "github.com/redbarber/pos/internal/worker/domain"
	"github.com/redbarber/pos/pkg/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Metrics      *metrics.Metrics
	Resolver     *pricing.Resolver
	Repo         saledomain.Repository
	Workers      workerdomain.Repository
	Services     catalogdomain.Repository
	Promotions   promodomain.Repository
	Appointments apptdomain.Repository
	Audit        auditdomain.Service
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	metrics      *metrics.Metrics
	resolver     *pricing.Resolver
	repo         saledomain.Repository
	workers      workerdomain.Repository
	services     catalogdomain.Repository
	promotions   promodomain.Repository
	appointments apptdomain.Repository
	audit        auditdomain.Service
}

func New(p Params) saledomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("sale.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		metrics:      p.Metrics,
		resolver:     p.Resolver,
		repo:         p.Repo,
		workers:      p.Workers,
		services:     p.Services,
		promotions:   p.Promotions,
		appointments: p.Appointments,
		audit:        p.Audit,
	}
}

// resolved carries the pipeline output shared by RecordSale and Quote.
type resolved struct {
	service  *catalogdomain.CatalogService
	promo    *promodomain.Promotion
	detail   pricing.Detail
	base     money.Money
	discount money.Money
	total    money.Money
}

func (s *Service) RecordSale(ctx context.Context, req saledomain.RecordSaleRequest) (*saledomain.Response, error) {
	workerID, err := snowflake.ParseString(strings.TrimSpace(req.WorkerID))
	if err != nil {
		return nil, saledomain.ErrWorkerNotFound
	}
	worker, err := s.workers.FindByID(ctx, s.db, workerID.Int64())
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, saledomain.ErrWorkerNotFound
	}

	origin := strings.ToLower(strings.TrimSpace(req.OriginKind))
	if origin != saledomain.OriginAppointment && origin != saledomain.OriginWalkIn {
		return nil, saledomain.ErrInvalidOrigin
	}

	occurredAt, err := s.resolveTimestamp(req.OccurredAt)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	applyPromo := req.ApplyPromo == nil || *req.ApplyPromo

	res, err := s.resolve(ctx, req.ServiceID, occurredAt, quantity, req.ManualPrice, applyPromo)
	if err != nil {
		return nil, err
	}
	if res.detail.Rule == pricing.RuleInactive {
		return nil, saledomain.ErrServiceInactive
	}

	var appointmentID *int64
	if req.AppointmentID != nil && strings.TrimSpace(*req.AppointmentID) != "" {
		parsed, err := snowflake.ParseString(strings.TrimSpace(*req.AppointmentID))
		if err != nil {
			return nil, saledomain.ErrAppointmentNotFound
		}
		appt, err := s.appointments.FindByID(ctx, s.db, parsed.Int64())
		if err != nil {
			return nil, err
		}
		if appt == nil {
			return nil, saledomain.ErrAppointmentNotFound
		}
		id := parsed.Int64()
		appointmentID = &id
	}

	// The rate read here becomes the permanent snapshot. Later edits to
	// the worker's rate must never touch this record.
	commissionAmount, businessAmount := commission.Compute(res.total, worker.CommissionPct)

	sale := &saledomain.Sale{
		ID:                    s.genID.Generate().Int64(),
		OccurredAt:            occurredAt,
		OriginKind:            origin,
		WorkerID:              worker.ID,
		AppointmentID:         appointmentID,
		Quantity:              quantity,
		BasePrice:             res.base,
		DiscountApplied:       res.discount,
		Total:                 res.total,
		CommissionPctSnapshot: worker.CommissionPct,
		CommissionAmount:      commissionAmount,
		BusinessAmount:        businessAmount,
		PricingRule:           res.detail.Rule,
		CreatedAt:             s.clock.Now(),
	}
	if res.service != nil {
		serviceID := res.service.ID
		sale.ServiceID = &serviceID
	}
	if res.promo != nil {
		promoID := res.promo.ID
		sale.PromotionID = &promoID
	}
	if req.Note != nil && strings.TrimSpace(*req.Note) != "" {
		note := strings.TrimSpace(*req.Note)
		sale.Note = &note
	}
	if req.CreatedBy != nil && strings.TrimSpace(*req.CreatedBy) != "" {
		createdBy := strings.TrimSpace(*req.CreatedBy)
		sale.CreatedBy = &createdBy
	}

	// One transaction covers the sale row and the appointment
	// completion, so a failure in either leaves no partial state.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, sale); err != nil {
			return err
		}
		if sale.AppointmentID != nil {
			if err := s.appointments.MarkCompleted(ctx, tx, *sale.AppointmentID, sale.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("sale persistence failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", saledomain.ErrPersistence, err)
	}

	s.metrics.SalesRecorded.Inc()
	if res.promo != nil {
		s.metrics.PromotionsApplied.WithLabelValues(res.promo.Kind).Inc()
	}

	saleID := snowflake.ID(sale.ID).String()
	_ = s.audit.AuditLog(ctx, "sale.recorded", "sale", &saleID, map[string]any{
		"worker_id":    snowflake.ID(sale.WorkerID).String(),
		"origin_kind":  sale.OriginKind,
		"total":        sale.Total.String(),
		"pricing_rule": sale.PricingRule,
	})

	resp := s.toResponse(sale)
	return &resp, nil
}

func (s *Service) Quote(ctx context.Context, req saledomain.QuoteRequest) (*saledomain.QuoteResponse, error) {
	serviceID := strings.TrimSpace(req.ServiceID)
	if serviceID == "" {
		return nil, saledomain.ErrServiceNotFound
	}

	occurredAt, err := s.resolveTimestamp(req.OccurredAt)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	applyPromo := req.ApplyPromo == nil || *req.ApplyPromo

	res, err := s.resolve(ctx, &serviceID, occurredAt, quantity, req.ManualPrice, applyPromo)
	if err != nil {
		return nil, err
	}

	resp := &saledomain.QuoteResponse{
		ServiceID:       snowflake.ID(res.service.ID).String(),
		PricingRule:     res.detail.Rule,
		Quantity:        quantity,
		BasePrice:       res.base.String(),
		DiscountApplied: res.discount.String(),
		Total:           res.total.String(),
	}
	if res.promo != nil {
		promoID := snowflake.ID(res.promo.ID).String()
		resp.PromotionID = &promoID
	}

	if req.WorkerID != nil && strings.TrimSpace(*req.WorkerID) != "" {
		workerID, err := snowflake.ParseString(strings.TrimSpace(*req.WorkerID))
		if err != nil {
			return nil, saledomain.ErrWorkerNotFound
		}
		worker, err := s.workers.FindByID(ctx, s.db, workerID.Int64())
		if err != nil {
			return nil, err
		}
		if worker == nil {
			return nil, saledomain.ErrWorkerNotFound
		}
		commissionAmount, businessAmount := commission.Compute(res.total, worker.CommissionPct)
		pct := worker.CommissionPct.String()
		commissionStr := commissionAmount.String()
		businessStr := businessAmount.String()
		resp.CommissionPct = &pct
		resp.CommissionAmount = &commissionStr
		resp.BusinessAmount = &businessStr
	}

	s.metrics.QuotesResolved.WithLabelValues(res.detail.Rule).Inc()
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*saledomain.Response, error) {
	saleID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, saledomain.ErrInvalidID
	}

	sale, err := s.repo.FindByID(ctx, s.db, saleID.Int64())
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, saledomain.ErrNotFound
	}

	resp := s.toResponse(sale)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req saledomain.ListRequest) ([]saledomain.Response, error) {
	filter := saledomain.ListFilter{
		OriginKind: strings.TrimSpace(req.OriginKind),
		SortBy:     strings.TrimSpace(req.SortBy),
		OrderBy:    strings.TrimSpace(req.OrderBy),
	}

	if workerID := strings.TrimSpace(req.WorkerID); workerID != "" {
		parsed, err := snowflake.ParseString(workerID)
		if err != nil {
			return nil, saledomain.ErrWorkerNotFound
		}
		id := parsed.Int64()
		filter.WorkerID = &id
	}
	if req.From != nil && strings.TrimSpace(*req.From) != "" {
		from, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.From))
		if err != nil {
			return nil, saledomain.ErrInvalidTimestamp
		}
		fromUTC := from.UTC()
		filter.From = &fromUTC
	}
	if req.To != nil && strings.TrimSpace(*req.To) != "" {
		to, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.To))
		if err != nil {
			return nil, saledomain.ErrInvalidTimestamp
		}
		toUTC := to.UTC()
		filter.To = &toUTC
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]saledomain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, s.toResponse(&item))
	}
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	saleID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return saledomain.ErrInvalidID
	}

	sale, err := s.repo.FindByID(ctx, s.db, saleID.Int64())
	if err != nil {
		return err
	}
	if sale == nil {
		return saledomain.ErrNotFound
	}

	// Only the sale row goes away. A linked appointment remains
	// completed; there is no recomputation and no reopening.
	if err := s.repo.Delete(ctx, s.db, sale.ID); err != nil {
		return fmt.Errorf("%w: %v", saledomain.ErrPersistence, err)
	}

	s.metrics.SalesDeleted.Inc()

	deletedID := snowflake.ID(sale.ID).String()
	_ = s.audit.AuditLog(ctx, "sale.deleted", "sale", &deletedID, map[string]any{
		"total": sale.Total.String(),
	})
	return nil
}

// resolve loads the optional service, prices it for the timestamp, and
// applies at most one promotion.
func (s *Service) resolve(ctx context.Context, serviceID *string, occurredAt time.Time, quantity int, manualPrice *string, applyPromo bool) (resolved, error) {
	if quantity <= 0 {
		return resolved{}, saledomain.ErrInvalidQuantity
	}

	var manual *money.Money
	if manualPrice != nil && strings.TrimSpace(*manualPrice) != "" {
		parsed, err := money.FromString(strings.TrimSpace(*manualPrice))
		if err != nil || parsed.IsNegative() {
			return resolved{}, saledomain.ErrInvalidPrice
		}
		manual = &parsed
	}

	if serviceID == nil || strings.TrimSpace(*serviceID) == "" {
		// Service-less sales are priced entirely by hand.
		if manual == nil {
			return resolved{}, saledomain.ErrMissingManualPrice
		}
		base := manual.MulInt(quantity)
		return resolved{
			detail:   pricing.Detail{Rule: pricing.RuleNone, UnitBase: *manual, Quantity: quantity},
			base:     base,
			discount: money.Zero(),
			total:    base,
		}, nil
	}

	parsed, err := snowflake.ParseString(strings.TrimSpace(*serviceID))
	if err != nil {
		return resolved{}, saledomain.ErrServiceNotFound
	}
	svc, err := s.services.FindByID(ctx, s.db, parsed.Int64())
	if err != nil {
		return resolved{}, err
	}
	if svc == nil {
		return resolved{}, saledomain.ErrServiceNotFound
	}

	base, detail, err := s.resolver.Resolve(svc, occurredAt, quantity, manual)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrMissingManualPrice):
			return resolved{}, saledomain.ErrMissingManualPrice
		case errors.Is(err, pricing.ErrInvalidQuantity):
			return resolved{}, saledomain.ErrInvalidQuantity
		default:
			return resolved{}, err
		}
	}

	out := resolved{
		service:  svc,
		detail:   detail,
		base:     base,
		discount: money.Zero(),
		total:    base,
	}

	if applyPromo && detail.Rule != pricing.RuleInactive {
		candidates, err := s.promotions.ListCandidates(ctx, s.db, svc.ID)
		if err != nil {
			return resolved{}, err
		}
		if promo := promodomain.Match(candidates, svc.ID, occurredAt); promo != nil {
			total, discount := pricing.ApplyDiscount(base, promo)
			out.promo = promo
			out.total = total
			out.discount = discount
		}
	}

	return out, nil
}

func (s *Service) resolveTimestamp(raw *string) (time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return s.clock.Now(), nil
	}
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(*raw))
	if err != nil {
		return time.Time{}, saledomain.ErrInvalidTimestamp
	}
	return parsed.UTC(), nil
}

func (s *Service) toResponse(sale *saledomain.Sale) saledomain.Response {
	resp := saledomain.Response{
		ID:                    snowflake.ID(sale.ID).String(),
		OccurredAt:            sale.OccurredAt,
		OriginKind:            sale.OriginKind,
		WorkerID:              snowflake.ID(sale.WorkerID).String(),
		Quantity:              sale.Quantity,
		BasePrice:             sale.BasePrice.String(),
		DiscountApplied:       sale.DiscountApplied.String(),
		Total:                 sale.Total.String(),
		CommissionPctSnapshot: sale.CommissionPctSnapshot.String(),
		CommissionAmount:      sale.CommissionAmount.String(),
		BusinessAmount:        sale.BusinessAmount.String(),
		PricingRule:           sale.PricingRule,
		Note:                  sale.Note,
		CreatedBy:             sale.CreatedBy,
		CreatedAt:             sale.CreatedAt,
	}
	if sale.ServiceID != nil {
		serviceID := snowflake.ID(*sale.ServiceID).String()
		resp.ServiceID = &serviceID
	}
	if sale.AppointmentID != nil {
		appointmentID := snowflake.ID(*sale.AppointmentID).String()
		resp.AppointmentID = &appointmentID
	}
	if sale.PromotionID != nil {
		promotionID := snowflake.ID(*sale.PromotionID).String()
		resp.PromotionID = &promotionID
	}
	return resp
}
