package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/redbarber/pos/internal/appointment/domain"
	"github.com/redbarber/pos/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
	clock clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("appointment.service"),
		repo:  p.Repo,
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	workerID, err := snowflake.ParseString(strings.TrimSpace(req.WorkerID))
	if err != nil {
		return nil, domain.ErrInvalidWorker
	}

	var serviceID *int64
	if req.ServiceID != nil && strings.TrimSpace(*req.ServiceID) != "" {
		parsed, err := snowflake.ParseString(strings.TrimSpace(*req.ServiceID))
		if err != nil {
			return nil, domain.ErrInvalidService
		}
		id := parsed.Int64()
		serviceID = &id
	}

	customer := strings.TrimSpace(req.CustomerName)
	if customer == "" {
		return nil, domain.ErrInvalidCustomer
	}

	scheduledAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.ScheduledAt))
	if err != nil {
		return nil, domain.ErrInvalidSchedule
	}

	var note *string
	if req.Note != nil {
		trimmed := strings.TrimSpace(*req.Note)
		if trimmed != "" {
			note = &trimmed
		}
	}

	now := s.clock.Now()
	appt := &domain.Appointment{
		ID:           s.genID.Generate().Int64(),
		WorkerID:     workerID.Int64(),
		ServiceID:    serviceID,
		CustomerName: customer,
		ScheduledAt:  scheduledAt.UTC(),
		Status:       domain.StatusScheduled,
		Note:         note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, s.db, appt); err != nil {
		return nil, err
	}

	resp := s.toResponse(appt)
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
	apptID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, apptID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) MarkCompleted(ctx context.Context, id string) (*domain.Response, error) {
	apptID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, apptID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if item.Status != domain.StatusCompleted {
		if err := s.repo.MarkCompleted(ctx, s.db, item.ID, s.clock.Now()); err != nil {
			return nil, err
		}
		item, err = s.repo.FindByID(ctx, s.db, apptID.Int64())
		if err != nil {
			return nil, err
		}
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) Cancel(ctx context.Context, id string) (*domain.Response, error) {
	apptID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, apptID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.Status == domain.StatusCompleted {
		return nil, domain.ErrAlreadyClosed
	}

	now := s.clock.Now()
	if err := s.repo.UpdateStatus(ctx, s.db, item.ID, domain.StatusCancelled, now); err != nil {
		return nil, err
	}
	item.Status = domain.StatusCancelled
	item.UpdatedAt = now

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) toResponse(a *domain.Appointment) domain.Response {
	resp := domain.Response{
		ID:           snowflake.ID(a.ID).String(),
		WorkerID:     snowflake.ID(a.WorkerID).String(),
		CustomerName: a.CustomerName,
		ScheduledAt:  a.ScheduledAt,
		Status:       a.Status,
		CompletedAt:  a.CompletedAt,
		Note:         a.Note,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if a.ServiceID != nil {
		serviceID := snowflake.ID(*a.ServiceID).String()
		resp.ServiceID = &serviceID
	}
	return resp
}
