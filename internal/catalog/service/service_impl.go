package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/redbarber/pos/internal/catalog/domain"
	"github.com/redbarber/pos/pkg/db"
	"github.com/redbarber/pos/pkg/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:   p.Log.Named("catalog.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	svcType := strings.TrimSpace(req.Type)
	if svcType == "" {
		return nil, domain.ErrInvalidType
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = slug.Make(name)
	} else {
		code = slug.Make(code)
	}

	freeAmount := req.FreeAmount != nil && *req.FreeAmount

	var basePrice *money.Money
	if !freeAmount {
		if req.BasePrice == nil {
			return nil, domain.ErrMissingPrice
		}
		parsed, err := money.FromString(strings.TrimSpace(*req.BasePrice))
		if err != nil || parsed.IsNegative() {
			return nil, domain.ErrInvalidPrice
		}
		basePrice = &parsed
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	svc := &domain.CatalogService{
		ID:         s.genID.Generate().Int64(),
		Code:       code,
		Name:       name,
		Type:       svcType,
		BasePrice:  basePrice,
		FreeAmount: freeAmount,
		Active:     active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Metadata != nil {
		svc.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.Create(ctx, s.db, svc); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateCode
		}
		return nil, err
	}

	resp := s.toResponse(svc)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	filter := domain.ListRequest{
		Type:    strings.TrimSpace(req.Type),
		Active:  req.Active,
		SortBy:  strings.TrimSpace(req.SortBy),
		OrderBy: strings.TrimSpace(req.OrderBy),
	}

	items, err := s.repo.List(ctx, s.db, filter)
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
	svcID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, svcID.Int64())
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
	svcID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, svcID.Int64())
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Type != nil {
		svcType := strings.TrimSpace(*req.Type)
		if svcType == "" {
			return nil, domain.ErrInvalidType
		}
		item.Type = svcType
	}
	if req.BasePrice != nil {
		if item.FreeAmount {
			return nil, domain.ErrInvalidPrice
		}
		parsed, err := money.FromString(strings.TrimSpace(*req.BasePrice))
		if err != nil || parsed.IsNegative() {
			return nil, domain.ErrInvalidPrice
		}
		item.BasePrice = &parsed
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if req.Metadata != nil {
		item.Metadata = datatypes.JSONMap(req.Metadata)
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) Archive(ctx context.Context, id string) (*domain.Response, error) {
	svcID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, svcID.Int64())
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

func (s *Service) toResponse(svc *domain.CatalogService) domain.Response {
	resp := domain.Response{
		ID:         snowflake.ID(svc.ID).String(),
		Code:       svc.Code,
		Name:       svc.Name,
		Type:       svc.Type,
		FreeAmount: svc.FreeAmount,
		Active:     svc.Active,
		CreatedAt:  svc.CreatedAt,
		UpdatedAt:  svc.UpdatedAt,
	}
	if svc.BasePrice != nil {
		price := svc.BasePrice.String()
		resp.BasePrice = &price
	}
	if len(svc.Metadata) > 0 {
		resp.Metadata = map[string]any(svc.Metadata)
	}
	return resp
}
