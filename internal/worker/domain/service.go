package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Archive(ctx context.Context, id string) (*Response, error)
}

type ListRequest struct {
	Type    string
	Active  *bool
	SortBy  string
	OrderBy string
}

type CreateRequest struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	CommissionPct string `json:"commission_pct"`
	Active        *bool  `json:"active"`
}

type UpdateRequest struct {
	ID            string  `json:"-"`
	Name          *string `json:"name"`
	Type          *string `json:"type"`
	CommissionPct *string `json:"commission_pct"`
	Active        *bool   `json:"active"`
}

type Response struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	CommissionPct string    `json:"commission_pct"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var (
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidCommission = errors.New("invalid_commission")
	ErrNotFound          = errors.New("not_found")
	ErrInvalidID         = errors.New("invalid_id")
)
