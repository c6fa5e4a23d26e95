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
	Code       string         `json:"code"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	BasePrice  *string        `json:"base_price"`
	FreeAmount *bool          `json:"free_amount"`
	Active     *bool          `json:"active"`
	Metadata   map[string]any `json:"metadata"`
}

type UpdateRequest struct {
	ID        string         `json:"-"`
	Name      *string        `json:"name"`
	Type      *string        `json:"type"`
	BasePrice *string        `json:"base_price"`
	Active    *bool          `json:"active"`
	Metadata  map[string]any `json:"metadata"`
}

type Response struct {
	ID         string         `json:"id"`
	Code       string         `json:"code"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	BasePrice  *string        `json:"base_price,omitempty"`
	FreeAmount bool           `json:"free_amount"`
	Active     bool           `json:"active"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidType   = errors.New("invalid_type")
	ErrInvalidPrice  = errors.New("invalid_price")
	ErrMissingPrice  = errors.New("missing_price")
	ErrDuplicateCode = errors.New("duplicate_code")
	ErrNotFound      = errors.New("not_found")
	ErrInvalidID     = errors.New("invalid_id")
)
