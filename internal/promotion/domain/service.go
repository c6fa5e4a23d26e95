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
	// FindApplicable returns the promotion Match would pick for the
	// service at ts, or nil when none applies.
	FindApplicable(ctx context.Context, serviceID string, ts time.Time) (*Response, error)
}

type ListRequest struct {
	ServiceID string
	Active    *bool
	SortBy    string
	OrderBy   string
}

type CreateRequest struct {
	ServiceID  string   `json:"service_id"`
	Kind       string   `json:"kind"`
	Value      string   `json:"value"`
	FinalPrice *string  `json:"final_price"`
	StartDate  *string  `json:"start_date"`
	EndDate    *string  `json:"end_date"`
	Weekdays   []string `json:"weekdays"`
	StartTime  *string  `json:"start_time"`
	EndTime    *string  `json:"end_time"`
	Active     *bool    `json:"active"`
}

type UpdateRequest struct {
	ID         string   `json:"-"`
	Value      *string  `json:"value"`
	FinalPrice *string  `json:"final_price"`
	StartDate  *string  `json:"start_date"`
	EndDate    *string  `json:"end_date"`
	Weekdays   []string `json:"weekdays"`
	StartTime  *string  `json:"start_time"`
	EndTime    *string  `json:"end_time"`
	Active     *bool    `json:"active"`
}

type Response struct {
	ID         string    `json:"id"`
	ServiceID  string    `json:"service_id"`
	Kind       string    `json:"kind"`
	Value      string    `json:"value"`
	FinalPrice *string   `json:"final_price,omitempty"`
	StartDate  *string   `json:"start_date,omitempty"`
	EndDate    *string   `json:"end_date,omitempty"`
	Weekdays   []string  `json:"weekdays"`
	StartTime  *string   `json:"start_time,omitempty"`
	EndTime    *string   `json:"end_time,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var (
	ErrInvalidService = errors.New("invalid_service")
	ErrInvalidKind    = errors.New("invalid_kind")
	ErrInvalidValue   = errors.New("invalid_value")
	ErrInvalidDate    = errors.New("invalid_date")
	ErrInvalidTime    = errors.New("invalid_time")
	ErrInvalidWeekday = errors.New("invalid_weekday")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidID      = errors.New("invalid_id")
)
