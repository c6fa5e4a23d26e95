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
	MarkCompleted(ctx context.Context, id string) (*Response, error)
	Cancel(ctx context.Context, id string) (*Response, error)
}

type ListRequest struct {
	WorkerID string
	Status   string
	SortBy   string
	OrderBy  string
}

type CreateRequest struct {
	WorkerID     string  `json:"worker_id"`
	ServiceID    *string `json:"service_id"`
	CustomerName string  `json:"customer_name"`
	ScheduledAt  string  `json:"scheduled_at"`
	Note         *string `json:"note"`
}

type Response struct {
	ID           string     `json:"id"`
	WorkerID     string     `json:"worker_id"`
	ServiceID    *string    `json:"service_id,omitempty"`
	CustomerName string     `json:"customer_name"`
	ScheduledAt  time.Time  `json:"scheduled_at"`
	Status       string     `json:"status"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Note         *string    `json:"note,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

var (
	ErrInvalidWorker   = errors.New("invalid_worker")
	ErrInvalidService  = errors.New("invalid_service")
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrInvalidSchedule = errors.New("invalid_schedule")
	ErrAlreadyClosed   = errors.New("appointment_closed")
	ErrNotFound        = errors.New("not_found")
	ErrInvalidID       = errors.New("invalid_id")
)
