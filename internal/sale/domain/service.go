package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	// RecordSale runs the full pipeline: resolve price, match and apply
	// at most one promotion, split commission, persist the frozen
	// snapshot, and complete the originating appointment if any.
	RecordSale(ctx context.Context, req RecordSaleRequest) (*Response, error)
	// Quote runs the same pipeline without persisting anything.
	Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	// Delete removes the sale row only. A linked appointment stays
	// completed.
	Delete(ctx context.Context, id string) error
}

type RecordSaleRequest struct {
	WorkerID      string  `json:"worker_id"`
	OriginKind    string  `json:"origin_kind"`
	ServiceID     *string `json:"service_id"`
	AppointmentID *string `json:"appointment_id"`
	OccurredAt    *string `json:"occurred_at"`
	ApplyPromo    *bool   `json:"apply_promo"`
	ManualPrice   *string `json:"manual_price"`
	Quantity      int     `json:"quantity"`
	Note          *string `json:"note"`
	CreatedBy     *string `json:"created_by"`
}

type QuoteRequest struct {
	WorkerID    *string `json:"worker_id"`
	ServiceID   string  `json:"service_id"`
	OccurredAt  *string `json:"occurred_at"`
	ApplyPromo  *bool   `json:"apply_promo"`
	ManualPrice *string `json:"manual_price"`
	Quantity    int     `json:"quantity"`
}

type ListRequest struct {
	WorkerID   string
	OriginKind string
	From       *string
	To         *string
	SortBy     string
	OrderBy    string
}

type Response struct {
	ID            string    `json:"id"`
	OccurredAt    time.Time `json:"occurred_at"`
	OriginKind    string    `json:"origin_kind"`
	WorkerID      string    `json:"worker_id"`
	ServiceID     *string   `json:"service_id,omitempty"`
	AppointmentID *string   `json:"appointment_id,omitempty"`
	PromotionID   *string   `json:"promotion_id,omitempty"`
	Quantity      int       `json:"quantity"`

	BasePrice             string `json:"base_price"`
	DiscountApplied       string `json:"discount_applied"`
	Total                 string `json:"total"`
	CommissionPctSnapshot string `json:"commission_pct_snapshot"`
	CommissionAmount      string `json:"commission_amount"`
	BusinessAmount        string `json:"business_amount"`

	PricingRule string    `json:"pricing_rule"`
	Note        *string   `json:"note,omitempty"`
	CreatedBy   *string   `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type QuoteResponse struct {
	ServiceID        string  `json:"service_id"`
	PricingRule      string  `json:"pricing_rule"`
	Quantity         int     `json:"quantity"`
	BasePrice        string  `json:"base_price"`
	PromotionID      *string `json:"promotion_id,omitempty"`
	DiscountApplied  string  `json:"discount_applied"`
	Total            string  `json:"total"`
	CommissionPct    *string `json:"commission_pct,omitempty"`
	CommissionAmount *string `json:"commission_amount,omitempty"`
	BusinessAmount   *string `json:"business_amount,omitempty"`
}

var (
	ErrWorkerNotFound      = errors.New("worker_not_found")
	ErrServiceNotFound     = errors.New("service_not_found")
	ErrAppointmentNotFound = errors.New("appointment_not_found")
	ErrServiceInactive     = errors.New("service_inactive")
	ErrInvalidOrigin       = errors.New("invalid_origin")
	ErrInvalidTimestamp    = errors.New("invalid_timestamp")
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrMissingManualPrice  = errors.New("missing_manual_price")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
	ErrPersistence         = errors.New("persistence_failure")
	ErrNotFound            = errors.New("not_found")
	ErrInvalidID           = errors.New("invalid_id")
)
