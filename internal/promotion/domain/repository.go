package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, promo *Promotion) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Promotion, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Promotion, error)
	// ListCandidates returns active promotions targeting a service,
	// newest first. Weekday and window checks happen in Match.
	ListCandidates(ctx context.Context, db *gorm.DB, serviceID int64) ([]Promotion, error)
	Update(ctx context.Context, db *gorm.DB, promo *Promotion) error
}
