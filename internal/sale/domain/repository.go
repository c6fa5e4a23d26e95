package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ListFilter struct {
	WorkerID   *int64
	OriginKind string
	From       *time.Time
	To         *time.Time
	SortBy     string
	OrderBy    string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sale *Sale) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Sale, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Sale, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}
