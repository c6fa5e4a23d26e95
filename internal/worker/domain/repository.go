package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, worker *Worker) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Worker, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Worker, error)
	Update(ctx context.Context, db *gorm.DB, worker *Worker) error
}
