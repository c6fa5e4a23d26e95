package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, svc *CatalogService) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*CatalogService, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*CatalogService, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]CatalogService, error)
	Update(ctx context.Context, db *gorm.DB, svc *CatalogService) error
}
