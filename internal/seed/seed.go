package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/redbarber/pos/internal/catalog/domain"
	promodomain "github.com/redbarber/pos/internal/promotion/domain"
	workerdomain "github.com/redbarber/pos/internal/worker/domain"
	"github.com/redbarber/pos/pkg/money"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EnsureDemoData seeds a small roster, the standard service catalog and
// one sample promotion. It is a no-op when services already exist, so
// restarting with SEED_DEMO_DATA on never duplicates rows.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.CatalogService{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()

		adultCut := money.MustFromString("180.00")
		childCut := money.MustFromString("140.00")
		beardTrim := money.MustFromString("90.00")

		services := []catalogdomain.CatalogService{
			{ID: node.Generate().Int64(), Code: "adult-cut", Name: "Adult cut", Type: "adult-cut", BasePrice: &adultCut, Active: true, CreatedAt: now, UpdatedAt: now},
			{ID: node.Generate().Int64(), Code: "child-cut", Name: "Child cut", Type: "child-cut", BasePrice: &childCut, Active: true, CreatedAt: now, UpdatedAt: now},
			{ID: node.Generate().Int64(), Code: "beard-trim", Name: "Beard trim", Type: "beard-trim", BasePrice: &beardTrim, Active: true, CreatedAt: now, UpdatedAt: now},
			{ID: node.Generate().Int64(), Code: "open-amount", Name: "Open amount", Type: "other", FreeAmount: true, Active: true, CreatedAt: now, UpdatedAt: now},
		}
		if err := tx.Create(&services).Error; err != nil {
			return err
		}

		workers := []workerdomain.Worker{
			{ID: node.Generate().Int64(), Name: "Marta", Type: "barber", CommissionPct: decimal.NewFromInt(40), Active: true, CreatedAt: now, UpdatedAt: now},
			{ID: node.Generate().Int64(), Name: "Jonas", Type: "barber", CommissionPct: decimal.NewFromInt(50), Active: true, CreatedAt: now, UpdatedAt: now},
		}
		if err := tx.Create(&workers).Error; err != nil {
			return err
		}

		promo := promodomain.Promotion{
			ID:        node.Generate().Int64(),
			ServiceID: services[2].ID,
			Kind:      promodomain.KindPercentage,
			Value:     decimal.NewFromInt(20),
			Friday:    true,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Create(&promo).Error
	})
}
