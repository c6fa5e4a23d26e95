package migration

import (
	apptdomain "github.com/redbarber/pos/internal/appointment/domain"
	auditdomain "github.com/redbarber/pos/internal/audit/domain"
	catalogdomain "github.com/redbarber/pos/internal/catalog/domain"
	"github.com/redbarber/pos/internal/config"
	promodomain "github.com/redbarber/pos/internal/promotion/domain"
	saledomain "github.com/redbarber/pos/internal/sale/domain"
	"github.com/redbarber/pos/internal/seed"
	workerdomain "github.com/redbarber/pos/internal/worker/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(
				&catalogdomain.CatalogService{},
				&workerdomain.Worker{},
				&promodomain.Promotion{},
				&apptdomain.Appointment{},
				&saledomain.Sale{},
				&auditdomain.AuditLog{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoData(conn)
		}
		return nil
	}),
)
