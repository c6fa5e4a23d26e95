package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/redbarber/pos/internal/appointment"
	"github.com/redbarber/pos/internal/audit"
	"github.com/redbarber/pos/internal/catalog"
	"github.com/redbarber/pos/internal/clock"
	"github.com/redbarber/pos/internal/config"
	"github.com/redbarber/pos/internal/migration"
	"github.com/redbarber/pos/internal/observability"
	"github.com/redbarber/pos/internal/pricing"
	"github.com/redbarber/pos/internal/promotion"
	"github.com/redbarber/pos/internal/providers/pdf"
	"github.com/redbarber/pos/internal/ratelimit"
	"github.com/redbarber/pos/internal/sale"
	"github.com/redbarber/pos/internal/server"
	"github.com/redbarber/pos/internal/worker"
	"github.com/redbarber/pos/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		catalog.Module,
		worker.Module,
		promotion.Module,
		appointment.Module,
		pricing.Module,
		sale.Module,
		audit.Module,
		ratelimit.Module,
		pdf.Module,

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterAPIRoutes()
		}),
		fx.Invoke(server.RunHTTP),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
