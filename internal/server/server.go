package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	apptdomain "github.com/redbarber/pos/internal/appointment/domain"
	auditdomain "github.com/redbarber/pos/internal/audit/domain"
	catalogdomain "github.com/redbarber/pos/internal/catalog/domain"
	"github.com/redbarber/pos/internal/config"
	"github.com/redbarber/pos/internal/observability"
	obsmiddleware "github.com/redbarber/pos/internal/observability/logger"
	obsmetrics "github.com/redbarber/pos/internal/observability/metrics"
	"github.com/redbarber/pos/internal/providers/pdf"
	promodomain "github.com/redbarber/pos/internal/promotion/domain"
	"github.com/redbarber/pos/internal/ratelimit"
	saledomain "github.com/redbarber/pos/internal/sale/domain"
	workerdomain "github.com/redbarber/pos/internal/worker/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewEngine(obsCfg observability.Config, m *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(m.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	return r
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node

	catalogSvc     catalogdomain.Service
	workerSvc      workerdomain.Service
	promotionSvc   promodomain.Service
	appointmentSvc apptdomain.Service
	saleSvc        saledomain.Service
	auditSvc       auditdomain.Service

	receipts    pdf.Provider
	saleLimiter *ratelimit.SaleLimiter
}

type ServerParams struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node

	CatalogSvc     catalogdomain.Service
	WorkerSvc      workerdomain.Service
	PromotionSvc   promodomain.Service
	AppointmentSvc apptdomain.Service
	SaleSvc        saledomain.Service
	AuditSvc       auditdomain.Service

	Receipts    pdf.Provider
	SaleLimiter *ratelimit.SaleLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		log:            p.Log.Named("http.server"),
		genID:          p.GenID,
		catalogSvc:     p.CatalogSvc,
		workerSvc:      p.WorkerSvc,
		promotionSvc:   p.PromotionSvc,
		appointmentSvc: p.AppointmentSvc,
		saleSvc:        p.SaleSvc,
		auditSvc:       p.AuditSvc,
		receipts:       p.Receipts,
		saleLimiter:    p.SaleLimiter,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api")

	services := api.Group("/services")
	{
		services.POST("", s.CreateService)
		services.GET("", s.ListServices)
		services.GET("/:id", s.GetService)
		services.PATCH("/:id", s.UpdateService)
		services.DELETE("/:id", s.ArchiveService)
	}

	workers := api.Group("/workers")
	{
		workers.POST("", s.CreateWorker)
		workers.GET("", s.ListWorkers)
		workers.GET("/:id", s.GetWorker)
		workers.PATCH("/:id", s.UpdateWorker)
		workers.DELETE("/:id", s.ArchiveWorker)
	}

	promotions := api.Group("/promotions")
	{
		promotions.POST("", s.CreatePromotion)
		promotions.GET("", s.ListPromotions)
		promotions.GET("/applicable", s.FindApplicablePromotion)
		promotions.GET("/:id", s.GetPromotion)
		promotions.PATCH("/:id", s.UpdatePromotion)
		promotions.DELETE("/:id", s.ArchivePromotion)
	}

	appointments := api.Group("/appointments")
	{
		appointments.POST("", s.CreateAppointment)
		appointments.GET("", s.ListAppointments)
		appointments.GET("/:id", s.GetAppointment)
		appointments.POST("/:id/complete", s.CompleteAppointment)
		appointments.POST("/:id/cancel", s.CancelAppointment)
	}

	sales := api.Group("/sales")
	{
		sales.POST("", s.RecordSale)
		sales.GET("", s.ListSales)
		sales.GET("/:id", s.GetSale)
		sales.GET("/:id/receipt", s.SaleReceipt)
		sales.DELETE("/:id", s.DeleteSale)
	}

	api.POST("/quotes", s.QuoteSale)
	api.GET("/audit-logs", s.ListAuditLogs)
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
