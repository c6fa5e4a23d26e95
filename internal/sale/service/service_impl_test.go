package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	apptdomain "github.com/redbarber/pos/internal/appointment/domain"
	apptrepository "github.com/redbarber/pos/internal/appointment/repository"
	auditdomain "github.com/redbarber/pos/internal/audit/domain"
	auditrepository "github.com/redbarber/pos/internal/audit/repository"
	auditservice "github.com/redbarber/pos/internal/audit/service"
	catalogdomain "github.com/redbarber/pos/internal/catalog/domain"
	catalogrepository "github.com/redbarber/pos/internal/catalog/repository"
	"github.com/redbarber/pos/internal/clock"
	"github.com/redbarber/pos/internal/config"
	"github.com/redbarber/pos/internal/observability/metrics"
	"github.com/redbarber/pos/internal/pricing"
	promodomain "github.com/redbarber/pos/internal/promotion/domain"
	promorepository "github.com/redbarber/pos/internal/promotion/repository"
	saledomain "github.com/redbarber/pos/internal/sale/domain"
	salerepository "github.com/redbarber/pos/internal/sale/repository"
	workerdomain "github.com/redbarber/pos/internal/worker/domain"
	workerrepository "github.com/redbarber/pos/internal/worker/repository"
	"github.com/redbarber/pos/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 2025-06-06 10:00 UTC is a Friday.
var testNow = time.Date(2025, 6, 6, 10, 0, 0, 0, time.UTC)

type harness struct {
	db    *gorm.DB
	node  *snowflake.Node
	clock *clock.FakeClock
	svc   saledomain.Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&catalogdomain.CatalogService{},
		&workerdomain.Worker{},
		&promodomain.Promotion{},
		&apptdomain.Appointment{},
		&auditdomain.AuditLog{},
		&saledomain.Sale{},
	)
	assert.NoError(t, err)

	node, _ := snowflake.NewNode(1)
	logger := zap.NewNop()
	fake := clock.NewFakeClock(testNow)

	resolver := pricing.NewResolver(pricing.Params{
		Log:    logger,
		Tariff: config.NewStaticTariffHolder(config.DefaultTariffConfig()),
	})

	auditSvc := auditservice.NewService(auditservice.Params{
		DB:    db,
		Log:   logger,
		GenID: node,
		Repo:  auditrepository.Provide(),
	})

	svc := New(Params{
		DB:           db,
		Log:          logger,
		GenID:        node,
		Clock:        fake,
		Metrics:      metrics.New(),
		Resolver:     resolver,
		Repo:         salerepository.Provide(),
		Workers:      workerrepository.Provide(),
		Services:     catalogrepository.Provide(),
		Promotions:   promorepository.Provide(),
		Appointments: apptrepository.Provide(),
		Audit:        auditSvc,
	})

	return &harness{db: db, node: node, clock: fake, svc: svc}
}

func (h *harness) seedWorker(t *testing.T, pct string) *workerdomain.Worker {
	t.Helper()
	w := &workerdomain.Worker{
		ID:            h.node.Generate().Int64(),
		Name:          "Marta",
		Type:          "barber",
		CommissionPct: decimal.RequireFromString(pct),
		Active:        true,
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	}
	assert.NoError(t, h.db.Create(w).Error)
	return w
}

func (h *harness) seedService(t *testing.T, svcType, base string, active bool) *catalogdomain.CatalogService {
	t.Helper()
	price := money.MustFromString(base)
	svc := &catalogdomain.CatalogService{
		ID:        h.node.Generate().Int64(),
		Code:      svcType,
		Name:      svcType,
		Type:      svcType,
		BasePrice: &price,
		Active:    active,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	assert.NoError(t, h.db.Create(svc).Error)
	return svc
}

func (h *harness) seedPromo(t *testing.T, serviceID int64, kind string, value string, createdAt time.Time) *promodomain.Promotion {
	t.Helper()
	p := &promodomain.Promotion{
		ID:        h.node.Generate().Int64(),
		ServiceID: serviceID,
		Kind:      kind,
		Value:     decimal.RequireFromString(value),
		Active:    true,
		Friday:    true,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	assert.NoError(t, h.db.Create(p).Error)
	return p
}

func idStr(id int64) string { return snowflake.ID(id).String() }

func TestRecordSaleWalkInWithPercentagePromo(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	worker := h.seedWorker(t, "40")
	svc := h.seedService(t, "adult-cut", "200.00", true)
	promo := h.seedPromo(t, svc.ID, promodomain.KindPercentage, "10", testNow.Add(-time.Hour))

	serviceID := idStr(svc.ID)
	resp, err := h.svc.RecordSale(ctx, saledomain.RecordSaleRequest{
		WorkerID:   idStr(worker.ID),
		OriginKind: saledomain.OriginWalkIn,
		ServiceID:  &serviceID,
	})
	assert.NoError(t, err)
	assert.Equal(t, "200.00", resp.BasePrice)
	assert.Equal(t, "20.00", resp.DiscountApplied)
	assert.Equal(t, "180.00", resp.Total)
	assert.Equal(t, "40", resp.CommissionPctSnapshot)
	assert.Equal(t, "72.00", resp.CommissionAmount)
	assert.Equal(t, "108.00", resp.BusinessAmount)
	assert.NotNil(t, resp.PromotionID)
	assert.Equal(t, idStr(promo.ID), *resp.PromotionID)
}

func TestRecordSaleApplyPromoFalseSkipsMatching(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	worker := h.seedWorker(t, "40")
	svc := h.seedService(t, "adult-cut", "200.00", true)
	h.seedPromo(t, svc.ID, promodomain.KindPercentage, "10", testNow.Add(-time.Hour))

	serviceID := idStr(svc.ID)
	applyPromo := false
	resp, err := h.svc.RecordSale(ctx, saledomain.RecordSaleRequest{
		WorkerID:   idStr(worker.ID),
		OriginKind: saledomain.OriginWalkIn,
		ServiceID:  &serviceID,
		ApplyPromo: &applyPromo,
	})
	assert.NoError(t, err)
	assert.Equal(t, "0.00", resp.DiscountApplied)
	assert.Equal(t, "200.00", resp.Total)
	assert.Nil(t, resp.PromotionID)
}

func TestRecordSaleSnapshotSurvivesRateChange(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	worker := h.seedWorker(t, "40")
	svc := h.seedService(t, "adult-cut", "100.00", true)

	serviceID := idStr(svc.ID)
	resp, err := h.svc.RecordSale(ctx, saledomain.RecordSaleRequest{
		WorkerID:   idStr(worker.ID),
		OriginKind: saledomain.OriginWalkIn,
		ServiceID:  &serviceID,
	})
	assert.NoError(t, err)
	assert.Equal(t, "40", resp.CommissionPctSnapshot)
	assert.Equal(t, "40.00", resp.CommissionAmount)

	err = h.db.Exec(`UPDATE workers SET commission_pct = ? WHERE id = ?`, decimal.NewFromInt(60), worker.ID).Error
	assert.NoError(t, err)

	got, err := h.svc.Get(ctx, resp.ID)
	assert.NoError(t, err)
	assert.Equal(t, "40", got.CommissionPctSnapshot)
	assert.Equal(t, "40.00", got.CommissionAmount)
	assert.Equal(t, "60.00", got.BusinessAmount)
}

func TestRecordSaleCompletesAppointment(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	worker := h.seedWorker(t, "50")
	svc := h.seedService(t, "adult-cut", "100.00", true)

	appt := &apptdomain.Appointment{
		ID:           h.node.Generate().Int64(),
		WorkerID:     worker.ID,
		CustomerName: "Luis",
		ScheduledAt:  testNow,
		Status:       apptdomain.StatusScheduled,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	assert.NoError(t, h.db.Create(appt).Error)

	serviceID := idStr(svc.ID)
	appointmentID := idStr(appt.ID)
	resp, err := h.svc.RecordSale(ctx, saledomain.RecordSaleRequest{
		WorkerID:      idStr(worker.ID),
		OriginKind:    saledomain.OriginAppointment,
		ServiceID:     &serviceID,
		AppointmentID: &appointmentID,
	})
	assert.NoError(t, err)

	var got apptdomain.Appointment
	assert.NoError(t, h.db.First(&got, "id = ?", appt.ID).Error)
	assert.Equal(t, apptdomain.StatusCompleted, got.Status)

	// Deleting the sale must not reopen the appointment.
	assert.NoError(t, h.svc.Delete(ctx, resp.ID))

	_, err = h.svc.Get(ctx, resp.ID)
	assert.ErrorIs(t, err, saledomain.ErrNotFound)

	assert.NoError(t, h.db.First(&got, "id = ?", appt.ID).Error)
	assert.Equal(t, apptdomain.StatusCompleted, got.Status)
}

func TestRecordSaleUnknownAppointmentFails(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	worker := h.seedWorker(t, "50")
	svc := h.seedService(t, "adult-cut", "100.00", true)

	serviceID := idStr(svc.ID)
	missing := idStr(h.node.Generate().Int64())
	_, err := h.svc.RecordSale(ctx, saledomain.RecordSaleRequest{
		WorkerID:      idStr(worker.ID),
		OriginKind:    saledomain.OriginAppointment,
		ServiceID:     &serviceID,
		AppointmentID: &missing,
	})
	assert.ErrorIs(t, err, saledomain.ErrAppointmentNotFound)

	var count int64
	assert.NoError(t, h.db.Model(&saledomain.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordSaleUnknownWorker(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.RecordSale(context.Background(), saledomain.RecordSaleRequest{
		WorkerID:   idStr(h.node.Generate().Int64()),
		OriginKind: saledomain.OriginWalkIn,
	})
	assert.ErrorIs(t, err, saledomain.ErrWorkerNotFound)
}

func TestRecordSaleInactiveService(t *testing.T) {
	h := newHarness(t)

	worker := h.seedWorker(t, "50")
	svc := h.seedService(t, "adult-cut", "100.00", false)

	serviceID := idStr(svc.ID)
	_, err := h.svc.RecordSale(context.Background(), saledomain.RecordSaleRequest{
		WorkerID:   idStr(worker.ID),
		OriginKind: saledomain.OriginWalkIn,
		ServiceID:  &serviceID,
	})
	assert.ErrorIs(t, err, saledomain.ErrServiceInactive)
}

func TestRecordSaleFreeAmountRequiresManualPrice(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	worker := h.seedWorker(t, "50")
	svc := &catalogdomain.CatalogService{
		ID:         h.node.Generate().Int64(),
		Code:       "custom",
		Name:       "Custom",
		Type:       "other",
		FreeAmount: true,
		Active:     true,
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	}
	assert.NoError(t, h.db.Create(svc).Error)

	serviceID := idStr(svc.ID)
	_, err := h.svc.RecordSale(ctx, saledomain.RecordSaleRequest{
		WorkerID:   idStr(worker.ID),
		OriginKind: saledomain.OriginWalkIn,
		ServiceID:  &serviceID,
	})
	assert.ErrorIs(t, err, saledomain.ErrMissingManualPrice)

	manual := "75.00"
	resp, err := h.svc.RecordSale(ctx, saledomain.RecordSaleRequest{
		WorkerID:    idStr(worker.ID),
		OriginKind:  saledomain.OriginWalkIn,
		ServiceID:   &serviceID,
		ManualPrice: &manual,
	})
	assert.NoError(t, err)
	assert.Equal(t, "75.00", resp.Total)
}

func TestRecordSaleServicelessNeedsManualPrice(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	worker := h.seedWorker(t, "50")

	_, err := h.svc.RecordSale(ctx, saledomain.RecordSaleRequest{
		WorkerID:   idStr(worker.ID),
		OriginKind: saledomain.OriginWalkIn,
	})
	assert.ErrorIs(t, err, saledomain.ErrMissingManualPrice)

	manual := "30.00"
	resp, err := h.svc.RecordSale(ctx, saledomain.RecordSaleRequest{
		WorkerID:    idStr(worker.ID),
		OriginKind:  saledomain.OriginWalkIn,
		ManualPrice: &manual,
		Quantity:    2,
	})
	assert.NoError(t, err)
	assert.Equal(t, "60.00", resp.Total)
	assert.Equal(t, "30.00", resp.CommissionAmount)
}

func TestRecordSaleInvalidQuantity(t *testing.T) {
	h := newHarness(t)

	worker := h.seedWorker(t, "50")
	svc := h.seedService(t, "adult-cut", "100.00", true)

	serviceID := idStr(svc.ID)
	_, err := h.svc.RecordSale(context.Background(), saledomain.RecordSaleRequest{
		WorkerID:   idStr(worker.ID),
		OriginKind: saledomain.OriginWalkIn,
		ServiceID:  &serviceID,
		Quantity:   -2,
	})
	assert.ErrorIs(t, err, saledomain.ErrInvalidQuantity)
}

func TestRecordSaleInvalidOrigin(t *testing.T) {
	h := newHarness(t)

	worker := h.seedWorker(t, "50")
	_, err := h.svc.RecordSale(context.Background(), saledomain.RecordSaleRequest{
		WorkerID:   idStr(worker.ID),
		OriginKind: "delivery",
	})
	assert.ErrorIs(t, err, saledomain.ErrInvalidOrigin)
}

func TestQuoteDoesNotPersist(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	worker := h.seedWorker(t, "40")
	svc := h.seedService(t, "adult-cut", "200.00", true)
	h.seedPromo(t, svc.ID, promodomain.KindPercentage, "10", testNow.Add(-time.Hour))

	workerID := idStr(worker.ID)
	quote, err := h.svc.Quote(ctx, saledomain.QuoteRequest{
		WorkerID:  &workerID,
		ServiceID: idStr(svc.ID),
	})
	assert.NoError(t, err)
	assert.Equal(t, "180.00", quote.Total)
	assert.Equal(t, "20.00", quote.DiscountApplied)
	assert.NotNil(t, quote.CommissionAmount)
	assert.Equal(t, "72.00", *quote.CommissionAmount)

	var count int64
	assert.NoError(t, h.db.Model(&saledomain.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListFiltersByWorker(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first := h.seedWorker(t, "40")
	second := h.seedWorker(t, "50")
	svc := h.seedService(t, "adult-cut", "100.00", true)

	serviceID := idStr(svc.ID)
	for _, w := range []*workerdomain.Worker{first, second} {
		_, err := h.svc.RecordSale(ctx, saledomain.RecordSaleRequest{
			WorkerID:   idStr(w.ID),
			OriginKind: saledomain.OriginWalkIn,
			ServiceID:  &serviceID,
		})
		assert.NoError(t, err)
	}

	items, err := h.svc.List(ctx, saledomain.ListRequest{WorkerID: idStr(first.ID)})
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, idStr(first.ID), items[0].WorkerID)
}
