package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	saledomain "github.com/redbarber/pos/internal/sale/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSaleService struct {
	recordCalls int
	lastReq     saledomain.RecordSaleRequest
	recordErr   error
	deleteCalls int
}

func (f *fakeSaleService) RecordSale(ctx context.Context, req saledomain.RecordSaleRequest) (*saledomain.Response, error) {
	f.recordCalls++
	f.lastReq = req
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	return &saledomain.Response{
		ID:         "1",
		WorkerID:   req.WorkerID,
		OriginKind: req.OriginKind,
		Quantity:   1,
		Total:      "150.00",
	}, nil
}

func (f *fakeSaleService) Quote(ctx context.Context, req saledomain.QuoteRequest) (*saledomain.QuoteResponse, error) {
	return &saledomain.QuoteResponse{
		ServiceID: req.ServiceID,
		Quantity:  1,
		Total:     "150.00",
	}, nil
}

func (f *fakeSaleService) Get(ctx context.Context, id string) (*saledomain.Response, error) {
	return nil, saledomain.ErrNotFound
}

func (f *fakeSaleService) List(ctx context.Context, req saledomain.ListRequest) ([]saledomain.Response, error) {
	return nil, nil
}

func (f *fakeSaleService) Delete(ctx context.Context, id string) error {
	f.deleteCalls++
	return nil
}

func newTestServer(saleSvc saledomain.Service) (*Server, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())

	srv := &Server{
		engine:  router,
		log:     zap.NewNop(),
		saleSvc: saleSvc,
	}
	srv.RegisterAPIRoutes()
	return srv, router
}

func TestRecordSaleHandler(t *testing.T) {
	fake := &fakeSaleService{}
	_, router := newTestServer(fake)

	body, _ := json.Marshal(map[string]any{
		"worker_id":   "42",
		"origin_kind": "walk_in",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, fake.recordCalls)
	assert.Equal(t, "42", fake.lastReq.WorkerID)

	var parsed struct {
		Data saledomain.Response `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	assert.Equal(t, "150.00", parsed.Data.Total)
}

func TestRecordSaleHandlerUnknownWorker(t *testing.T) {
	fake := &fakeSaleService{recordErr: saledomain.ErrWorkerNotFound}
	_, router := newTestServer(fake)

	body, _ := json.Marshal(map[string]any{
		"worker_id":   "999",
		"origin_kind": "walk_in",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordSaleHandlerValidationEnvelope(t *testing.T) {
	fake := &fakeSaleService{recordErr: saledomain.ErrMissingManualPrice}
	_, router := newTestServer(fake)

	body, _ := json.Marshal(map[string]any{
		"worker_id":   "42",
		"origin_kind": "walk_in",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var parsed errorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	assert.Equal(t, "validation_error", parsed.Error.Type)
	if assert.Len(t, parsed.Error.Errors, 1) {
		assert.Equal(t, "missing_manual_price", parsed.Error.Errors[0].Code)
	}
}

func TestRecordSaleHandlerInactiveServiceConflict(t *testing.T) {
	fake := &fakeSaleService{recordErr: saledomain.ErrServiceInactive}
	_, router := newTestServer(fake)

	body, _ := json.Marshal(map[string]any{
		"worker_id":   "42",
		"origin_kind": "walk_in",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestQuoteHandler(t *testing.T) {
	fake := &fakeSaleService{}
	_, router := newTestServer(fake)

	body, _ := json.Marshal(map[string]any{
		"service_id": "7",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, fake.recordCalls)
}

func TestDeleteSaleHandler(t *testing.T) {
	fake := &fakeSaleService{}
	_, router := newTestServer(fake)

	req := httptest.NewRequest(http.MethodDelete, "/api/sales/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, fake.deleteCalls)
}
