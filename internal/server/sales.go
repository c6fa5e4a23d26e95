package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redbarber/pos/internal/providers/pdf"
	saledomain "github.com/redbarber/pos/internal/sale/domain"
	"go.uber.org/zap"
)

func (s *Server) RecordSale(c *gin.Context) {
	var req saledomain.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()

	if s.saleLimiter.Enabled() {
		res, err := s.saleLimiter.AllowWorker(ctx, req.WorkerID)
		if err != nil {
			// Redis trouble must not block the register.
			s.log.Warn("sale rate limit check failed", zap.Error(err))
		} else if !res.Allowed {
			if res.RetryAfter > 0 {
				c.Header("Retry-After", res.RetryAfter.String())
			}
			AbortWithError(c, ErrTooManyRequest)
			return
		}

		if req.AppointmentID != nil && strings.TrimSpace(*req.AppointmentID) != "" {
			token, ok, err := s.saleLimiter.TryLockAppointment(ctx, *req.AppointmentID)
			if err != nil {
				s.log.Warn("appointment lock failed", zap.Error(err))
			} else if !ok {
				AbortWithError(c, ErrConflict)
				return
			} else {
				defer func() {
					_ = s.saleLimiter.ReleaseAppointment(ctx, *req.AppointmentID, token)
				}()
			}
		}
	}

	resp, err := s.saleSvc.RecordSale(ctx, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSales(c *gin.Context) {
	var query struct {
		WorkerID   string `form:"worker_id"`
		OriginKind string `form:"origin_kind"`
		From       string `form:"from"`
		To         string `form:"to"`
		SortBy     string `form:"sort_by"`
		OrderBy    string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.saleSvc.List(c.Request.Context(), saledomain.ListRequest{
		WorkerID:   strings.TrimSpace(query.WorkerID),
		OriginKind: strings.TrimSpace(query.OriginKind),
		From:       optionalString(query.From),
		To:         optionalString(query.To),
		SortBy:     strings.TrimSpace(query.SortBy),
		OrderBy:    strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSale(c *gin.Context) {
	resp, err := s.saleSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSale(c *gin.Context) {
	if err := s.saleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) SaleReceipt(c *gin.Context) {
	ctx := c.Request.Context()

	sale, err := s.saleSvc.Get(ctx, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := pdf.ReceiptData{
		ShopName:   s.cfg.AppName,
		SaleNumber: sale.ID,
		OccurredAt: sale.OccurredAt.Format("2006-01-02 15:04"),
		OriginKind: sale.OriginKind,
		Subtotal:   sale.BasePrice,
		Discount:   sale.DiscountApplied,
		Total:      sale.Total,
	}

	if worker, err := s.workerSvc.Get(ctx, sale.WorkerID); err == nil {
		data.WorkerName = worker.Name
	}

	description := "Custom service"
	unitPrice := ""
	if sale.ServiceID != nil {
		if svc, err := s.catalogSvc.Get(ctx, *sale.ServiceID); err == nil {
			description = svc.Name
			if svc.BasePrice != nil {
				unitPrice = *svc.BasePrice
			}
		}
	}
	data.Items = []pdf.ReceiptItem{
		{
			Description: description,
			Qty:         sale.Quantity,
			UnitPrice:   unitPrice,
			Amount:      sale.BasePrice,
		},
	}

	if sale.PromotionID != nil {
		data.PromotionNote = "Promotion applied: " + sale.DiscountApplied + " off"
	}

	reader, err := s.receipts.GenerateReceipt(ctx, data)
	if err != nil {
		s.log.Error("receipt generation failed", zap.Error(err))
		AbortWithError(c, ErrInternal)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="receipt-`+sale.ID+`.pdf"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func (s *Server) QuoteSale(c *gin.Context) {
	var req saledomain.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.saleSvc.Quote(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
