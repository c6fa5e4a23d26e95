package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	promodomain "github.com/redbarber/pos/internal/promotion/domain"
)

func (s *Server) CreatePromotion(c *gin.Context) {
	var req promodomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.promotionSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPromotions(c *gin.Context) {
	var query struct {
		ServiceID string `form:"service_id"`
		Active    string `form:"active"`
		SortBy    string `form:"sort_by"`
		OrderBy   string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	active, err := parseOptionalBool(query.Active)
	if err != nil {
		AbortWithError(c, newValidationError("active", "invalid_active", "invalid active"))
		return
	}

	resp, err := s.promotionSvc.List(c.Request.Context(), promodomain.ListRequest{
		ServiceID: strings.TrimSpace(query.ServiceID),
		Active:    active,
		SortBy:    strings.TrimSpace(query.SortBy),
		OrderBy:   strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// FindApplicablePromotion answers which promotion, if any, would apply
// to the service at the given moment. Defaults to now.
func (s *Server) FindApplicablePromotion(c *gin.Context) {
	var query struct {
		ServiceID string `form:"service_id"`
		At        string `form:"at"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	serviceID := strings.TrimSpace(query.ServiceID)
	if serviceID == "" {
		AbortWithError(c, newValidationError("service_id", "invalid_service", "service_id is required"))
		return
	}

	ts := time.Now().UTC()
	if at := strings.TrimSpace(query.At); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			AbortWithError(c, newValidationError("at", "invalid_at", "invalid at"))
			return
		}
		ts = parsed.UTC()
	}

	resp, err := s.promotionSvc.FindApplicable(c.Request.Context(), serviceID, ts)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPromotion(c *gin.Context) {
	resp, err := s.promotionSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePromotion(c *gin.Context) {
	var req promodomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.promotionSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ArchivePromotion(c *gin.Context) {
	resp, err := s.promotionSvc.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
