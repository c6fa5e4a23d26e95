package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apptdomain "github.com/redbarber/pos/internal/appointment/domain"
)

func (s *Server) CreateAppointment(c *gin.Context) {
	var req apptdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.appointmentSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAppointments(c *gin.Context) {
	var query struct {
		WorkerID string `form:"worker_id"`
		Status   string `form:"status"`
		SortBy   string `form:"sort_by"`
		OrderBy  string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.appointmentSvc.List(c.Request.Context(), apptdomain.ListRequest{
		WorkerID: strings.TrimSpace(query.WorkerID),
		Status:   strings.TrimSpace(query.Status),
		SortBy:   strings.TrimSpace(query.SortBy),
		OrderBy:  strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAppointment(c *gin.Context) {
	resp, err := s.appointmentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// CompleteAppointment closes an appointment without a sale. The usual
// path is recording a sale, which completes the appointment itself.
func (s *Server) CompleteAppointment(c *gin.Context) {
	resp, err := s.appointmentSvc.MarkCompleted(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CancelAppointment(c *gin.Context) {
	resp, err := s.appointmentSvc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
