package server

import (
	"errors"
	"net/http"
	"strings"

	apptdomain "github.com/redbarber/pos/internal/appointment/domain"
	auditdomain "github.com/redbarber/pos/internal/audit/domain"
	catalogdomain "github.com/redbarber/pos/internal/catalog/domain"
	promodomain "github.com/redbarber/pos/internal/promotion/domain"
	saledomain "github.com/redbarber/pos/internal/sale/domain"
	workerdomain "github.com/redbarber/pos/internal/worker/domain"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrTooManyRequest = errors.New("too_many_requests")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrTooManyRequest):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_requests",
			Message: "too many requests",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, catalogdomain.ErrInvalidType),
		errors.Is(err, catalogdomain.ErrInvalidPrice),
		errors.Is(err, catalogdomain.ErrMissingPrice),
		errors.Is(err, catalogdomain.ErrInvalidID):
		return true
	case errors.Is(err, workerdomain.ErrInvalidName),
		errors.Is(err, workerdomain.ErrInvalidCommission),
		errors.Is(err, workerdomain.ErrInvalidID):
		return true
	case errors.Is(err, promodomain.ErrInvalidService),
		errors.Is(err, promodomain.ErrInvalidKind),
		errors.Is(err, promodomain.ErrInvalidValue),
		errors.Is(err, promodomain.ErrInvalidDate),
		errors.Is(err, promodomain.ErrInvalidTime),
		errors.Is(err, promodomain.ErrInvalidWeekday),
		errors.Is(err, promodomain.ErrInvalidID):
		return true
	case errors.Is(err, apptdomain.ErrInvalidWorker),
		errors.Is(err, apptdomain.ErrInvalidService),
		errors.Is(err, apptdomain.ErrInvalidCustomer),
		errors.Is(err, apptdomain.ErrInvalidSchedule),
		errors.Is(err, apptdomain.ErrInvalidID):
		return true
	case errors.Is(err, saledomain.ErrInvalidOrigin),
		errors.Is(err, saledomain.ErrInvalidTimestamp),
		errors.Is(err, saledomain.ErrInvalidPrice),
		errors.Is(err, saledomain.ErrMissingManualPrice),
		errors.Is(err, saledomain.ErrInvalidQuantity),
		errors.Is(err, saledomain.ErrInvalidID):
		return true
	case errors.Is(err, auditdomain.ErrInvalidAction),
		errors.Is(err, auditdomain.ErrInvalidPageToken),
		errors.Is(err, auditdomain.ErrInvalidTimeRange):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, catalogdomain.ErrDuplicateCode),
		errors.Is(err, apptdomain.ErrAlreadyClosed),
		errors.Is(err, saledomain.ErrServiceInactive):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, workerdomain.ErrNotFound),
		errors.Is(err, promodomain.ErrNotFound),
		errors.Is(err, apptdomain.ErrNotFound),
		errors.Is(err, saledomain.ErrNotFound),
		errors.Is(err, saledomain.ErrWorkerNotFound),
		errors.Is(err, saledomain.ErrServiceNotFound),
		errors.Is(err, saledomain.ErrAppointmentNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if strings.HasPrefix(code, "missing_") {
		return strings.TrimPrefix(code, "missing_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "missing_manual_price":
		return "manual price is required"
	default:
		return "invalid value"
	}
}

func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	switch {
	case asValidationErrors(err) != nil, isValidationError(err):
		return "validation", validationErrorCode(err)
	case isConflictError(err):
		return "conflict", err.Error()
	case isNotFoundError(err):
		return "not_found", "not_found"
	case errors.Is(err, saledomain.ErrPersistence):
		return "persistence", "persistence_failure"
	default:
		return "internal", "internal_error"
	}
}
