package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/kpi_tracker/backend/internal/kpi"
	"github.com/kpi_tracker/backend/internal/models"
	"github.com/kpi_tracker/backend/internal/service"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Store          Pinger
	KPI            *service.KPIService
	Validator      *validator.Validate
	Logger         zerolog.Logger
	RequestTimeout time.Duration
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.RequestTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.RequestTimeout)
}

// PeriodRequest is the body of the generate endpoints.
type PeriodRequest struct {
	Month int `json:"month" validate:"required,min=1,max=12"`
	Year  int `json:"year" validate:"required,min=1970,max=9999"`
}

type periodQuery struct {
	Month int `form:"month" validate:"omitempty,min=1,max=12"`
	Year  int `form:"year" validate:"omitempty,min=1970,max=9999"`
}

func (h *Handler) bindPeriodBody(c *gin.Context) (kpi.Period, bool) {
	var req PeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return kpi.Period{}, false
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return kpi.Period{}, false
	}
	return kpi.Period{Month: req.Month, Year: req.Year}, true
}

// bindPeriodQuery reads month and year from the query string. Missing values
// fall back to the current month unless required is set.
func (h *Handler) bindPeriodQuery(c *gin.Context, required bool) (kpi.Period, bool) {
	var q periodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid month or year", err.Error())
		return kpi.Period{}, false
	}
	if err := h.Validator.Struct(q); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return kpi.Period{}, false
	}
	if q.Month == 0 || q.Year == 0 {
		if required {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "month and year are required", nil)
			return kpi.Period{}, false
		}
		cur := kpi.CurrentPeriod(time.Now())
		if q.Month == 0 {
			q.Month = cur.Month
		}
		if q.Year == 0 {
			q.Year = cur.Year
		}
	}
	return kpi.Period{Month: q.Month, Year: q.Year}, true
}

// fail maps service errors onto the error envelope.
func (h *Handler) fail(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", message, err.Error())
	case errors.Is(err, models.ErrNoActiveDevelopers):
		writeError(c, http.StatusNotFound, "NOT_FOUND", "No active developers", err.Error())
	case errors.Is(err, models.ErrInvalidPeriod), errors.Is(err, models.ErrInvalidConfig):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", message, err.Error())
	default:
		h.Logger.Error().Err(err).Str("path", c.FullPath()).Msg(message)
		writeError(c, http.StatusInternalServerError, "DB_ERROR", message, err.Error())
	}
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
