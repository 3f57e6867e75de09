package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"corretora_xpto/internal/adapter/http/middleware"
	"corretora_xpto/internal/usecase"
	"corretora_xpto/pkg"

	"github.com/gin-gonic/gin"
)

const metricsDateLayout = "2006-01-02"

// MetricsHandler handles the manager-facing KPI report.

type MetricsHandler struct {
	usecase usecase.IMetricsUseCase
}

func NewMetricsHandler(uc usecase.IMetricsUseCase) *MetricsHandler {
	return &MetricsHandler{usecase: uc}
}

// GetMetrics builds the KPI report for proposals created inside
// [start_date, end_date] (inclusive, yyyy-mm-dd).
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}

	start, err := time.Parse(metricsDateLayout, c.Query("start_date"))
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_DATE_RANGE", "start_date and end_date must be yyyy-mm-dd", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	end, err := time.Parse(metricsDateLayout, c.Query("end_date"))
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_DATE_RANGE", "start_date and end_date must be yyyy-mm-dd", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	// end_date is inclusive: stretch it to the last instant of that day.
	end = end.Add(24*time.Hour - time.Nanosecond)

	report, err := h.usecase.Report(c.Request.Context(), actor, start.UTC(), end.UTC())
	if err != nil {
		log.Printf("[metrics][handler] report failed start=%s end=%s err=%v", c.Query("start_date"), c.Query("end_date"), err)
		appErr := mapMetricsError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, report)
}

func mapMetricsError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidDateRange):
		return pkg.NewDomainErrorSimple("INVALID_DATE_RANGE", "Invalid date range", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Operation not allowed", http.StatusForbidden)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
