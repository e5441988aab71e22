package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staycal/internal/app/dto"
	availabilitysvc "staycal/internal/app/services/availability"
	domainavailability "staycal/internal/domain/availability"
)

type AvailabilityHandler struct {
	Service *availabilitysvc.Service
	Logger  *slog.Logger
}

type resolveRequest struct {
	CategoryID string `json:"categoryId" binding:"required"`
	StartDate  string `json:"startDate" binding:"required,calendardate"`
	EndDate    string `json:"endDate" binding:"required,calendardate"`
}

func (h AvailabilityHandler) Resolve(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "availability service unavailable"})
		return
	}
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}
	result, err := h.Service.Resolve(c.Request.Context(), availabilitysvc.ResolveParams{
		CategoryID: req.CategoryID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		h.respondResolveError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapUnavailableDates(result.Unavailable))
}

// respondResolveError keeps engine detail out of responses: validation
// failures echo their constraint, everything else is a generic summary.
func (h AvailabilityHandler) respondResolveError(c *gin.Context, err error) {
	var validationErr *domainavailability.ValidationError
	var upstreamErr *domainavailability.UpstreamError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &upstreamErr):
		if h.Logger != nil {
			h.Logger.Error("booking engine request failed", "status", upstreamErr.Status, "error", err)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "availability lookup failed"})
	default:
		if h.Logger != nil {
			h.Logger.Error("availability resolve failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ AvailabilityHTTP = (*AvailabilityHandler)(nil)
