package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	"github.com/sm8ta/campusride_admin_console/internal/core/services"
)

type ActivityHandler struct {
	activityService *services.ActivityService
	logger          ports.LoggerPort
	metrics         ports.MetricsPort
}

type ActivityListResponse struct {
	Activities []*domain.Activity `json:"activities"`
	Count      int                `json:"count"`
}

func NewActivityHandler(activityService *services.ActivityService, logger ports.LoggerPort, metrics ports.MetricsPort) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
		metrics:         metrics,
	}
}

// @Summary Recent console activity
// @Tags activity
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum entries (default 50, max 500)"
// @Success 200 {object} ActivityListResponse
// @Failure 500 {object} errorResponse "Failed to list activity"
// @Router /activity [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid limit")
		return
	}

	activities, err := h.activityService.List(c.Request.Context(), limit)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to list activity")
		return
	}
	c.JSON(http.StatusOK, ActivityListResponse{Activities: activities, Count: len(activities)})
}
