package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	"github.com/sm8ta/campusride_admin_console/internal/core/services"
)

type CampusHandler struct {
	*FlowHandler[domain.CampusPayload, domain.Campus]
	campusService *services.CampusService
}

type CampusOptionsResponse struct {
	Options []domain.CampusOption `json:"options"`
}

func NewCampusHandler(
	flows *services.CampusFlows,
	campusService *services.CampusService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *CampusHandler {
	return &CampusHandler{
		FlowHandler: NewFlowHandler(services.KindCampus, flows.Form, flows.List, flows.Detail,
			[]string{"name", "eduMailExtension"}, logger, metrics),
		campusService: campusService,
	}
}

// @Summary Campus picker entries
// @Description Cached list of campus ids and names. Empty when the backend cannot be reached.
// @Tags campus
// @Security BearerAuth
// @Produce json
// @Success 200 {object} CampusOptionsResponse
// @Failure 401 {object} errorResponse "Session expired"
// @Router /campus/options [get]
func (h *CampusHandler) Options(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	options, err := h.campusService.Options(c.Request.Context(), session)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, CampusOptionsResponse{Options: options})
}

// @Summary Get a campus
// @Description Fetches one campus with its zones.
// @Tags campus
// @Security BearerAuth
// @Produce json
// @Param id path string true "Campus ID"
// @Success 200 {object} domain.Campus
// @Failure 404 {object} errorResponse "Campus not found"
// @Router /campus/{id} [get]
func (h *CampusHandler) GetCampus(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	campusID := c.Param("id")
	campus, err := h.campusService.Get(c.Request.Context(), session, campusID)
	if err != nil {
		h.logger.Error("Failed to get campus", map[string]interface{}{
			"error":     err.Error(),
			"campus_id": campusID,
		})
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, campus)
}
