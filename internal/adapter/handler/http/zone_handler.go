package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	"github.com/sm8ta/campusride_admin_console/internal/core/services"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
)

type ZoneHandler struct {
	*FlowHandler[domain.ZonePayload, domain.Zone]
	zoneService *services.ZoneService
}

func NewZoneHandler(
	flows *services.ZoneFlows,
	zoneService *services.ZoneService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *ZoneHandler {
	return &ZoneHandler{
		FlowHandler: NewFlowHandler(services.KindZone, flows.Form, flows.List, flows.Detail,
			[]string{"campusId"}, logger, metrics),
		zoneService: zoneService,
	}
}

// @Summary Get a zone
// @Tags zone
// @Security BearerAuth
// @Produce json
// @Param id path string true "Zone ID"
// @Success 200 {object} domain.Zone
// @Failure 404 {object} errorResponse "Zone not found"
// @Router /zone/{id} [get]
func (h *ZoneHandler) GetZone(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	zoneID := c.Param("id")
	zone, err := h.zoneService.Get(c.Request.Context(), session, zoneID)
	if err != nil {
		h.logger.Error("Failed to get zone", map[string]interface{}{
			"error":   err.Error(),
			"zone_id": zoneID,
		})
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, zone)
}

// @Summary Delete the viewed zone
// @Description Requires confirm=true. Without it the zone is kept and 428 is returned with the confirmation prompt.
// @Tags zone
// @Security BearerAuth
// @Produce json
// @Param confirm query bool false "Operator confirmed the deletion"
// @Failure 428 {object} errorResponse "Confirmation required"
// @Failure 502 {object} errorResponse "Backend rejected the deletion"
// @Router /zone/detail [delete]
func (h *ZoneHandler) DeleteDetail(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(c.DefaultQuery("confirm", "false"))

	var prompt string
	d, notes, err := h.detail.Delete(c.Request.Context(), session, workflow.ConfirmFunc(func(p string) bool {
		prompt = p
		return confirmed
	}))
	if err != nil && prompt != "" && !confirmed {
		c.JSON(http.StatusPreconditionRequired, DetailResponse[domain.Zone]{
			Detail:        d,
			Notifications: notifications(notes),
			Error:         prompt,
		})
		return
	}
	h.writeDetail(c, d, notes, err)
}
