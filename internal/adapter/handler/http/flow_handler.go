package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	"github.com/sm8ta/campusride_admin_console/internal/core/services"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
)

type FieldsRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

type FormResponse[P any] struct {
	Form          *workflow.Form[P]     `json:"form"`
	Notifications []domain.Notification `json:"notifications"`
	Error         string                `json:"error,omitempty"`
}

type ListResponse[T any] struct {
	List          workflow.View[T]      `json:"list"`
	Notifications []domain.Notification `json:"notifications"`
}

type DetailResponse[T workflow.Record] struct {
	Detail        *workflow.Detail[T]   `json:"detail"`
	Notifications []domain.Notification `json:"notifications"`
	Error         string                `json:"error,omitempty"`
}

// FlowHandler serves the create form, list and detail panel of one collection.
// A nil form flow leaves the form routes unregistered.
type FlowHandler[P any, T workflow.Record] struct {
	kind    string
	form    *services.FormFlow[P]
	list    *services.ListFlow[T]
	detail  *services.DetailFlow[T]
	filters []string
	logger  ports.LoggerPort
	metrics ports.MetricsPort
}

func NewFlowHandler[P any, T workflow.Record](
	kind string,
	form *services.FormFlow[P],
	list *services.ListFlow[T],
	detail *services.DetailFlow[T],
	filters []string,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *FlowHandler[P, T] {
	return &FlowHandler[P, T]{
		kind:    kind,
		form:    form,
		list:    list,
		detail:  detail,
		filters: filters,
		logger:  logger,
		metrics: metrics,
	}
}

func (h *FlowHandler[P, T]) register(g *gin.RouterGroup) {
	if h.form != nil {
		g.POST("/forms", h.OpenForm)
		g.GET("/forms/:formId", h.GetForm)
		g.PATCH("/forms/:formId", h.SetFormFields)
		g.POST("/forms/:formId/submit", h.SubmitForm)
		g.POST("/forms/:formId/edit", h.EditForm)
		g.POST("/forms/:formId/confirm", h.ConfirmForm)
	}
	g.GET("", h.List)
	g.GET("/pages/:page", h.Page)
	g.POST("/:id/view", h.View)
	g.GET("/detail", h.GetDetail)
	g.PATCH("/detail", h.SetDetailFields)
	g.POST("/detail/edit", h.EditDetail)
	g.POST("/detail/save", h.SaveDetail)
	g.POST("/detail/cancel", h.CancelDetail)
	g.POST("/detail/close", h.CloseDetail)
}

func (h *FlowHandler[P, T]) session(c *gin.Context) (*domain.Session, bool) {
	session, ok := getSession(c)
	if !ok {
		h.logger.Warn("Unauthorized access attempt", map[string]interface{}{
			"kind": h.kind,
			"path": c.FullPath(),
			"ip":   c.ClientIP(),
		})
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
	}
	return session, ok
}

func (h *FlowHandler[P, T]) writeForm(c *gin.Context, code int, form *workflow.Form[P], notes []domain.Notification, err error) {
	if err != nil {
		status, msg := statusOf(err)
		if form == nil {
			respondError(c, err, notes)
			return
		}
		h.logger.Warn("Form step failed", map[string]interface{}{
			"kind":    h.kind,
			"form_id": form.ID,
			"error":   err.Error(),
		})
		c.JSON(status, FormResponse[P]{Form: form, Notifications: notifications(notes), Error: msg})
		return
	}
	c.JSON(code, FormResponse[P]{Form: form, Notifications: notifications(notes)})
}

func (h *FlowHandler[P, T]) writeDetail(c *gin.Context, d *workflow.Detail[T], notes []domain.Notification, err error) {
	if err != nil {
		status, msg := statusOf(err)
		if d == nil {
			respondError(c, err, notes)
			return
		}
		c.JSON(status, DetailResponse[T]{Detail: d, Notifications: notifications(notes), Error: msg})
		return
	}
	c.JSON(http.StatusOK, DetailResponse[T]{Detail: d, Notifications: notifications(notes)})
}

func (h *FlowHandler[P, T]) writeList(c *gin.Context, view workflow.View[T], err error) {
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, ListResponse[T]{List: view, Notifications: []domain.Notification{}})
}

// @Summary Open a create form
// @Tags campus,zone
// @Security BearerAuth
// @Produce json
// @Success 201 {object} MessageResponse "Form state with an empty draft"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /campus/forms [post]
// @Router /zone/forms [post]
func (h *FlowHandler[P, T]) OpenForm(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	form, err := h.form.Open(session)
	h.writeForm(c, http.StatusCreated, form, nil, err)
}

// @Summary Get a create form
// @Tags campus,zone
// @Security BearerAuth
// @Produce json
// @Param formId path string true "Form ID"
// @Failure 404 {object} errorResponse "Unknown form"
// @Router /campus/forms/{formId} [get]
// @Router /zone/forms/{formId} [get]
func (h *FlowHandler[P, T]) GetForm(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	form, err := h.form.Get(session, c.Param("formId"))
	h.writeForm(c, http.StatusOK, form, nil, err)
}

// @Summary Update draft fields of a create form
// @Tags campus,zone
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param formId path string true "Form ID"
// @Param request body FieldsRequest true "Field values keyed by field name"
// @Failure 400 {object} errorResponse "Invalid JSON format"
// @Failure 409 {object} errorResponse "Form is busy or not editable"
// @Router /campus/forms/{formId} [patch]
// @Router /zone/forms/{formId} [patch]
func (h *FlowHandler[P, T]) SetFormFields(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	var req FieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	form, notes, err := h.form.SetFields(c.Request.Context(), session, c.Param("formId"), req.Fields)
	h.writeForm(c, http.StatusOK, form, notes, err)
}

// @Summary Submit a create form
// @Description Validates the draft. Campus and zone forms move to preview; nothing is sent yet.
// @Tags campus,zone
// @Security BearerAuth
// @Produce json
// @Param formId path string true "Form ID"
// @Failure 422 {object} errorResponse "Draft is invalid"
// @Router /campus/forms/{formId}/submit [post]
// @Router /zone/forms/{formId}/submit [post]
func (h *FlowHandler[P, T]) SubmitForm(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	form, notes, err := h.form.Submit(c.Request.Context(), session, c.Param("formId"))
	h.writeForm(c, http.StatusOK, form, notes, err)
}

// @Summary Return from preview to editing
// @Tags campus,zone
// @Security BearerAuth
// @Produce json
// @Param formId path string true "Form ID"
// @Failure 409 {object} errorResponse "Form is not in preview"
// @Router /campus/forms/{formId}/edit [post]
// @Router /zone/forms/{formId}/edit [post]
func (h *FlowHandler[P, T]) EditForm(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	form, notes, err := h.form.Edit(c.Request.Context(), session, c.Param("formId"))
	h.writeForm(c, http.StatusOK, form, notes, err)
}

// @Summary Confirm a previewed form and create the record
// @Tags campus,zone
// @Security BearerAuth
// @Produce json
// @Param formId path string true "Form ID"
// @Failure 409 {object} errorResponse "Form is not in preview or already committing"
// @Failure 502 {object} errorResponse "Backend rejected the record"
// @Router /campus/forms/{formId}/confirm [post]
// @Router /zone/forms/{formId}/confirm [post]
func (h *FlowHandler[P, T]) ConfirmForm(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	form, notes, err := h.form.Confirm(c.Request.Context(), session, c.Param("formId"))
	h.writeForm(c, http.StatusOK, form, notes, err)
}

// @Summary Refetch the list
// @Description Fetches with the given filters and shows page 1. With ?page= the stored list moves to that page instead.
// @Tags campus,zone,rider
// @Security BearerAuth
// @Produce json
// @Param name query string false "Campus name filter"
// @Param eduMailExtension query string false "Campus mail extension filter"
// @Param campusId query string false "Zone campus filter"
// @Param searchTerm query string false "Rider search"
// @Param email query string false "Rider email"
// @Param page query int false "Page to show"
// @Failure 401 {object} errorResponse "Session expired"
// @Router /campus [get]
// @Router /zone [get]
// @Router /rider [get]
func (h *FlowHandler[P, T]) List(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}

	if raw, ok := c.GetQuery("page"); ok {
		page, err := strconv.Atoi(raw)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "Invalid page")
			return
		}
		view, err := h.list.Page(c.Request.Context(), session, page)
		h.writeList(c, view, err)
		return
	}

	filters := map[string]string{}
	for _, key := range h.filters {
		if v := c.Query(key); v != "" {
			filters[key] = v
		}
	}
	view, err := h.list.Load(c.Request.Context(), session, filters)
	h.writeList(c, view, err)
}

// @Summary Show a page of the stored list
// @Tags campus,zone
// @Security BearerAuth
// @Produce json
// @Param page path int true "Page number, clamped to the valid range"
// @Failure 400 {object} errorResponse "Invalid page"
// @Router /campus/pages/{page} [get]
// @Router /zone/pages/{page} [get]
func (h *FlowHandler[P, T]) Page(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid page")
		return
	}
	view, err := h.list.Page(c.Request.Context(), session, page)
	h.writeList(c, view, err)
}

// @Summary Open a record in the detail panel
// @Tags campus,zone,rider
// @Security BearerAuth
// @Produce json
// @Param id path string true "Record ID"
// @Failure 404 {object} errorResponse "Unknown record"
// @Router /campus/{id}/view [post]
// @Router /zone/{id}/view [post]
// @Router /rider/{id}/view [post]
func (h *FlowHandler[P, T]) View(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	d, err := h.detail.View(c.Request.Context(), session, c.Param("id"))
	h.writeDetail(c, d, nil, err)
}

// @Summary Get the detail panel
// @Tags campus,zone,rider
// @Security BearerAuth
// @Produce json
// @Router /campus/detail [get]
// @Router /zone/detail [get]
// @Router /rider/detail [get]
func (h *FlowHandler[P, T]) GetDetail(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	d, err := h.detail.Get(session)
	h.writeDetail(c, d, nil, err)
}

// @Summary Update draft fields of the record being edited
// @Tags campus,zone,rider
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body FieldsRequest true "Field values keyed by field name"
// @Failure 409 {object} errorResponse "Not editing or a save is in flight"
// @Router /campus/detail [patch]
// @Router /zone/detail [patch]
// @Router /rider/detail [patch]
func (h *FlowHandler[P, T]) SetDetailFields(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	var req FieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	d, err := h.detail.SetFields(c.Request.Context(), session, req.Fields)
	h.writeDetail(c, d, nil, err)
}

// @Summary Start editing the viewed record
// @Tags campus,zone,rider
// @Security BearerAuth
// @Produce json
// @Router /campus/detail/edit [post]
// @Router /zone/detail/edit [post]
// @Router /rider/detail/edit [post]
func (h *FlowHandler[P, T]) EditDetail(c *gin.Context) {
	h.detailStep(c, h.detail.Edit)
}

// @Summary Discard the edit draft
// @Tags campus,zone,rider
// @Security BearerAuth
// @Produce json
// @Router /campus/detail/cancel [post]
// @Router /zone/detail/cancel [post]
// @Router /rider/detail/cancel [post]
func (h *FlowHandler[P, T]) CancelDetail(c *gin.Context) {
	h.detailStep(c, h.detail.Cancel)
}

// @Summary Close the detail panel
// @Tags campus,zone,rider
// @Security BearerAuth
// @Produce json
// @Router /campus/detail/close [post]
// @Router /zone/detail/close [post]
// @Router /rider/detail/close [post]
func (h *FlowHandler[P, T]) CloseDetail(c *gin.Context) {
	h.detailStep(c, h.detail.Close)
}

func (h *FlowHandler[P, T]) detailStep(c *gin.Context, step func(context.Context, *domain.Session) (*workflow.Detail[T], error)) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	d, err := step(c.Request.Context(), session)
	h.writeDetail(c, d, nil, err)
}

// @Summary Save the edited record
// @Description Sends the full record. The list row is patched in place on success.
// @Tags campus,zone,rider
// @Security BearerAuth
// @Produce json
// @Failure 409 {object} errorResponse "Not editing, already saving, or the record was closed meanwhile"
// @Failure 422 {object} errorResponse "Draft is invalid"
// @Failure 502 {object} errorResponse "Backend rejected the update"
// @Router /campus/detail/save [post]
// @Router /zone/detail/save [post]
// @Router /rider/detail/save [post]
func (h *FlowHandler[P, T]) SaveDetail(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	d, notes, err := h.detail.Save(c.Request.Context(), session)
	h.writeDetail(c, d, notes, err)
}
