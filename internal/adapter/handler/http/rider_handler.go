package http

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	"github.com/sm8ta/campusride_admin_console/internal/core/services"
)

type RiderHandler struct {
	*FlowHandler[domain.RiderApplication, domain.Rider]
	riderFlows *services.RiderFlows
}

type RiderResponse struct {
	Rider         *domain.Rider         `json:"rider"`
	Notifications []domain.Notification `json:"notifications"`
}

func NewRiderHandler(flows *services.RiderFlows, logger ports.LoggerPort, metrics ports.MetricsPort) *RiderHandler {
	return &RiderHandler{
		FlowHandler: NewFlowHandler[domain.RiderApplication](services.KindRider, nil, flows.List, flows.Detail,
			[]string{"searchTerm", "email"}, logger, metrics),
		riderFlows: flows,
	}
}

// @Summary Create a rider
// @Description Multipart form with the rider's text fields and one file per document. Committed directly.
// @Tags rider
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param firstName formData string true "First name"
// @Param lastName formData string true "Last name"
// @Param bikeRegistrationNumber formData string true "Bike registration number"
// @Param bikeModel formData string true "Bike model"
// @Param nationalIdFront formData file true "National ID (front)"
// @Param nationalIdBack formData file true "National ID (back)"
// @Param universityIdFront formData file true "University ID (front)"
// @Param universityIdBack formData file true "University ID (back)"
// @Param drivingLicense formData file true "Driving license"
// @Param vehicleLicense formData file true "Vehicle license"
// @Param numberPlate formData file true "Number plate"
// @Failure 400 {object} errorResponse "Invalid multipart form"
// @Failure 422 {object} errorResponse "Missing field or document"
// @Failure 502 {object} errorResponse "Backend rejected the rider"
// @Router /rider [post]
func (h *RiderHandler) CreateRider(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.logger.Error("Failed multipart parse in create rider", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	fields := make(map[string]string, len(form.Value))
	for key, values := range form.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	uploads, closeAll, err := openUploads(form)
	defer closeAll()
	if err != nil {
		h.logger.Error("Failed to open rider document", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid document upload")
		return
	}

	state, notes, err := h.riderFlows.Create(c.Request.Context(), session, fields, uploads)
	h.writeForm(c, http.StatusCreated, state, notes, err)
}

// openUploads opens the first file of every document kind present in the form.
func openUploads(form *multipart.Form) ([]domain.Upload, func(), error) {
	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	var uploads []domain.Upload
	for _, kind := range domain.RiderDocumentKinds {
		headers := form.File[string(kind)]
		if len(headers) == 0 {
			continue
		}
		f, err := headers[0].Open()
		if err != nil {
			return nil, closeAll, err
		}
		files = append(files, f)
		uploads = append(uploads, domain.Upload{Kind: kind, Filename: headers[0].Filename, Content: f})
	}
	return uploads, closeAll, nil
}

// @Summary Approve a rider
// @Tags rider
// @Security BearerAuth
// @Produce json
// @Param id path string true "Rider ID"
// @Success 200 {object} RiderResponse
// @Failure 502 {object} errorResponse "Backend rejected the update"
// @Router /rider/{id}/approve [post]
func (h *RiderHandler) Approve(c *gin.Context) {
	h.setStatus(c, domain.RiderApproved, "Rider approved!")
}

// @Summary Reject a rider
// @Tags rider
// @Security BearerAuth
// @Produce json
// @Param id path string true "Rider ID"
// @Success 200 {object} RiderResponse
// @Failure 502 {object} errorResponse "Backend rejected the update"
// @Router /rider/{id}/reject [post]
func (h *RiderHandler) Reject(c *gin.Context) {
	h.setStatus(c, domain.RiderRejected, "Rider rejected.")
}

func (h *RiderHandler) setStatus(c *gin.Context, status domain.RiderStatus, msg string) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := h.session(c)
	if !ok {
		return
	}
	rider, err := h.riderFlows.SetStatus(c.Request.Context(), session, c.Param("id"), status)
	if err != nil {
		respondError(c, err, []domain.Notification{domain.Failure("Failed to update rider status.")})
		return
	}
	c.JSON(http.StatusOK, RiderResponse{Rider: rider, Notifications: []domain.Notification{domain.Success(msg)}})
}

// @Summary Update rider fields
// @Description Partial update. Only firstName, lastName, bikeRegistrationNumber, bikeModel and status are accepted.
// @Tags rider
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Rider ID"
// @Param request body FieldsRequest true "Fields to change"
// @Success 200 {object} RiderResponse
// @Failure 422 {object} errorResponse "Unknown or blank field"
// @Router /rider/{id} [patch]
func (h *RiderHandler) UpdateRider(c *gin.Context) {
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
	rider, err := h.riderFlows.Update(c.Request.Context(), session, c.Param("id"), req.Fields)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, RiderResponse{Rider: rider, Notifications: []domain.Notification{domain.Success("Rider updated successfully!")}})
}
