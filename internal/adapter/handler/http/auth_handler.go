package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	"github.com/sm8ta/campusride_admin_console/internal/core/services"
)

type AuthHandler struct {
	authService *services.AuthService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

type LoginRequest struct {
	Email    string `json:"email" example:"ops@campusride.ng"`
	Password string `json:"password" example:"secret"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewAuthHandler(authService *services.AuthService, logger ports.LoggerPort, metrics ports.MetricsPort) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
		metrics:     metrics,
	}
}

// @Summary Sign up
// @Description Runs the sign-up form over the given fields and registers directly when valid.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body FieldsRequest true "firstName, lastName, email, phoneNumber, password, confirmPassword"
// @Failure 422 {object} errorResponse "Missing field or passwords do not match"
// @Failure 502 {object} errorResponse "Registration failed"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	var req FieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	form, notes, err := h.authService.Register(c.Request.Context(), req.Fields)
	if err != nil {
		code, msg := statusOf(err)
		c.JSON(code, FormResponse[domain.Registration]{Form: form, Notifications: notifications(notes), Error: msg})
		return
	}
	c.JSON(http.StatusCreated, FormResponse[domain.Registration]{Form: form, Notifications: notifications(notes)})
}

// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 422 {object} errorResponse "Missing field"
// @Failure 401 {object} errorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	token, session, err := h.authService.Login(c.Request.Context(), map[string]string{
		"email":    req.Email,
		"password": req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			newErrorResponse(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		var notes []domain.Notification
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			notes = []domain.Notification{verr.Notification()}
		}
		respondError(c, err, notes)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		Email:     session.Email,
		Role:      string(session.Role),
		ExpiresAt: session.ExpiresAt,
	})
}

// @Summary Sign out
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	start := time.Now()
	defer h.metrics.RecordMetrics(c, start)

	session, ok := getSession(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := h.authService.Logout(c.Request.Context(), session); err != nil {
		h.logger.Error("Failed to sign out", map[string]interface{}{
			"error":      err.Error(),
			"session_id": session.ID.String(),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to sign out")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Signed out"})
}
