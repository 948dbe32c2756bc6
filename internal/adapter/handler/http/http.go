package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/services"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
)

const sessionExpiredMessage = "Session expired, please sign in again"

type errorResponse struct {
	Error         string                `json:"error"`
	Notifications []domain.Notification `json:"notifications,omitempty"`
}

func newErrorResponse(c *gin.Context, code int, msg string) {
	c.JSON(code, errorResponse{Error: msg})
}

// statusOf maps a service or workflow error to an HTTP status and message.
func statusOf(err error) (int, string) {
	var verr *domain.ValidationError
	var berr *domain.BackendError
	switch {
	case errors.Is(err, domain.ErrSessionExpired), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, sessionExpiredMessage
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, verr.Message
	case errors.Is(err, workflow.ErrNotConfirmed):
		return http.StatusPreconditionRequired, "Confirmation required"
	case errors.Is(err, workflow.ErrInFlight):
		return http.StatusConflict, "Request already in progress"
	case errors.Is(err, workflow.ErrWrongStage):
		return http.StatusConflict, "Action not allowed in the current state"
	case errors.Is(err, workflow.ErrStale):
		return http.StatusConflict, "The record is no longer open"
	case errors.Is(err, services.ErrNotSupported):
		return http.StatusMethodNotAllowed, "Operation not supported"
	case errors.Is(err, services.ErrStateNotFound):
		return http.StatusNotFound, "Not found"
	case errors.As(err, &berr):
		if berr.Status == http.StatusNotFound {
			return http.StatusNotFound, "Not found"
		}
		if berr.Message != "" {
			return http.StatusBadGateway, berr.Message
		}
		return http.StatusBadGateway, "Backend request failed"
	case errors.Is(err, domain.ErrBackend):
		return http.StatusBadGateway, "Backend request failed"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondError writes the mapped error along with the notifications emitted
// while handling the request.
func respondError(c *gin.Context, err error, notes []domain.Notification) {
	code, msg := statusOf(err)
	c.JSON(code, errorResponse{Error: msg, Notifications: notes})
}

// notifications never serializes as null.
func notifications(notes []domain.Notification) []domain.Notification {
	if notes == nil {
		return []domain.Notification{}
	}
	return notes
}

type MessageResponse struct {
	Message string `json:"message"`
}
