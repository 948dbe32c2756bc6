package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
)

// resource holds what every backend-facing service shares.
type resource struct {
	sessions *SessionService
	activity *ActivityService
	logger   ports.LoggerPort
	validate *validator.Validate
}

func (r *resource) check(payload interface{}, kind string) error {
	if err := r.validate.Struct(payload); err != nil {
		r.logger.Error(kind+" validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("validation error: %w", &domain.ValidationError{
			Level:   domain.LevelError,
			Message: kind + " data is invalid",
			Cause:   err,
		})
	}
	return nil
}

// expire closes the session when the backend rejected its token.
func (r *resource) expire(session *domain.Session, err error) error {
	if err == nil || session == nil || !errors.Is(err, domain.ErrUnauthorized) {
		return err
	}
	r.sessions.Invalidate(session.ID)
	return fmt.Errorf("%w: %w", domain.ErrSessionExpired, err)
}

// mutated records the outcome of a write and applies session expiry.
func (r *resource) mutated(ctx context.Context, session *domain.Session, res domain.Resource, action domain.Action, id string, err error) error {
	r.activity.Record(ctx, session, res, action, id, err)
	return r.expire(session, err)
}

func bearer(session *domain.Session) string {
	if session == nil {
		return ""
	}
	return session.BackendToken
}
