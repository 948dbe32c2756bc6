package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 500
)

// ActivityService keeps the audit trail of console mutations. Recording never
// fails the operation it describes. Either backing port may be nil.
type ActivityService struct {
	repo      ports.ActivityRepository
	publisher ports.EventPublisher
	logger    ports.LoggerPort
	now       func() time.Time
}

func NewActivityService(repo ports.ActivityRepository, publisher ports.EventPublisher, logger ports.LoggerPort) *ActivityService {
	return &ActivityService{repo: repo, publisher: publisher, logger: logger, now: time.Now}
}

func (s *ActivityService) Record(ctx context.Context, session *domain.Session, resource domain.Resource, action domain.Action, resourceID string, opErr error) {
	activity := &domain.Activity{
		ID:         uuid.New(),
		Resource:   resource,
		ResourceID: resourceID,
		Action:     action,
		Outcome:    domain.OutcomeSuccess,
		CreatedAt:  s.now().UTC(),
	}
	if session != nil {
		activity.SessionID = session.ID
		activity.Operator = session.Email
	}
	if opErr != nil {
		activity.Outcome = domain.OutcomeFailure
		activity.Message = opErr.Error()
	}

	if s.repo != nil {
		if _, err := s.repo.CreateActivity(ctx, activity); err != nil {
			s.logger.Warn("Failed to record activity", map[string]interface{}{
				"error":    err.Error(),
				"resource": resource,
				"action":   action,
			})
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, activity); err != nil {
			s.logger.Warn("Failed to publish activity", map[string]interface{}{
				"error":       err.Error(),
				"routing_key": activity.RoutingKey(),
			})
		}
	}
}

func (s *ActivityService) List(ctx context.Context, limit int) ([]*domain.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	if s.repo == nil {
		return []*domain.Activity{}, nil
	}

	activities, err := s.repo.ListActivities(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list activities", map[string]interface{}{
			"error": err.Error(),
			"limit": limit,
		})
		return nil, err
	}
	return activities, nil
}
