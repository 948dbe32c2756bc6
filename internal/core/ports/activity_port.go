package ports

import (
	"context"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
)

type ActivityRepository interface {
	CreateActivity(ctx context.Context, activity *domain.Activity) (*domain.Activity, error)
	ListActivities(ctx context.Context, limit int) ([]*domain.Activity, error)
}

// EventPublisher forwards activity entries to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, activity *domain.Activity) error
	Close() error
}
