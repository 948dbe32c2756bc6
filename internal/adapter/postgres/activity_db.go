package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
)

var (
	ErrRequiredField = errors.New("required field is missing")
	ErrInvalidValue  = errors.New("value violates a check constraint")
	ErrDuplicate     = errors.New("activity already recorded")
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{
		db,
	}
}

func (r *ActivityRepository) CreateActivity(ctx context.Context, a *domain.Activity) (*domain.Activity, error) {
	query := `INSERT INTO activities (id, session_id, operator, resource, resource_id, action, outcome, message)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		a.ID, a.SessionID, a.Operator, a.Resource, a.ResourceID, a.Action, a.Outcome, a.Message,
	).Scan(&a.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (r *ActivityRepository) ListActivities(ctx context.Context, limit int) ([]*domain.Activity, error) {
	query := `SELECT id, session_id, operator, resource, resource_id, action, outcome, message, created_at
	FROM activities ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []*domain.Activity{}
	for rows.Next() {
		a := &domain.Activity{}
		if err := rows.Scan(
			&a.ID,
			&a.SessionID,
			&a.Operator,
			&a.Resource,
			&a.ResourceID,
			&a.Action,
			&a.Outcome,
			&a.Message,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return activities, nil
}

func mapError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case "23502":
		return fmt.Errorf("%w: %s", ErrRequiredField, pqErr.Column)
	case "23505":
		return ErrDuplicate
	case "23514":
		return fmt.Errorf("%w: %s", ErrInvalidValue, pqErr.Constraint)
	default:
		return err
	}
}
