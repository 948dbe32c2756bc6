package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
)

type RiderService struct {
	resource
	api ports.RiderAPI
}

func NewRiderService(
	api ports.RiderAPI,
	sessions *SessionService,
	activity *ActivityService,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *RiderService {
	return &RiderService{
		resource: resource{sessions: sessions, activity: activity, logger: logger, validate: validate},
		api:      api,
	}
}

func (s *RiderService) Create(ctx context.Context, session *domain.Session, app *domain.RiderApplication) (*domain.Rider, error) {
	if err := s.check(app, "Rider"); err != nil {
		return nil, err
	}

	rider, err := s.api.CreateRider(ctx, bearer(session), app)
	if err != nil {
		s.logger.Error("Failed to create rider", map[string]interface{}{
			"error":                    err.Error(),
			"bike_registration_number": app.BikeRegistrationNumber,
		})
		return nil, s.mutated(ctx, session, domain.ResourceRider, domain.ActionCreate, "", err)
	}
	s.mutated(ctx, session, domain.ResourceRider, domain.ActionCreate, rider.ID, nil)

	s.logger.Info("Rider created successfully", map[string]interface{}{
		"rider_id": rider.ID,
	})
	return rider, nil
}

func (s *RiderService) List(ctx context.Context, session *domain.Session, filter domain.RiderFilter, page, limit int) (*domain.RiderPage, error) {
	if page < 1 {
		page = 1
	}
	result, err := s.api.ListRiders(ctx, bearer(session), filter, page, limit)
	if err != nil {
		s.logger.Warn("Failed to list riders", map[string]interface{}{
			"error": err.Error(),
			"page":  page,
			"limit": limit,
		})
		return nil, s.expire(session, err)
	}
	return result, nil
}

// UpdateStatus approves or rejects an application.
func (s *RiderService) UpdateStatus(ctx context.Context, session *domain.Session, id string, status domain.RiderStatus) (*domain.Rider, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("validation error: %w", &domain.ValidationError{
			Level:   domain.LevelError,
			Message: "Unknown rider status: " + string(status),
		})
	}

	action := domain.ActionUpdate
	switch status {
	case domain.RiderApproved:
		action = domain.ActionApprove
	case domain.RiderRejected:
		action = domain.ActionReject
	}

	rider, err := s.api.UpdateRider(ctx, bearer(session), id, map[string]string{"status": string(status)})
	if err != nil {
		s.logger.Error("Failed to update rider status", map[string]interface{}{
			"error":    err.Error(),
			"rider_id": id,
			"status":   status,
		})
		return nil, s.mutated(ctx, session, domain.ResourceRider, action, id, err)
	}
	s.mutated(ctx, session, domain.ResourceRider, action, id, nil)

	s.logger.Info("Rider status updated", map[string]interface{}{
		"rider_id": id,
		"status":   status,
	})
	return rider, nil
}

func (s *RiderService) Update(ctx context.Context, session *domain.Session, id string, patch map[string]string) (*domain.Rider, error) {
	rider, err := s.api.UpdateRider(ctx, bearer(session), id, patch)
	if err != nil {
		s.logger.Error("Failed to update rider", map[string]interface{}{
			"error":    err.Error(),
			"rider_id": id,
		})
		return nil, s.mutated(ctx, session, domain.ResourceRider, domain.ActionUpdate, id, err)
	}
	s.mutated(ctx, session, domain.ResourceRider, domain.ActionUpdate, id, nil)
	return rider, nil
}
