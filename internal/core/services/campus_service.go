package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
)

const (
	campusOptionsKey = "campus:options"
	campusOptionsTTL = 5 * time.Minute
)

type CampusService struct {
	resource
	api   ports.CampusAPI
	cache ports.CachePort
}

func NewCampusService(
	api ports.CampusAPI,
	cache ports.CachePort,
	sessions *SessionService,
	activity *ActivityService,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *CampusService {
	return &CampusService{
		resource: resource{sessions: sessions, activity: activity, logger: logger, validate: validate},
		api:      api,
		cache:    cache,
	}
}

func (s *CampusService) Create(ctx context.Context, session *domain.Session, payload *domain.CampusPayload) (*domain.Campus, error) {
	if err := s.check(payload, "Campus"); err != nil {
		return nil, err
	}

	campus, err := s.api.CreateCampus(ctx, bearer(session), payload)
	if err != nil {
		s.logger.Error("Failed to create campus", map[string]interface{}{
			"error": err.Error(),
			"name":  payload.Name,
		})
		return nil, s.mutated(ctx, session, domain.ResourceCampus, domain.ActionCreate, "", err)
	}
	if campus.ID == "" {
		campus = &domain.Campus{
			Name:                payload.Name,
			Description:         payload.Description,
			EduMailExtension:    payload.EduMailExtension,
			AverageHalfDistance: payload.AverageHalfDistance,
			Coordinates:         payload.Coordinates,
			IsActive:            true,
		}
	}
	s.mutated(ctx, session, domain.ResourceCampus, domain.ActionCreate, campus.ID, nil)
	s.invalidateOptions()

	s.logger.Info("Campus created successfully", map[string]interface{}{
		"campus_id": campus.ID,
		"name":      campus.Name,
	})
	return campus, nil
}

func (s *CampusService) List(ctx context.Context, session *domain.Session, filter domain.CampusFilter) ([]domain.Campus, error) {
	campuses, err := s.api.ListCampuses(ctx, bearer(session), filter)
	if err != nil {
		s.logger.Warn("Failed to list campuses", map[string]interface{}{
			"error":            err.Error(),
			"name":             filter.Name,
			"eduMailExtension": filter.EduMailExtension,
		})
		return nil, s.expire(session, err)
	}

	s.logger.Info("Retrieved campuses", map[string]interface{}{
		"count": len(campuses),
	})
	return campuses, nil
}

func (s *CampusService) Get(ctx context.Context, session *domain.Session, id string) (*domain.Campus, error) {
	campus, err := s.api.GetCampus(ctx, bearer(session), id)
	if err != nil {
		s.logger.Error("Failed to get campus", map[string]interface{}{
			"error":     err.Error(),
			"campus_id": id,
		})
		return nil, s.expire(session, err)
	}
	return campus, nil
}

// Update sends the full record. Fields the backend leaves out of its answer
// are taken from what was sent.
func (s *CampusService) Update(ctx context.Context, session *domain.Session, campus domain.Campus) (*domain.Campus, error) {
	payload := campus.Payload()
	if err := s.check(payload, "Campus"); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateCampus(ctx, bearer(session), campus.ID, payload)
	if err != nil {
		s.logger.Error("Failed to update campus", map[string]interface{}{
			"error":     err.Error(),
			"campus_id": campus.ID,
		})
		return nil, s.mutated(ctx, session, domain.ResourceCampus, domain.ActionUpdate, campus.ID, err)
	}
	s.mutated(ctx, session, domain.ResourceCampus, domain.ActionUpdate, campus.ID, nil)
	s.invalidateOptions()

	out := campus
	if updated != nil && updated.ID == campus.ID {
		out = *updated
		if out.Zones == nil {
			out.Zones = campus.Zones
		}
	}
	s.logger.Info("Campus updated successfully", map[string]interface{}{
		"campus_id": campus.ID,
	})
	return &out, nil
}

// Options lists campuses for pickers. It reads through the cache and degrades
// to an empty list when the backend cannot be reached.
func (s *CampusService) Options(ctx context.Context, session *domain.Session) ([]domain.CampusOption, error) {
	if cached, err := s.cache.Get(campusOptionsKey); err == nil {
		var options []domain.CampusOption
		if err := json.Unmarshal(cached, &options); err == nil {
			return options, nil
		}
	}

	campuses, err := s.api.ListCampuses(ctx, bearer(session), domain.CampusFilter{})
	if err != nil {
		s.logger.Warn("Failed to load campus options", map[string]interface{}{
			"error": err.Error(),
		})
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, s.expire(session, err)
		}
		return []domain.CampusOption{}, nil
	}

	options := make([]domain.CampusOption, 0, len(campuses))
	for _, c := range campuses {
		options = append(options, domain.CampusOption{ID: c.ID, Name: c.Name})
	}

	if data, err := json.Marshal(options); err == nil {
		if err := s.cache.Set(campusOptionsKey, data, campusOptionsTTL); err != nil {
			s.logger.Warn("Failed to cache campus options", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return options, nil
}

func (s *CampusService) invalidateOptions() {
	if err := s.cache.Delete(campusOptionsKey); err != nil {
		s.logger.Warn("Failed to invalidate campus options", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
