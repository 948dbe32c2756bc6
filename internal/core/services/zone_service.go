package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
)

type ZoneService struct {
	resource
	api ports.ZoneAPI
}

func NewZoneService(
	api ports.ZoneAPI,
	sessions *SessionService,
	activity *ActivityService,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *ZoneService {
	return &ZoneService{
		resource: resource{sessions: sessions, activity: activity, logger: logger, validate: validate},
		api:      api,
	}
}

func (s *ZoneService) Create(ctx context.Context, session *domain.Session, payload *domain.ZonePayload) (*domain.Zone, error) {
	if err := s.check(payload, "Zone"); err != nil {
		return nil, err
	}

	zone, err := s.api.CreateZone(ctx, bearer(session), payload)
	if err != nil {
		s.logger.Error("Failed to create zone", map[string]interface{}{
			"error":     err.Error(),
			"campus_id": payload.CampusID,
		})
		return nil, s.mutated(ctx, session, domain.ResourceZone, domain.ActionCreate, "", err)
	}
	if zone.ID == "" {
		zone = &domain.Zone{
			CampusID:    payload.CampusID,
			Name:        payload.Name,
			Description: payload.Description,
			Coordinates: payload.Coordinates,
			IsActive:    true,
		}
	}
	s.mutated(ctx, session, domain.ResourceZone, domain.ActionCreate, zone.ID, nil)

	s.logger.Info("Zone created successfully", map[string]interface{}{
		"zone_id":   zone.ID,
		"campus_id": zone.CampusID,
	})
	return zone, nil
}

func (s *ZoneService) List(ctx context.Context, session *domain.Session) ([]domain.Zone, error) {
	zones, err := s.api.ListZones(ctx, bearer(session))
	if err != nil {
		s.logger.Warn("Failed to list zones", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, s.expire(session, err)
	}
	return zones, nil
}

func (s *ZoneService) Get(ctx context.Context, session *domain.Session, id string) (*domain.Zone, error) {
	zone, err := s.api.GetZone(ctx, bearer(session), id)
	if err != nil {
		s.logger.Error("Failed to get zone", map[string]interface{}{
			"error":   err.Error(),
			"zone_id": id,
		})
		return nil, s.expire(session, err)
	}
	return zone, nil
}

// Update sends the full record, including the zone's own campus.
func (s *ZoneService) Update(ctx context.Context, session *domain.Session, zone domain.Zone) (*domain.Zone, error) {
	payload := zone.Payload()
	if err := s.check(payload, "Zone"); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateZone(ctx, bearer(session), zone.ID, payload)
	if err != nil {
		s.logger.Error("Failed to update zone", map[string]interface{}{
			"error":   err.Error(),
			"zone_id": zone.ID,
		})
		return nil, s.mutated(ctx, session, domain.ResourceZone, domain.ActionUpdate, zone.ID, err)
	}
	s.mutated(ctx, session, domain.ResourceZone, domain.ActionUpdate, zone.ID, nil)

	out := zone
	if updated != nil && updated.ID == zone.ID {
		out = *updated
	}
	s.logger.Info("Zone updated successfully", map[string]interface{}{
		"zone_id": zone.ID,
	})
	return &out, nil
}

func (s *ZoneService) Delete(ctx context.Context, session *domain.Session, id string) error {
	if err := s.api.DeleteZone(ctx, bearer(session), id); err != nil {
		s.logger.Error("Failed to delete zone", map[string]interface{}{
			"error":   err.Error(),
			"zone_id": id,
		})
		return s.mutated(ctx, session, domain.ResourceZone, domain.ActionDelete, id, err)
	}
	s.mutated(ctx, session, domain.ResourceZone, domain.ActionDelete, id, nil)

	s.logger.Info("Zone deleted successfully", map[string]interface{}{
		"zone_id": id,
	})
	return nil
}
