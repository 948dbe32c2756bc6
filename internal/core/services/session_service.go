package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
)

type SessionService struct {
	cache  ports.CachePort
	logger ports.LoggerPort
	now    func() time.Time
}

func NewSessionService(cache ports.CachePort, logger ports.LoggerPort) *SessionService {
	return &SessionService{cache: cache, logger: logger, now: time.Now}
}

func sessionKey(id uuid.UUID) string {
	return fmt.Sprintf("session:%s", id)
}

func (s *SessionService) Create(email string, role domain.UserRole, backendToken string, expiresAt time.Time) (*domain.Session, error) {
	now := s.now()
	session := &domain.Session{
		ID:           uuid.New(),
		Email:        email,
		Role:         role,
		BackendToken: backendToken,
		ExpiresAt:    expiresAt,
		CreatedAt:    now,
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(sessionKey(session.ID), data, session.TTL(now)); err != nil {
		s.logger.Error("Failed to store session", map[string]interface{}{
			"error": err.Error(),
			"email": email,
		})
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Get(id uuid.UUID) (*domain.Session, error) {
	data, err := s.cache.Get(sessionKey(id))
	if errors.Is(err, ports.ErrCacheMiss) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if session.Expired(s.now()) {
		s.Delete(id)
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (s *SessionService) Delete(id uuid.UUID) error {
	if err := s.cache.Delete(sessionKey(id)); err != nil {
		s.logger.Warn("Failed to delete session", map[string]interface{}{
			"error":      err.Error(),
			"session_id": id.String(),
		})
		return err
	}
	return nil
}

// Invalidate drops a session whose backend token was rejected.
func (s *SessionService) Invalidate(id uuid.UUID) {
	s.logger.Info("Backend token rejected, closing session", map[string]interface{}{
		"session_id": id.String(),
	})
	s.Delete(id)
}
