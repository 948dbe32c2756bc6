package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session binds a console token to the backend token obtained at sign-in.
type Session struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Role         UserRole  `json:"role"`
	BackendToken string    `json:"backendToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// TTL is the remaining lifetime of the session, never negative.
func (s *Session) TTL(now time.Time) time.Duration {
	if s.ExpiresAt.IsZero() {
		return 0
	}
	d := s.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
