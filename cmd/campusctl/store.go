package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
)

// credentials is what survives between invocations: the backend token and
// what sign-in learned about it.
type credentials struct {
	Email        string          `json:"email"`
	Role         domain.UserRole `json:"role"`
	BackendToken string          `json:"backendToken"`
	ExpiresAt    time.Time       `json:"expiresAt"`
}

type tokenStore struct {
	path string
	now  func() time.Time
}

func newTokenStore(path string) *tokenStore {
	return &tokenStore{path: path, now: time.Now}
}

func defaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "campusride", "token"), nil
}

func (s *tokenStore) Save(c credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Load returns the stored credentials. A missing or expired token is
// reported as domain.ErrSessionExpired and an expired one is removed.
func (s *tokenStore) Load() (credentials, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return credentials{}, domain.ErrSessionExpired
	}
	if err != nil {
		return credentials{}, err
	}

	var c credentials
	if err := json.Unmarshal(data, &c); err != nil || c.BackendToken == "" {
		s.Clear()
		return credentials{}, domain.ErrSessionExpired
	}
	if !c.ExpiresAt.IsZero() && !s.now().Before(c.ExpiresAt) {
		s.Clear()
		return credentials{}, domain.ErrSessionExpired
	}
	return c, nil
}

func (s *tokenStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
