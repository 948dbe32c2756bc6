package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
)

// ErrStateNotFound means the session holds no form, list or detail under the key.
var ErrStateNotFound = fmt.Errorf("workflow state %w", domain.ErrNotFound)

// FlowConfig holds what every session-scoped flow needs.
type FlowConfig struct {
	Cache       ports.CachePort
	Logger      ports.LoggerPort
	StateTTL    time.Duration
	RowsPerPage int
}

func loadState[S any](cache ports.CachePort, key string) (*S, error) {
	data, err := cache.Get(key)
	if errors.Is(err, ports.ErrCacheMiss) {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, err
	}
	var state S
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &state, nil
}

func saveState[S any](cache ports.CachePort, key string, state *S, ttl time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return cache.Set(key, data, ttl)
}

// stateTTL keeps workflow state no longer than the session that owns it.
func stateTTL(session *domain.Session, fallback time.Duration) time.Duration {
	if ttl := session.TTL(time.Now()); ttl > 0 {
		return ttl
	}
	return fallback
}

func stateKey(prefix string, session *domain.Session, kind string, parts ...string) string {
	key := fmt.Sprintf("%s:%s:%s", prefix, session.ID, kind)
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
