package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/logger"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a live server, e.g. REDIS_TEST_ADDRESS=localhost:6379.
func testClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDRESS not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisAdapter(t *testing.T) {
	cache := NewRedisAdapter(testClient(t))
	key := "test:" + uuid.NewString()

	_, err := cache.Get(key)
	assert.ErrorIs(t, err, ports.ErrCacheMiss)

	require.NoError(t, cache.Set(key, []byte(`{"a":1}`), time.Minute))
	got, err := cache.Get(key)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, cache.Delete(key))
	_, err = cache.Get(key)
	assert.ErrorIs(t, err, ports.ErrCacheMiss)
}

func TestGate(t *testing.T) {
	client := testClient(t)
	gate := NewGate(client, time.Minute, logger.NewNop())
	ctx := context.Background()
	key := "form:" + uuid.NewString()

	release, err := gate.Acquire(ctx, key)
	require.NoError(t, err)

	_, err = gate.Acquire(ctx, key)
	assert.ErrorIs(t, err, workflow.ErrInFlight)

	release()
	again, err := gate.Acquire(ctx, key)
	require.NoError(t, err)
	again()
}

func TestGateReleaseKeepsForeignLock(t *testing.T) {
	client := testClient(t)
	gate := NewGate(client, time.Minute, logger.NewNop())
	ctx := context.Background()
	key := "form:" + uuid.NewString()

	release, err := gate.Acquire(ctx, key)
	require.NoError(t, err)
	require.NoError(t, client.Set(ctx, "lock:"+key, "someone-else", time.Minute).Err())

	release()
	val, err := client.Get(ctx, "lock:"+key).Result()
	require.NoError(t, err)
	assert.Equal(t, "someone-else", val)
	client.Del(ctx, "lock:"+key)
}
