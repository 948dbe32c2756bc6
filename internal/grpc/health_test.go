package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/sm8ta/campusride_admin_console/internal/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func startHealth(t *testing.T, probes []Probe) (*Monitor, *HealthClient) {
	t.Helper()
	log := logger.NewNop()

	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	monitor := Register(server, probes, time.Second, log)
	go server.Serve(lis)
	t.Cleanup(server.Stop)

	client, err := NewHealthClient(log, "passthrough:///bufnet", time.Second, 1,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return monitor, client
}

func TestMonitor(t *testing.T) {
	ctx := context.Background()
	redisErr := errors.New("connection refused")
	redisDown := true

	monitor, client := startHealth(t, []Probe{
		{Name: "postgres", Check: func(context.Context) error { return nil }},
		{Name: "redis", Check: func(context.Context) error {
			if redisDown {
				return redisErr
			}
			return nil
		}},
	})

	t.Run("not serving before the first refresh", func(t *testing.T) {
		status, err := client.Check(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status)
	})

	t.Run("one failing probe fails the whole", func(t *testing.T) {
		assert.False(t, monitor.Refresh(ctx))

		status, err := client.Check(ctx, "postgres")
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status)

		status, err = client.Check(ctx, "redis")
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status)

		status, err = client.Check(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status)
	})

	t.Run("recovers", func(t *testing.T) {
		redisDown = false
		assert.True(t, monitor.Refresh(ctx))

		status, err := client.Check(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := client.Check(ctx, "kafka")
		assert.Error(t, err)
	})
}
