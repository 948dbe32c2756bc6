package grpc

import (
	"context"
	"time"

	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Probe checks one dependency of the console.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// Monitor publishes the state of each probe on the standard gRPC health
// service. The empty service name is SERVING only while every probe passes.
type Monitor struct {
	health  *health.Server
	probes  []Probe
	timeout time.Duration
	log     ports.LoggerPort
}

func Register(
	gRPCServer *grpc.Server,
	probes []Probe,
	timeout time.Duration,
	log ports.LoggerPort,
) *Monitor {
	m := &Monitor{
		health:  health.NewServer(),
		probes:  probes,
		timeout: timeout,
		log:     log,
	}
	healthpb.RegisterHealthServer(gRPCServer, m.health)

	// Nothing is serving until the first refresh.
	m.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	for _, p := range probes {
		m.health.SetServingStatus(p.Name, healthpb.HealthCheckResponse_NOT_SERVING)
	}
	return m
}

// Refresh runs every probe once and reports whether all of them passed.
func (m *Monitor) Refresh(ctx context.Context) bool {
	healthy := true
	for _, p := range m.probes {
		pctx, cancel := context.WithTimeout(ctx, m.timeout)
		err := p.Check(pctx)
		cancel()

		status := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			healthy = false
			status = healthpb.HealthCheckResponse_NOT_SERVING
			m.log.Warn("Health probe failed", map[string]interface{}{
				"probe": p.Name,
				"error": err.Error(),
			})
		}
		m.health.SetServingStatus(p.Name, status)
	}

	overall := healthpb.HealthCheckResponse_SERVING
	if !healthy {
		overall = healthpb.HealthCheckResponse_NOT_SERVING
	}
	m.health.SetServingStatus("", overall)
	return healthy
}

// Watch refreshes on every tick until ctx is done.
func (m *Monitor) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Refresh(ctx)
		}
	}
}

// Shutdown marks every service NOT_SERVING so clients drain before the server stops.
func (m *Monitor) Shutdown() {
	m.health.Shutdown()
}
