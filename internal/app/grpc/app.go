package grpcapp

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	grpcHandler "github.com/sm8ta/campusride_admin_console/internal/grpc"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	probeTimeout  = 2 * time.Second
	probeInterval = 15 * time.Second
)

type App struct {
	log        ports.LoggerPort
	gRPCServer *grpc.Server
	monitor    *grpcHandler.Monitor
	port       int
	cancel     context.CancelFunc
}

// New gRPC server app serving the health of the given probes.
func New(
	log ports.LoggerPort,
	probes []grpcHandler.Probe,
	port int,
) *App {
	loggingOpts := []logging.Option{
		logging.WithLogOnEvents(logging.FinishCall),
	}

	// Recovery after panic
	recoveryOpts := []recovery.Option{
		recovery.WithRecoveryHandler(func(p interface{}) (err error) {
			log.Error("Recovered from panic in gRPC handler", map[string]interface{}{
				"panic": p,
			})
			return status.Errorf(codes.Internal, "internal error")
		}),
	}

	gRPCServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recoveryOpts...),
			logging.UnaryServerInterceptor(grpcHandler.InterceptorLogger(log), loggingOpts...),
		),
	)

	monitor := grpcHandler.Register(gRPCServer, probes, probeTimeout, log)

	return &App{
		log:        log,
		gRPCServer: gRPCServer,
		monitor:    monitor,
		port:       port,
	}
}

// Run refreshes the probes in the background and serves until Stop.
func (a *App) Run() error {
	const op = "grpcapp.Run"

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", a.port))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	a.log.Info("Starting gRPC server", map[string]interface{}{
		"addr": listener.Addr().String(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	go a.monitor.Watch(ctx, probeInterval)

	if err := a.gRPCServer.Serve(listener); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Stop stops gRPC server.
func (a *App) Stop() {
	const op = "grpcapp.Stop"

	a.log.Info("Stopping gRPC server", map[string]interface{}{
		"op":   op,
		"port": a.port,
	})

	if a.cancel != nil {
		a.cancel()
	}
	a.monitor.Shutdown()
	a.gRPCServer.GracefulStop()
}
