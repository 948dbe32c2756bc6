package grpc

import (
	"context"
	"fmt"
	"time"

	grpclog "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpcretry "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/retry"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthClient asks a running console for its health.
type HealthClient struct {
	api  healthpb.HealthClient
	conn *grpc.ClientConn
	log  ports.LoggerPort
}

func NewHealthClient(
	log ports.LoggerPort,
	addr string,
	timeout time.Duration,
	retriesCount int,
	opts ...grpc.DialOption,
) (*HealthClient, error) {
	const op = "grpc.NewHealthClient"

	retryOpts := []grpcretry.CallOption{
		grpcretry.WithCodes(codes.Unavailable, codes.DeadlineExceeded),
		grpcretry.WithMax(uint(retriesCount)),
		grpcretry.WithPerRetryTimeout(timeout),
	}

	logOpts := []grpclog.Option{
		grpclog.WithLogOnEvents(grpclog.FinishCall),
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(
			grpclog.UnaryClientInterceptor(InterceptorLogger(log), logOpts...),
			grpcretry.UnaryClientInterceptor(retryOpts...),
		),
	}, opts...)

	cc, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &HealthClient{
		api:  healthpb.NewHealthClient(cc),
		conn: cc,
		log:  log,
	}, nil
}

// Check returns the serving status of one service; "" is the console as a whole.
func (c *HealthClient) Check(ctx context.Context, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	const op = "HealthClient.Check"

	resp, err := c.api.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, fmt.Errorf("%s: %w", op, err)
	}

	c.log.Debug("Received health status", map[string]interface{}{
		"service": service,
		"status":  resp.GetStatus().String(),
	})
	return resp.GetStatus(), nil
}

func (c *HealthClient) Close() error {
	return c.conn.Close()
}

// InterceptorLogger adapts ports.LoggerPort to interceptor logger.
func InterceptorLogger(l ports.LoggerPort) grpclog.Logger {
	return grpclog.LoggerFunc(func(ctx context.Context, lvl grpclog.Level, msg string, fields ...any) {
		fieldsMap := make(map[string]interface{}, len(fields)/2)
		for i := 0; i+1 < len(fields); i += 2 {
			fieldsMap[fmt.Sprintf("%v", fields[i])] = fields[i+1]
		}

		switch lvl {
		case grpclog.LevelInfo:
			l.Info(msg, fieldsMap)
		case grpclog.LevelWarn:
			l.Warn(msg, fieldsMap)
		case grpclog.LevelError:
			l.Error(msg, fieldsMap)
		default:
			l.Debug(msg, fieldsMap)
		}
	})
}
