package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sm8ta/campusride_admin_console/internal/adapter/backend"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/handler/http"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/logger"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/postgres"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/prometheus"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/rabbitmq"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/redis"
	grpcapp "github.com/sm8ta/campusride_admin_console/internal/app/grpc"
	"github.com/sm8ta/campusride_admin_console/internal/config"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
	"github.com/sm8ta/campusride_admin_console/internal/core/services"
	grpcHandler "github.com/sm8ta/campusride_admin_console/internal/grpc"

	"github.com/go-playground/validator/v10"
	"github.com/pressly/goose"
	redisClient "github.com/redis/go-redis/v9"
)

type App struct {
	Config       *config.Container
	Logger       *logger.LoggerAdapter
	DB           *sql.DB
	RedisClient  *redisClient.Client
	RedisAdapter ports.CachePort
	Publisher    ports.EventPublisher
	HTTPRouter   *http.Router
	GRPCServer   *grpcapp.App
}

func New(ctx context.Context, cfg *config.Container) (*App, error) {
	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Env,
	})

	// Set redis
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisConn.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	cacheAdapter := redis.NewRedisAdapter(redisConn)
	gate := redis.NewGate(redisConn, cfg.Console.GateTTLValue(), loggerAdapter)

	// Connect DB
	db, err := sql.Open("postgres", cfg.DB.DSN())
	if err != nil {
		redisConn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		redisConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Migrate DB
	if err := goose.Up(db, "./internal/adapter/postgres/migrations"); err != nil {
		db.Close()
		redisConn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Validate
	validate := validator.New()

	// Observability
	metrics := prometheus.NewPrometheusAdapter()

	// Activity log
	activityRepo := postgres.NewActivityRepository(db)
	var publisher ports.EventPublisher
	if cfg.Broker.Enabled() {
		publisher = rabbitmq.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange, loggerAdapter)
	}

	// Campus-ride backend
	api := backend.NewClient(cfg.Backend, loggerAdapter, metrics)

	// Services
	tokenService := http.NewJWTTokenService(cfg.Token.Secret, loggerAdapter)
	sessionService := services.NewSessionService(cacheAdapter, loggerAdapter)
	activityService := services.NewActivityService(activityRepo, publisher, loggerAdapter)
	authService := services.NewAuthService(api, tokenService, cfg.Token.DurationValue(), sessionService, activityService, loggerAdapter, validate)
	campusService := services.NewCampusService(api, cacheAdapter, sessionService, activityService, loggerAdapter, validate)
	zoneService := services.NewZoneService(api, sessionService, activityService, loggerAdapter, validate)
	riderService := services.NewRiderService(api, sessionService, activityService, loggerAdapter, validate)

	// Session-scoped workflows
	flowCfg := services.FlowConfig{
		Cache:       cacheAdapter,
		Logger:      loggerAdapter,
		StateTTL:    cfg.Token.DurationValue(),
		RowsPerPage: cfg.Console.RowsPerPageInt(),
	}
	campusFlows := services.NewCampusFlows(flowCfg, gate, campusService)
	zoneFlows := services.NewZoneFlows(flowCfg, gate, zoneService)
	riderFlows := services.NewRiderFlows(flowCfg, gate, cfg.Console.RiderPageLimitInt(), riderService)

	// HTTP Handlers
	authHandler := http.NewAuthHandler(authService, loggerAdapter, metrics)
	campusHandler := http.NewCampusHandler(campusFlows, campusService, loggerAdapter, metrics)
	zoneHandler := http.NewZoneHandler(zoneFlows, zoneService, loggerAdapter, metrics)
	riderHandler := http.NewRiderHandler(riderFlows, loggerAdapter, metrics)
	activityHandler := http.NewActivityHandler(activityService, loggerAdapter, metrics)

	// Init HTTP router
	router, err := http.NewRouter(
		cfg.HTTP,
		tokenService,
		sessionService,
		authHandler,
		campusHandler,
		zoneHandler,
		riderHandler,
		activityHandler,
	)
	if err != nil {
		db.Close()
		redisConn.Close()
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}

	// Health over gRPC
	grpcServer := grpcapp.New(loggerAdapter, []grpcHandler.Probe{
		{Name: "redis", Check: func(ctx context.Context) error { return redisConn.Ping(ctx).Err() }},
		{Name: "postgres", Check: db.PingContext},
	}, cfg.GRPC.PortInt())

	return &App{
		Config:       cfg,
		Logger:       loggerAdapter,
		DB:           db,
		RedisClient:  redisConn,
		RedisAdapter: cacheAdapter,
		Publisher:    publisher,
		HTTPRouter:   router,
		GRPCServer:   grpcServer,
	}, nil
}

// Runs all services
func (a *App) Run() error {
	listenAddr := fmt.Sprintf("%s:%s", a.Config.HTTP.URL, a.Config.HTTP.Port)
	go func() {
		if err := a.GRPCServer.Run(); err != nil {
			a.Logger.Error("gRPC server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": listenAddr,
	})

	if err := a.HTTPRouter.Serve(listenAddr); err != nil {
		a.Logger.Error("HTTP server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Stops all services
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	// Stop gRPC
	a.GRPCServer.Stop()

	// Close publisher
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			a.Logger.Error("Broker close error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Close database
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Database close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Close Redis
	if err := a.RedisClient.Close(); err != nil {
		a.Logger.Error("Redis close error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	a.Logger.Info("Application stopped successfully", nil)
	a.Logger.Sync()
	return nil
}
