package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sm8ta/campusride_admin_console/internal/adapter/logger"
	"github.com/sm8ta/campusride_admin_console/internal/app"
	"github.com/sm8ta/campusride_admin_console/internal/config"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"

	_ "github.com/lib/pq"
)

// drainTimeout bounds how long in-flight requests and open connections get
// once the console is asked to stop.
const drainTimeout = 30 * time.Second

// @title Campus Ride Admin Console API
// @version 1.0
// @description Workflow API behind the campus-ride admin dashboard: campuses, zones, riders and operator sign-in.

// @host localhost:8081
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	bootLog := logger.NewLoggerAdapter(os.Getenv("APP_ENV"))

	cfg, err := config.New()
	if err != nil {
		exit(bootLog, "Console configuration rejected", err)
	}

	console, err := app.New(context.Background(), cfg)
	if err != nil {
		exit(bootLog, "Console could not wire its dependencies", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	if err := serve(console.Logger, console, stop, drainTimeout); err != nil {
		exit(console.Logger, "Console stopped with an error", err)
	}
}

type server interface {
	Run() error
	Stop(ctx context.Context) error
}

// serve runs srv until a signal arrives on stop or srv fails on its own, then
// drains it within grace. A failed run is still drained before returning.
func serve(log ports.LoggerPort, srv server, stop <-chan os.Signal, grace time.Duration) error {
	failed := make(chan error, 1)
	go func() {
		failed <- srv.Run()
	}()

	var runErr error
	select {
	case sig := <-stop:
		log.Info("Console draining", map[string]interface{}{
			"signal": sig.String(),
			"grace":  grace.String(),
		})
	case runErr = <-failed:
		if runErr != nil {
			runErr = fmt.Errorf("serve console: %w", runErr)
			log.Error("Console server failed", map[string]interface{}{
				"error": runErr.Error(),
			})
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		return fmt.Errorf("drain console: %w", err)
	}
	return runErr
}

func exit(log *logger.LoggerAdapter, msg string, err error) {
	log.Error(msg, map[string]interface{}{
		"error": err.Error(),
	})
	_ = log.Sync()
	os.Exit(1)
}
