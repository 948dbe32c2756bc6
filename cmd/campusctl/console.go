package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/backend"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/logger"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/memory"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/prometheus"
	"github.com/sm8ta/campusride_admin_console/internal/config"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/services"
	"github.com/sm8ta/campusride_admin_console/internal/core/workflow"
)

// console wires the services and workflows for one invocation. State lives in
// an in-process cache, so forms and lists do not outlive the command.
type console struct {
	cfg      *config.Container
	logger   *logger.LoggerAdapter
	store    *tokenStore
	sessions *services.SessionService
	auth     *services.AuthService
	campuses *services.CampusService
	campus   *services.CampusFlows
	zone     *services.ZoneFlows
	rider    *services.RiderFlows
	out      io.Writer
	in       *bufio.Reader
}

func newConsole(cfg *config.Container, store *tokenStore, out io.Writer, in io.Reader, verbose bool) *console {
	log := logger.NewNop()
	if verbose {
		log = logger.NewLoggerAdapter(cfg.App.Env)
	}

	cache := memory.NewCache()
	gate := workflow.NewLocalGate()
	validate := validator.New()
	metrics := prometheus.NewPrometheusAdapterWith(promclient.NewRegistry())
	api := backend.NewClient(cfg.Backend, log, metrics)

	sessions := services.NewSessionService(cache, log)
	activity := services.NewActivityService(nil, nil, log)
	flowCfg := services.FlowConfig{
		Cache:       cache,
		Logger:      log,
		StateTTL:    cfg.Token.DurationValue(),
		RowsPerPage: cfg.Console.RowsPerPageInt(),
	}

	campuses := services.NewCampusService(api, cache, sessions, activity, log, validate)

	return &console{
		cfg:      cfg,
		logger:   log,
		store:    store,
		sessions: sessions,
		auth:     services.NewAuthService(api, localTokens{}, cfg.Token.DurationValue(), sessions, activity, log, validate),
		campuses: campuses,
		campus:   services.NewCampusFlows(flowCfg, gate, campuses),
		zone:     services.NewZoneFlows(flowCfg, gate, services.NewZoneService(api, sessions, activity, log, validate)),
		rider:    services.NewRiderFlows(flowCfg, gate, cfg.Console.RiderPageLimitInt(), services.NewRiderService(api, sessions, activity, log, validate)),
		out:      out,
		in:       bufio.NewReader(in),
	}
}

// session rebuilds a console session around the stored backend token.
func (c *console) session() (*domain.Session, error) {
	cred, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	return c.sessions.Create(cred.Email, cred.Role, cred.BackendToken, cred.ExpiresAt)
}

// confirm asks a yes/no question on the terminal. Anything but y or yes is a no.
func (c *console) confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// localTokens satisfies the sign-in flow without minting a console token; the
// terminal keeps the backend token itself.
type localTokens struct{}

func (localTokens) CreateToken(session *domain.Session) (string, error) {
	return session.ID.String(), nil
}

func (localTokens) VerifyToken(string) (*domain.TokenPayload, error) {
	return nil, errors.New("console tokens are not used by campusctl")
}
