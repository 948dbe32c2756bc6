package services

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/logger"
	"github.com/sm8ta/campusride_admin_console/internal/adapter/memory"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type backendMock struct {
	mock.Mock
}

func (m *backendMock) Register(ctx context.Context, reg *domain.Registration) error {
	return m.Called(ctx, reg).Error(0)
}

func (m *backendMock) Login(ctx context.Context, cred *domain.Credentials) (*domain.LoginResult, error) {
	args := m.Called(ctx, cred)
	res, _ := args.Get(0).(*domain.LoginResult)
	return res, args.Error(1)
}

func (m *backendMock) CreateCampus(ctx context.Context, token string, payload *domain.CampusPayload) (*domain.Campus, error) {
	args := m.Called(ctx, token, payload)
	res, _ := args.Get(0).(*domain.Campus)
	return res, args.Error(1)
}

func (m *backendMock) ListCampuses(ctx context.Context, token string, filter domain.CampusFilter) ([]domain.Campus, error) {
	args := m.Called(ctx, token, filter)
	res, _ := args.Get(0).([]domain.Campus)
	return res, args.Error(1)
}

func (m *backendMock) GetCampus(ctx context.Context, token, id string) (*domain.Campus, error) {
	args := m.Called(ctx, token, id)
	res, _ := args.Get(0).(*domain.Campus)
	return res, args.Error(1)
}

func (m *backendMock) UpdateCampus(ctx context.Context, token, id string, payload *domain.CampusPayload) (*domain.Campus, error) {
	args := m.Called(ctx, token, id, payload)
	res, _ := args.Get(0).(*domain.Campus)
	return res, args.Error(1)
}

func (m *backendMock) CreateZone(ctx context.Context, token string, payload *domain.ZonePayload) (*domain.Zone, error) {
	args := m.Called(ctx, token, payload)
	res, _ := args.Get(0).(*domain.Zone)
	return res, args.Error(1)
}

func (m *backendMock) ListZones(ctx context.Context, token string) ([]domain.Zone, error) {
	args := m.Called(ctx, token)
	res, _ := args.Get(0).([]domain.Zone)
	return res, args.Error(1)
}

func (m *backendMock) GetZone(ctx context.Context, token, id string) (*domain.Zone, error) {
	args := m.Called(ctx, token, id)
	res, _ := args.Get(0).(*domain.Zone)
	return res, args.Error(1)
}

func (m *backendMock) UpdateZone(ctx context.Context, token, id string, payload *domain.ZonePayload) (*domain.Zone, error) {
	args := m.Called(ctx, token, id, payload)
	res, _ := args.Get(0).(*domain.Zone)
	return res, args.Error(1)
}

func (m *backendMock) DeleteZone(ctx context.Context, token, id string) error {
	return m.Called(ctx, token, id).Error(0)
}

func (m *backendMock) CreateRider(ctx context.Context, token string, app *domain.RiderApplication) (*domain.Rider, error) {
	args := m.Called(ctx, token, app)
	res, _ := args.Get(0).(*domain.Rider)
	return res, args.Error(1)
}

func (m *backendMock) ListRiders(ctx context.Context, token string, filter domain.RiderFilter, page, limit int) (*domain.RiderPage, error) {
	args := m.Called(ctx, token, filter, page, limit)
	res, _ := args.Get(0).(*domain.RiderPage)
	return res, args.Error(1)
}

func (m *backendMock) UpdateRider(ctx context.Context, token, id string, patch map[string]string) (*domain.Rider, error) {
	args := m.Called(ctx, token, id, patch)
	res, _ := args.Get(0).(*domain.Rider)
	return res, args.Error(1)
}

type tokenMock struct {
	mock.Mock
}

func (m *tokenMock) CreateToken(session *domain.Session) (string, error) {
	args := m.Called(session)
	return args.String(0), args.Error(1)
}

func (m *tokenMock) VerifyToken(token string) (*domain.TokenPayload, error) {
	args := m.Called(token)
	res, _ := args.Get(0).(*domain.TokenPayload)
	return res, args.Error(1)
}

type activityRepoMock struct {
	mock.Mock
}

func (m *activityRepoMock) CreateActivity(ctx context.Context, a *domain.Activity) (*domain.Activity, error) {
	args := m.Called(ctx, a)
	res, _ := args.Get(0).(*domain.Activity)
	return res, args.Error(1)
}

func (m *activityRepoMock) ListActivities(ctx context.Context, limit int) ([]*domain.Activity, error) {
	args := m.Called(ctx, limit)
	res, _ := args.Get(0).([]*domain.Activity)
	return res, args.Error(1)
}

type fixture struct {
	api      *backendMock
	cache    *memory.Cache
	sessions *SessionService
	activity *ActivityService
	session  *domain.Session
	cfg      FlowConfig
	validate *validator.Validate
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cache := memory.NewCache()
	log := logger.NewNop()
	sessions := NewSessionService(cache, log)
	session, err := sessions.Create("ops@campusride.ng", domain.Admin, "backend-token", time.Now().Add(time.Hour))
	require.NoError(t, err)

	return &fixture{
		api:      &backendMock{},
		cache:    cache,
		sessions: sessions,
		activity: NewActivityService(nil, nil, log),
		session:  session,
		cfg:      FlowConfig{Cache: cache, Logger: log, StateTTL: time.Hour, RowsPerPage: 5},
		validate: validator.New(),
	}
}

func (f *fixture) campusFlows() *CampusFlows {
	svc := NewCampusService(f.api, f.cache, f.sessions, f.activity, f.cfg.Logger, f.validate)
	return NewCampusFlows(f.cfg, nil, svc)
}

func (f *fixture) zoneFlows() *ZoneFlows {
	svc := NewZoneService(f.api, f.sessions, f.activity, f.cfg.Logger, f.validate)
	return NewZoneFlows(f.cfg, nil, svc)
}

func (f *fixture) riderFlows() *RiderFlows {
	svc := NewRiderService(f.api, f.sessions, f.activity, f.cfg.Logger, f.validate)
	return NewRiderFlows(f.cfg, nil, 10, svc)
}

func campusFields() map[string]string {
	return map[string]string{
		"name":                "Unilag",
		"description":         "Main campus",
		"eduMailExtension":    "unilag.edu.ng",
		"averageHalfDistance": "2.5",
		"coordinates.0.lat":   "6.51",
		"coordinates.0.lng":   "3.38",
		"coordinates.1.lat":   "6.52",
		"coordinates.1.lng":   "3.39",
		"coordinates.2.lat":   "6.53",
		"coordinates.2.lng":   "3.385",
		"coordinates.3.lat":   "6.5",
		"coordinates.3.lng":   "3.387",
	}
}

func sampleQuad() []domain.Coordinate {
	return []domain.Coordinate{{Lat: 6.51, Lng: 3.38}, {Lat: 6.52, Lng: 3.39}, {Lat: 6.53, Lng: 3.385}, {Lat: 6.5, Lng: 3.387}}
}

func backendError(status int, msg string) error {
	return &domain.BackendError{Operation: "test", Status: status, Message: msg}
}
