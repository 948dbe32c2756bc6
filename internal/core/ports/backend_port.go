package ports

import (
	"context"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
)

// The backend APIs take the operator's bearer token on every call. An empty
// token is sent for the public auth endpoints.

type AuthAPI interface {
	Register(ctx context.Context, reg *domain.Registration) error
	Login(ctx context.Context, cred *domain.Credentials) (*domain.LoginResult, error)
}

type CampusAPI interface {
	CreateCampus(ctx context.Context, token string, payload *domain.CampusPayload) (*domain.Campus, error)
	ListCampuses(ctx context.Context, token string, filter domain.CampusFilter) ([]domain.Campus, error)
	GetCampus(ctx context.Context, token, id string) (*domain.Campus, error)
	UpdateCampus(ctx context.Context, token, id string, payload *domain.CampusPayload) (*domain.Campus, error)
}

type ZoneAPI interface {
	CreateZone(ctx context.Context, token string, payload *domain.ZonePayload) (*domain.Zone, error)
	ListZones(ctx context.Context, token string) ([]domain.Zone, error)
	GetZone(ctx context.Context, token, id string) (*domain.Zone, error)
	UpdateZone(ctx context.Context, token, id string, payload *domain.ZonePayload) (*domain.Zone, error)
	DeleteZone(ctx context.Context, token, id string) error
}

type RiderAPI interface {
	CreateRider(ctx context.Context, token string, app *domain.RiderApplication) (*domain.Rider, error)
	ListRiders(ctx context.Context, token string, filter domain.RiderFilter, page, limit int) (*domain.RiderPage, error)
	UpdateRider(ctx context.Context, token, id string, patch map[string]string) (*domain.Rider, error)
}

type BackendAPI interface {
	AuthAPI
	CampusAPI
	ZoneAPI
	RiderAPI
}
