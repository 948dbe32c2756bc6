package backend

import (
	"context"
	"net/http"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
)

func (c *Client) CreateZone(ctx context.Context, token string, payload *domain.ZonePayload) (*domain.Zone, error) {
	var zone domain.Zone
	if _, err := c.submit(ctx, call{
		id:     "createZone",
		method: http.MethodPost,
		path:   "/zone",
		token:  token,
		params: jsonBody(payload),
	}, &zone); err != nil {
		return nil, err
	}
	return &zone, nil
}

func (c *Client) ListZones(ctx context.Context, token string) ([]domain.Zone, error) {
	var zones []domain.Zone
	if _, err := c.submit(ctx, call{
		id:     "listZones",
		method: http.MethodGet,
		path:   "/zone",
		token:  token,
	}, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

func (c *Client) GetZone(ctx context.Context, token, id string) (*domain.Zone, error) {
	var zone domain.Zone
	if _, err := c.submit(ctx, call{
		id:     "getZone",
		method: http.MethodGet,
		path:   "/zone/{id}",
		token:  token,
		params: pathID(id),
	}, &zone); err != nil {
		return nil, err
	}
	return &zone, nil
}

func (c *Client) UpdateZone(ctx context.Context, token, id string, payload *domain.ZonePayload) (*domain.Zone, error) {
	var zone domain.Zone
	if _, err := c.submit(ctx, call{
		id:     "updateZone",
		method: http.MethodPut,
		path:   "/zone/{id}",
		token:  token,
		params: pathIDWithBody(id, payload),
	}, &zone); err != nil {
		return nil, err
	}
	return &zone, nil
}

func (c *Client) DeleteZone(ctx context.Context, token, id string) error {
	_, err := c.submit(ctx, call{
		id:     "deleteZone",
		method: http.MethodDelete,
		path:   "/zone/{id}",
		token:  token,
		params: pathID(id),
	}, nil)
	return err
}
