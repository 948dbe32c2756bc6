package backend

import (
	"context"
	"net/http"

	"github.com/go-openapi/runtime"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
)

func (c *Client) CreateCampus(ctx context.Context, token string, payload *domain.CampusPayload) (*domain.Campus, error) {
	var campus domain.Campus
	if _, err := c.submit(ctx, call{
		id:     "createCampus",
		method: http.MethodPost,
		path:   "/campus",
		token:  token,
		params: jsonBody(payload),
	}, &campus); err != nil {
		return nil, err
	}
	return &campus, nil
}

// ListCampuses sends only the non-empty filters.
func (c *Client) ListCampuses(ctx context.Context, token string, filter domain.CampusFilter) ([]domain.Campus, error) {
	var campuses []domain.Campus
	if _, err := c.submit(ctx, call{
		id:     "listCampuses",
		method: http.MethodGet,
		path:   "/campus",
		token:  token,
		params: func(req runtime.ClientRequest) error {
			if filter.Name != "" {
				if err := req.SetQueryParam("name", filter.Name); err != nil {
					return err
				}
			}
			if filter.EduMailExtension != "" {
				return req.SetQueryParam("eduMailExtension", filter.EduMailExtension)
			}
			return nil
		},
	}, &campuses); err != nil {
		return nil, err
	}
	return campuses, nil
}

func (c *Client) GetCampus(ctx context.Context, token, id string) (*domain.Campus, error) {
	var campus domain.Campus
	if _, err := c.submit(ctx, call{
		id:     "getCampus",
		method: http.MethodGet,
		path:   "/campus/{id}",
		token:  token,
		params: pathID(id),
	}, &campus); err != nil {
		return nil, err
	}
	return &campus, nil
}

func (c *Client) UpdateCampus(ctx context.Context, token, id string, payload *domain.CampusPayload) (*domain.Campus, error) {
	var campus domain.Campus
	if _, err := c.submit(ctx, call{
		id:     "updateCampus",
		method: http.MethodPatch,
		path:   "/campus/{id}",
		token:  token,
		params: pathIDWithBody(id, payload),
	}, &campus); err != nil {
		return nil, err
	}
	return &campus, nil
}
