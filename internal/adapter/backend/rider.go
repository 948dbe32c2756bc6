package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-openapi/runtime"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
)

// CreateRider streams the application and its documents as multipart form data.
func (c *Client) CreateRider(ctx context.Context, token string, app *domain.RiderApplication) (*domain.Rider, error) {
	var rider domain.Rider
	if _, err := c.submit(ctx, call{
		id:       "createRider",
		method:   http.MethodPost,
		path:     "/rider",
		token:    token,
		consumes: runtime.MultipartFormMime,
		params: func(req runtime.ClientRequest) error {
			fields := [][2]string{
				{"firstName", app.FirstName},
				{"lastName", app.LastName},
				{"bikeRegistrationNumber", app.BikeRegistrationNumber},
				{"bikeModel", app.BikeModel},
				{"status", string(app.Status)},
			}
			for _, f := range fields {
				if err := req.SetFormParam(f[0], f[1]); err != nil {
					return err
				}
			}
			for _, doc := range app.Documents {
				if err := req.SetFileParam(string(doc.Kind), runtime.NamedReader(doc.Filename, doc.Content)); err != nil {
					return err
				}
			}
			return nil
		},
	}, &rider); err != nil {
		return nil, err
	}
	return &rider, nil
}

func (c *Client) ListRiders(ctx context.Context, token string, filter domain.RiderFilter, page, limit int) (*domain.RiderPage, error) {
	var riders []domain.Rider
	env, err := c.submit(ctx, call{
		id:     "listRiders",
		method: http.MethodGet,
		path:   "/users",
		token:  token,
		params: func(req runtime.ClientRequest) error {
			if err := req.SetQueryParam("limit", strconv.Itoa(limit)); err != nil {
				return err
			}
			if err := req.SetQueryParam("page", strconv.Itoa(page)); err != nil {
				return err
			}
			if filter.SearchTerm != "" {
				if err := req.SetQueryParam("searchTerm", filter.SearchTerm); err != nil {
					return err
				}
			}
			if filter.Email != "" {
				return req.SetQueryParam("email", filter.Email)
			}
			return nil
		},
	}, &riders)
	if err != nil {
		return nil, err
	}

	out := &domain.RiderPage{Riders: riders, Page: page, TotalPages: 1, Total: len(riders)}
	if env.Meta != nil {
		if env.Meta.Page > 0 {
			out.Page = env.Meta.Page
		}
		if env.Meta.TotalPage > 0 {
			out.TotalPages = env.Meta.TotalPage
		}
		out.Total = env.Meta.Total
	}
	return out, nil
}

func (c *Client) UpdateRider(ctx context.Context, token, id string, patch map[string]string) (*domain.Rider, error) {
	var rider domain.Rider
	if _, err := c.submit(ctx, call{
		id:     "updateRider",
		method: http.MethodPatch,
		path:   "/rider/{id}",
		token:  token,
		params: pathIDWithBody(id, patch),
	}, &rider); err != nil {
		return nil, err
	}
	return &rider, nil
}
