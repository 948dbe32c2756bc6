package backend

import (
	"context"
	"net/http"

	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
)

func (c *Client) Register(ctx context.Context, reg *domain.Registration) error {
	_, err := c.submit(ctx, call{
		id:     "register",
		method: http.MethodPost,
		path:   "/auth/register",
		params: jsonBody(reg),
	}, nil)
	return err
}

func (c *Client) Login(ctx context.Context, cred *domain.Credentials) (*domain.LoginResult, error) {
	var result domain.LoginResult
	if _, err := c.submit(ctx, call{
		id:     "login",
		method: http.MethodPost,
		path:   "/auth/login",
		params: jsonBody(cred),
	}, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, &domain.BackendError{Operation: "login", Status: http.StatusBadGateway, Message: "Login response carried no token"}
	}
	return &result, nil
}
