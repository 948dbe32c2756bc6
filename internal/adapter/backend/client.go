package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-openapi/runtime"
	httptransport "github.com/go-openapi/runtime/client"
	"github.com/go-openapi/strfmt"
	"github.com/sm8ta/campusride_admin_console/internal/config"
	"github.com/sm8ta/campusride_admin_console/internal/core/domain"
	"github.com/sm8ta/campusride_admin_console/internal/core/ports"
)

// envelope is the response wrapper of every campus-ride endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *meta           `json:"meta,omitempty"`
}

type meta struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	Total     int `json:"total"`
	TotalPage int `json:"totalPage"`
}

// Client talks to the campus-ride REST API.
type Client struct {
	transport runtime.ClientTransport
	formats   strfmt.Registry
	timeout   time.Duration
	logger    ports.LoggerPort
	metrics   ports.MetricsPort
}

func NewClient(cfg *config.Backend, logger ports.LoggerPort, metrics ports.MetricsPort) *Client {
	transport := httptransport.New(cfg.Host, cfg.BasePath, []string{cfg.Scheme})
	return NewClientWithTransport(transport, cfg.TimeoutValue(), logger, metrics)
}

func NewClientWithTransport(transport runtime.ClientTransport, timeout time.Duration, logger ports.LoggerPort, metrics ports.MetricsPort) *Client {
	return &Client{
		transport: transport,
		formats:   strfmt.Default,
		timeout:   timeout,
		logger:    logger,
		metrics:   metrics,
	}
}

type call struct {
	id       string
	method   string
	path     string
	token    string
	consumes string
	params   func(req runtime.ClientRequest) error
}

// submit runs one operation and decodes the envelope's data into out.
func (c *Client) submit(ctx context.Context, op call, out interface{}) (*envelope, error) {
	status := 0
	start := time.Now()
	defer func() {
		c.metrics.RecordBackendCall(op.id, status, time.Since(start))
	}()

	consumes := op.consumes
	if consumes == "" {
		consumes = runtime.JSONMime
	}

	var authInfo runtime.ClientAuthInfoWriter
	if op.token != "" {
		authInfo = httptransport.BearerToken(op.token)
	}

	result, err := c.transport.Submit(&runtime.ClientOperation{
		ID:                 op.id,
		Method:             op.method,
		PathPattern:        op.path,
		ProducesMediaTypes: []string{runtime.JSONMime},
		ConsumesMediaTypes: []string{consumes},
		Schemes:            []string{"http", "https"},
		AuthInfo:           authInfo,
		Context:            ctx,
		Params: runtime.ClientRequestWriterFunc(func(req runtime.ClientRequest, _ strfmt.Registry) error {
			if c.timeout > 0 {
				if err := req.SetTimeout(c.timeout); err != nil {
					return err
				}
			}
			if op.params == nil {
				return nil
			}
			return op.params(req)
		}),
		Reader: runtime.ClientResponseReaderFunc(func(resp runtime.ClientResponse, consumer runtime.Consumer) (interface{}, error) {
			status = resp.Code()
			var env envelope
			decodeErr := consumer.Consume(resp.Body(), &env)
			if status < http.StatusOK || status >= http.StatusMultipleChoices {
				return nil, &domain.BackendError{Operation: op.id, Status: status, Message: env.Message}
			}
			if decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
				return nil, fmt.Errorf("%s: decode response: %w", op.id, decodeErr)
			}
			if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
				if err := json.Unmarshal(env.Data, out); err != nil {
					return nil, fmt.Errorf("%s: decode data: %w", op.id, err)
				}
			}
			return &env, nil
		}),
	})
	if err != nil {
		var berr *domain.BackendError
		if errors.As(err, &berr) {
			c.logger.Warn("Backend call rejected", map[string]interface{}{
				"operation": op.id,
				"status":    berr.Status,
				"message":   berr.Message,
			})
			return nil, err
		}
		c.logger.Error("Backend call failed", map[string]interface{}{
			"operation": op.id,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("%s: %w: %v", op.id, domain.ErrBackend, err)
	}

	env, ok := result.(*envelope)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result %T: %w", op.id, result, domain.ErrBackend)
	}
	c.logger.Debug("Backend call succeeded", map[string]interface{}{
		"operation": op.id,
		"status":    status,
	})
	return env, nil
}

func jsonBody(body interface{}) func(runtime.ClientRequest) error {
	return func(req runtime.ClientRequest) error {
		return req.SetBodyParam(body)
	}
}

func pathID(id string) func(runtime.ClientRequest) error {
	return func(req runtime.ClientRequest) error {
		return req.SetPathParam("id", id)
	}
}

func pathIDWithBody(id string, body interface{}) func(runtime.ClientRequest) error {
	return func(req runtime.ClientRequest) error {
		if err := req.SetPathParam("id", id); err != nil {
			return err
		}
		return req.SetBodyParam(body)
	}
}
