package gamepanel

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client represents a GamePanel.io API client
type Client struct {
	builder   *RequestBuilder
	transport Transport
	logger    zerolog.Logger
}

// NewClient creates a new client for the panel at hostname. No request is sent.
func NewClient(hostname string, token AccessToken, logger zerolog.Logger, opts ...Option) (*Client, error) {
	options := &clientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	builder, err := NewRequestBuilder(hostname, token)
	if err != nil {
		return nil, err
	}
	builder.userAgent = options.userAgent

	return &Client{
		builder:   builder,
		transport: options.buildTransport(),
		logger:    logger,
	}, nil
}

// BaseURL returns the absolute API root the client talks to
func (c *Client) BaseURL() string {
	return c.builder.BaseURL()
}

// call builds, sends and decodes a single request
func (c *Client) call(ctx context.Context, method, path string, body any) (map[string]any, error) {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return Decode(resp.Body), nil
}

// send builds a request and hands it to the transport. Transfer failures are
// converted into *CommunicationError; any other transport error is returned as is.
func (c *Client) send(ctx context.Context, method, path string, body any) (*Response, error) {
	req, err := c.builder.Build(method, path, body)
	if err != nil {
		return nil, err
	}

	requestID := req.Header.Get("X-Request-Id")
	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL).
		Str("request_id", requestID).
		Msg("Sending game panel request")

	start := time.Now()
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("method", req.Method).
			Str("url", req.URL).
			Str("request_id", requestID).
			Dur("duration", time.Since(start)).
			Msg("Game panel request failed")

		if IsTransferError(err) {
			commErr := Wrap(err)
			commErr.Method = req.Method
			commErr.URL = req.URL
			return nil, commErr
		}
		return nil, err
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Int("bytes", len(resp.Body)).
		Dur("duration", time.Since(start)).
		Msg("Received game panel response")

	return resp, nil
}

// updateMethod selects full replacement or partial update semantics
func updateMethod(replaceAll bool) string {
	if replaceAll {
		return http.MethodPut
	}
	return http.MethodPatch
}

// requestBody keeps a nil parameter map from being sent as JSON null
func requestBody(params map[string]any) map[string]any {
	if params == nil {
		return map[string]any{}
	}
	return params
}
