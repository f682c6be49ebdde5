package gamepanel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout is the request timeout of the default transport
const DefaultTimeout = 30 * time.Second

// Transport sends a Request and returns the buffered Response.
// Failures to exchange the request with the panel must be reported as
// *TransferError; the Client converts those into *CommunicationError.
// Status codes are not failures.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Response is the raw result of a request.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// HTTPTransport is the default Transport backed by net/http.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport wraps an *http.Client. A nil client gets DefaultTimeout.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPTransport{client: client}
}

// Do implements Transport
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header = req.Header.Clone()
	if httpReq.Header == nil {
		httpReq.Header = make(http.Header)
	}
	if body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &TransferError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransferError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}
