package gamepanel

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	// Scheme is the only scheme the panel API is served on
	Scheme = "https"
	// BasePath is the API prefix every resource path is appended to
	BasePath = "/api/v1"
)

// Request is a fully specified request descriptor. The Client builds a new one
// for every call and never modifies it after Build returns; transports must
// treat it as read-only.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// RequestBuilder turns logical operations into Requests against one panel.
type RequestBuilder struct {
	baseURL   string
	token     AccessToken
	userAgent string
}

// NewRequestBuilder creates a builder for https://<hostname>/api/v1.
// The hostname may carry a port; a leading scheme or trailing slash is stripped.
func NewRequestBuilder(hostname string, token AccessToken) (*RequestBuilder, error) {
	host, err := normalizeHostname(hostname)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("%w: access token is required", ErrInvalidConfig)
	}

	base := url.URL{Scheme: Scheme, Host: host, Path: BasePath}

	return &RequestBuilder{
		baseURL: base.String(),
		token:   token,
	}, nil
}

// BaseURL returns the absolute API root, e.g. https://panel.example.com/api/v1
func (b *RequestBuilder) BaseURL() string {
	return b.baseURL
}

// Build creates a Request for method and path. The path is appended to the base
// URL as is, so dynamic segments must already be escaped with PathSegment. A
// non-nil body is encoded as JSON.
func (b *RequestBuilder) Build(method, path string, body any) (*Request, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}

	if path != "" && path[0] != '/' {
		path = "/" + path
	}

	header := make(http.Header, 4)
	header.Set("Authorization", "Bearer "+b.token.BearerToken())
	header.Set("Accept", "application/json")
	header.Set("X-Request-Id", uuid.New().String())
	if b.userAgent != "" {
		header.Set("User-Agent", b.userAgent)
	}

	req := &Request{
		Method: method,
		URL:    b.baseURL + path,
		Header: header,
	}

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		req.Body = payload
	}

	return req, nil
}

// PathSegment escapes a single path segment so that slashes, spaces and
// reserved characters cannot change the resource path.
func PathSegment(value string) string {
	return url.PathEscape(value)
}

func normalizeHostname(hostname string) (string, error) {
	host := strings.TrimSpace(hostname)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimRight(host, "/")

	if host == "" {
		return "", fmt.Errorf("%w: panel hostname is required", ErrInvalidConfig)
	}
	if strings.ContainsAny(host, "/?# ") {
		return "", fmt.Errorf("%w: invalid panel hostname %q", ErrInvalidConfig, hostname)
	}

	return host, nil
}
