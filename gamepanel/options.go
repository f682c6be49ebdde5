package gamepanel

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	transport  Transport
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

// WithTransport replaces the default HTTP transport. It takes precedence over
// WithHTTPClient and WithTimeout.
func WithTransport(transport Transport) Option {
	return func(o *clientOptions) {
		o.transport = transport
	}
}

// WithHTTPClient sets the *http.Client used by the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout of the default transport.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

func (o *clientOptions) buildTransport() Transport {
	if o.transport != nil {
		return o.transport
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if o.timeout > 0 {
		// copy so a caller-owned client is not modified
		c := *httpClient
		c.Timeout = o.timeout
		httpClient = &c
	}

	return NewHTTPTransport(httpClient)
}
