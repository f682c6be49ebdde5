package gamepanel

// AccessToken supplies the bearer token sent with every request.
// Implementations must be safe for concurrent use when the Client is shared.
type AccessToken interface {
	// BearerToken returns the current token. It is called once per request.
	BearerToken() string
}

// PersonalAccessToken is a static token issued by the panel.
type PersonalAccessToken string

// BearerToken implements AccessToken
func (t PersonalAccessToken) BearerToken() string {
	return string(t)
}

// TokenFunc adapts a function to AccessToken, e.g. for tokens that are refreshed
// outside the client.
type TokenFunc func() string

// BearerToken implements AccessToken
func (f TokenFunc) BearerToken() string {
	return f()
}
