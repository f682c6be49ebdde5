package gamepanel

import (
	"context"
	"net/http"
)

// GetUser retrieves a user by id
func (c *Client) GetUser(ctx context.Context, id string) (map[string]any, error) {
	return c.call(ctx, http.MethodGet, "/users/"+PathSegment(id), nil)
}

// GetUserByUsername retrieves a user by username
func (c *Client) GetUserByUsername(ctx context.Context, username string) (map[string]any, error) {
	return c.call(ctx, http.MethodGet, "/users/username/"+PathSegment(username), nil)
}

// CreateUser creates a user
func (c *Client) CreateUser(ctx context.Context, params map[string]any) (map[string]any, error) {
	return c.call(ctx, http.MethodPost, "/users", requestBody(params))
}

// UpdateUser updates a user. With replaceAll the attributes are replaced (PUT),
// otherwise only the given attributes change (PATCH).
func (c *Client) UpdateUser(ctx context.Context, id string, params map[string]any, replaceAll bool) (map[string]any, error) {
	return c.call(ctx, updateMethod(replaceAll), "/users/"+PathSegment(id), requestBody(params))
}

// DeleteUser deletes a user
func (c *Client) DeleteUser(ctx context.Context, id string) (map[string]any, error) {
	return c.call(ctx, http.MethodDelete, "/users/"+PathSegment(id), nil)
}
