package gamepanel

import (
	"context"
	"net/http"
)

// GetServer retrieves a game server by id
func (c *Client) GetServer(ctx context.Context, id string) (map[string]any, error) {
	return c.call(ctx, http.MethodGet, "/servers/"+PathSegment(id), nil)
}

// CreateServer creates a game server
func (c *Client) CreateServer(ctx context.Context, params map[string]any) (map[string]any, error) {
	return c.call(ctx, http.MethodPost, "/servers", requestBody(params))
}

// UpdateServer updates a game server, replacing all attributes when replaceAll is set
func (c *Client) UpdateServer(ctx context.Context, id string, params map[string]any, replaceAll bool) (map[string]any, error) {
	return c.call(ctx, updateMethod(replaceAll), "/servers/"+PathSegment(id), requestBody(params))
}

// DeleteServer deletes a game server
func (c *Client) DeleteServer(ctx context.Context, id string) (map[string]any, error) {
	return c.call(ctx, http.MethodDelete, "/servers/"+PathSegment(id), nil)
}
