package gamepanel

import (
	"context"
)

// UserAPI defines the user operations of the panel
type UserAPI interface {
	// GetUser retrieves a user by id
	GetUser(ctx context.Context, id string) (map[string]any, error)

	// GetUserByUsername retrieves a user by username
	GetUserByUsername(ctx context.Context, username string) (map[string]any, error)

	// CreateUser creates a user from the given attributes
	CreateUser(ctx context.Context, params map[string]any) (map[string]any, error)

	// UpdateUser replaces (replaceAll) or patches a user's attributes
	UpdateUser(ctx context.Context, id string, params map[string]any, replaceAll bool) (map[string]any, error)

	// DeleteUser removes a user
	DeleteUser(ctx context.Context, id string) (map[string]any, error)
}

// ServerAPI defines the game server operations of the panel
type ServerAPI interface {
	GetServer(ctx context.Context, id string) (map[string]any, error)
	CreateServer(ctx context.Context, params map[string]any) (map[string]any, error)
	UpdateServer(ctx context.Context, id string, params map[string]any, replaceAll bool) (map[string]any, error)
	DeleteServer(ctx context.Context, id string) (map[string]any, error)
}

// API is the full panel surface implemented by Client
type API interface {
	UserAPI
	ServerAPI
}

var _ API = (*Client)(nil)
