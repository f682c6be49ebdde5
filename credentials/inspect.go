package credentials

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken indicates a token that is not a JWT
var ErrOpaqueToken = errors.New("token is not a JWT")

// TokenInfo describes the claims of a JWT access token
type TokenInfo struct {
	Subject   string
	TokenID   string
	Scopes    []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token expired before now. Tokens without an
// expiry never expire.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Inspect reads the claims of a JWT access token without verifying its
// signature; only the panel can verify it.
func Inspect(token string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %v", ErrOpaqueToken, err)
	}

	var info TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if jti, ok := claims["jti"].(string); ok {
		info.TokenID = jti
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if scopes, ok := claims["scopes"].([]any); ok {
		for _, s := range scopes {
			if scope, ok := s.(string); ok {
				info.Scopes = append(info.Scopes, scope)
			}
		}
	}

	return info, nil
}
