package storage

import (
	"context"
)

// TokenKey фиксированный ключ, под которым хранится bearer token
const TokenKey = "acc_token"

// TokenStorage defines interface for the durable session token store on client.
// The token is an opaque string; the store does not interpret it.
type TokenStorage interface {
	// SaveToken stores the bearer token, replacing any previous one
	SaveToken(ctx context.Context, token string) error

	// GetToken retrieves the stored bearer token
	// Returns ErrTokenNotFound if no token exists
	GetToken(ctx context.Context) (string, error)

	// DeleteToken removes the stored token
	// Returns ErrTokenNotFound if no token exists
	DeleteToken(ctx context.Context) error
}
