// Package http provides HTTP middleware and handlers for authentication.
package http

import (
	"context"

	authDomain "github.com/redeemly/vouchers/internal/auth/domain"
)

// clientKey is a context key type for storing authenticated clients.
type clientKey struct{}

// WithClient stores an authenticated client in the context.
// Called by the authentication middleware after successful token validation.
func WithClient(ctx context.Context, client *authDomain.Client) context.Context {
	return context.WithValue(ctx, clientKey{}, client)
}

// GetClient retrieves an authenticated client from the context.
// Returns (client, true) if a client is present, or (nil, false) otherwise.
func GetClient(ctx context.Context) (*authDomain.Client, bool) {
	client, ok := ctx.Value(clientKey{}).(*authDomain.Client)
	return client, ok
}
