// Package usecase defines business logic for authentication and authorization.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/redeemly/vouchers/internal/auth/domain"
)

// ClientRepository defines persistence operations for API clients.
// Implementations must support transaction-aware operations via context propagation.
type ClientRepository interface {
	// Create stores a new client in the repository.
	Create(ctx context.Context, client *authDomain.Client) error

	// Update modifies an existing client in the repository.
	Update(ctx context.Context, client *authDomain.Client) error

	// Get retrieves a client by ID. Returns ErrClientNotFound if not found.
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)
}

// TokenRepository defines persistence operations for authentication tokens.
// Implementations must support transaction-aware operations via context propagation.
type TokenRepository interface {
	// Create stores a new token in the repository.
	Create(ctx context.Context, token *authDomain.Token) error

	// GetByTokenHash retrieves a token by its SHA-256 hash.
	// Returns ErrTokenNotFound if not found.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error)
}

// ClientUseCase defines business logic operations for managing API clients.
type ClientUseCase interface {
	// Create generates a new API client with a cryptographically secure secret.
	//
	// Returns the client ID and plain text secret. The plain secret is only
	// returned once; the Argon2id hash is what gets stored.
	Create(
		ctx context.Context,
		createClientInput *authDomain.CreateClientInput,
	) (*authDomain.CreateClientOutput, error)

	// Update modifies an existing client's name, active status, and capabilities.
	// Returns ErrClientNotFound if the client doesn't exist.
	Update(ctx context.Context, clientID uuid.UUID, updateClientInput *authDomain.UpdateClientInput) error

	// Get retrieves a client by ID. Returns ErrClientNotFound if not found.
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)
}

// TokenUseCase defines business logic operations for bearer tokens.
type TokenUseCase interface {
	// Issue authenticates a client by ID and secret and returns a new token.
	// Returns ErrInvalidCredentials for unknown clients or wrong secrets,
	// ErrClientInactive for disabled clients.
	Issue(
		ctx context.Context,
		issueTokenInput *authDomain.IssueTokenInput,
	) (*authDomain.IssueTokenOutput, error)

	// Authenticate validates a token hash and returns the associated client.
	// Returns ErrInvalidCredentials for unknown, expired, or revoked tokens.
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error)
}
