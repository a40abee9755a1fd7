// Package usecase implements business logic orchestration for authentication.
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/redeemly/vouchers/internal/auth/domain"
	authService "github.com/redeemly/vouchers/internal/auth/service"
	"github.com/redeemly/vouchers/internal/config"
)

// tokenUseCase implements TokenUseCase.
type tokenUseCase struct {
	config        *config.Config
	clientRepo    ClientRepository
	tokenRepo     TokenRepository
	secretService authService.SecretService
	tokenService  authService.TokenService
}

// Issue authenticates a client and generates a new bearer token.
//
// Security Notes:
//   - Returns ErrInvalidCredentials for both non-existent clients and wrong
//     secrets to prevent enumeration attacks
//   - Returns ErrClientInactive if the client exists but is not active
//   - The plain token is only returned once
//   - Expiration is set from Config.AuthTokenExpiration
func (t *tokenUseCase) Issue(
	ctx context.Context,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	client, err := t.clientRepo.Get(ctx, issueTokenInput.ClientID)
	if err != nil {
		if errors.Is(err, authDomain.ErrClientNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !client.IsActive {
		return nil, authDomain.ErrClientInactive
	}

	if !t.secretService.CompareSecret(issueTokenInput.ClientSecret, client.Secret) {
		return nil, authDomain.ErrInvalidCredentials
	}

	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().UTC().Add(t.config.AuthTokenExpiration)
	token := &authDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		ClientID:  client.ID,
		ExpiresAt: expiresAt,
		RevokedAt: nil,
		CreatedAt: time.Now().UTC(),
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &authDomain.IssueTokenOutput{
		PlainToken: plainToken,
		ExpiresAt:  expiresAt,
	}, nil
}

// Authenticate validates a token hash and returns the associated client.
//
// Security Notes:
//   - Returns ErrInvalidCredentials for token not found, expired, or revoked
//     to prevent enumeration and information leakage
//   - Returns ErrClientInactive if the client exists but is not active
//   - All time comparisons use UTC
func (t *tokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error) {
	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrTokenNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if token.ExpiresAt.Before(time.Now().UTC()) {
		return nil, authDomain.ErrInvalidCredentials
	}

	if token.RevokedAt != nil {
		return nil, authDomain.ErrInvalidCredentials
	}

	client, err := t.clientRepo.Get(ctx, token.ClientID)
	if err != nil {
		// Shouldn't happen due to FK, but handle gracefully
		if errors.Is(err, authDomain.ErrClientNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !client.IsActive {
		return nil, authDomain.ErrClientInactive
	}

	return client, nil
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	config *config.Config,
	clientRepo ClientRepository,
	tokenRepo TokenRepository,
	secretService authService.SecretService,
	tokenService authService.TokenService,
) TokenUseCase {
	return &tokenUseCase{
		config:        config,
		clientRepo:    clientRepo,
		tokenRepo:     tokenRepo,
		secretService: secretService,
		tokenService:  tokenService,
	}
}
