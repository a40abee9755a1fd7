package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/redeemly/vouchers/internal/auth/domain"
)

// mockClientRepository is a mock implementation of ClientRepository for testing.
type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepository) Update(ctx context.Context, client *authDomain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Client), args.Error(1)
}

// mockTokenRepository is a mock implementation of TokenRepository for testing.
type mockTokenRepository struct {
	mock.Mock
}

func (m *mockTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Token, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Token), args.Error(1)
}

// mockSecretService is a mock implementation of service.SecretService for testing.
type mockSecretService struct {
	mock.Mock
}

func (m *mockSecretService) GenerateSecret() (plainSecret string, hashedSecret string, error error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockSecretService) HashSecret(plainSecret string) (hashedSecret string, error error) {
	args := m.Called(plainSecret)
	return args.String(0), args.Error(1)
}

func (m *mockSecretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	args := m.Called(plainSecret, hashedSecret)
	return args.Bool(0)
}

// mockTokenService is a mock implementation of service.TokenService for testing.
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken() (plainToken string, tokenHash string, error error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) HashToken(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}
