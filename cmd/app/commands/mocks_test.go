package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/redeemly/vouchers/internal/auth/domain"
	authUseCase "github.com/redeemly/vouchers/internal/auth/usecase"
)

type mockClientUseCase struct {
	mock.Mock
}

var _ authUseCase.ClientUseCase = (*mockClientUseCase)(nil)

func (m *mockClientUseCase) Create(
	ctx context.Context,
	createClientInput *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	args := m.Called(ctx, createClientInput)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CreateClientOutput), args.Error(1)
}

func (m *mockClientUseCase) Update(
	ctx context.Context,
	clientID uuid.UUID,
	updateClientInput *authDomain.UpdateClientInput,
) error {
	args := m.Called(ctx, clientID, updateClientInput)
	return args.Error(0)
}

func (m *mockClientUseCase) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Client), args.Error(1)
}
