package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/redeemly/vouchers/internal/auth/domain"
	authService "github.com/redeemly/vouchers/internal/auth/service"
)

// clientUseCase implements ClientUseCase.
type clientUseCase struct {
	clientRepo    ClientRepository
	secretService authService.SecretService
}

// Create generates a new API client with a generated Argon2id-hashed secret.
// The plain secret is only present in the returned output.
func (c *clientUseCase) Create(
	ctx context.Context,
	createClientInput *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	plainSecret, hashedSecret, err := c.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	client := &authDomain.Client{
		ID:           uuid.Must(uuid.NewV7()),
		Secret:       hashedSecret,
		Name:         createClientInput.Name,
		IsActive:     createClientInput.IsActive,
		Capabilities: createClientInput.Capabilities,
		CreatedAt:    time.Now().UTC(),
	}

	if err := c.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return &authDomain.CreateClientOutput{
		ID:          client.ID,
		PlainSecret: plainSecret,
	}, nil
}

// Update modifies an existing client's mutable fields.
func (c *clientUseCase) Update(
	ctx context.Context,
	clientID uuid.UUID,
	updateClientInput *authDomain.UpdateClientInput,
) error {
	client, err := c.clientRepo.Get(ctx, clientID)
	if err != nil {
		return err
	}

	client.Name = updateClientInput.Name
	client.IsActive = updateClientInput.IsActive
	client.Capabilities = updateClientInput.Capabilities

	return c.clientRepo.Update(ctx, client)
}

// Get retrieves a client by ID.
func (c *clientUseCase) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	return c.clientRepo.Get(ctx, clientID)
}

// NewClientUseCase creates a new ClientUseCase with the provided dependencies.
func NewClientUseCase(
	clientRepo ClientRepository,
	secretService authService.SecretService,
) ClientUseCase {
	return &clientUseCase{
		clientRepo:    clientRepo,
		secretService: secretService,
	}
}
