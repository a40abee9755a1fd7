package app

import (
	"fmt"
	"sync"

	authHTTP "github.com/redeemly/vouchers/internal/auth/http"
	authRepository "github.com/redeemly/vouchers/internal/auth/repository"
	authService "github.com/redeemly/vouchers/internal/auth/service"
	authUseCase "github.com/redeemly/vouchers/internal/auth/usecase"
)

// authComponents groups the lazily-initialized auth module dependencies.
type authComponents struct {
	secretService authService.SecretService
	tokenService  authService.TokenService
	clientRepo    authUseCase.ClientRepository
	tokenRepo     authUseCase.TokenRepository
	clientUseCase authUseCase.ClientUseCase
	tokenUseCase  authUseCase.TokenUseCase
	tokenHandler  *authHTTP.TokenHandler

	secretServiceInit sync.Once
	tokenServiceInit  sync.Once
	clientRepoInit    sync.Once
	tokenRepoInit     sync.Once
	clientUseCaseInit sync.Once
	tokenUseCaseInit  sync.Once
	tokenHandlerInit  sync.Once
}

// SecretService returns the client secret hashing service.
func (c *Container) SecretService() authService.SecretService {
	c.auth.secretServiceInit.Do(func() {
		c.auth.secretService = authService.NewSecretService()
	})
	return c.auth.secretService
}

// TokenService returns the token generation and hashing service.
func (c *Container) TokenService() authService.TokenService {
	c.auth.tokenServiceInit.Do(func() {
		c.auth.tokenService = authService.NewTokenService()
	})
	return c.auth.tokenService
}

// ClientRepository returns the client repository based on database driver.
func (c *Container) ClientRepository() (authUseCase.ClientRepository, error) {
	c.auth.clientRepoInit.Do(func() {
		var err error
		c.auth.clientRepo, err = c.initClientRepository()
		if err != nil {
			c.initErrors["clientRepo"] = err
		}
	})
	if storedErr, exists := c.initErrors["clientRepo"]; exists {
		return nil, storedErr
	}
	return c.auth.clientRepo, nil
}

// TokenRepository returns the token repository based on database driver.
func (c *Container) TokenRepository() (authUseCase.TokenRepository, error) {
	c.auth.tokenRepoInit.Do(func() {
		var err error
		c.auth.tokenRepo, err = c.initTokenRepository()
		if err != nil {
			c.initErrors["tokenRepo"] = err
		}
	})
	if storedErr, exists := c.initErrors["tokenRepo"]; exists {
		return nil, storedErr
	}
	return c.auth.tokenRepo, nil
}

// ClientUseCase returns the client management use case.
func (c *Container) ClientUseCase() (authUseCase.ClientUseCase, error) {
	c.auth.clientUseCaseInit.Do(func() {
		var err error
		c.auth.clientUseCase, err = c.initClientUseCase()
		if err != nil {
			c.initErrors["clientUseCase"] = err
		}
	})
	if storedErr, exists := c.initErrors["clientUseCase"]; exists {
		return nil, storedErr
	}
	return c.auth.clientUseCase, nil
}

// TokenUseCase returns the token issuance and authentication use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	c.auth.tokenUseCaseInit.Do(func() {
		var err error
		c.auth.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.auth.tokenUseCase, nil
}

// TokenHandler returns the HTTP handler for token operations.
func (c *Container) TokenHandler() (*authHTTP.TokenHandler, error) {
	c.auth.tokenHandlerInit.Do(func() {
		var err error
		c.auth.tokenHandler, err = c.initTokenHandler()
		if err != nil {
			c.initErrors["tokenHandler"] = err
		}
	})
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.auth.tokenHandler, nil
}

// initClientRepository creates the client repository based on the database driver.
func (c *Container) initClientRepository() (authUseCase.ClientRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for client repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLClientRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLClientRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenRepository creates the token repository based on the database driver.
func (c *Container) initTokenRepository() (authUseCase.TokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLTokenRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initClientUseCase creates the client use case with all its dependencies.
func (c *Container) initClientUseCase() (authUseCase.ClientUseCase, error) {
	clientRepo, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for client use case: %w", err)
	}

	return authUseCase.NewClientUseCase(clientRepo, c.SecretService()), nil
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	clientRepo, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for token use case: %w", err)
	}

	tokenRepo, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for token use case: %w", err)
	}

	return authUseCase.NewTokenUseCase(
		c.config,
		clientRepo,
		tokenRepo,
		c.SecretService(),
		c.TokenService(),
	), nil
}

// initTokenHandler creates the token HTTP handler with all its dependencies.
func (c *Container) initTokenHandler() (*authHTTP.TokenHandler, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}

	return authHTTP.NewTokenHandler(tokenUseCase, c.Logger()), nil
}
