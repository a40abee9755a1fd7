package app

import (
	"fmt"
	"sync"

	vouchersHTTP "github.com/redeemly/vouchers/internal/vouchers/http"
	vouchersRepository "github.com/redeemly/vouchers/internal/vouchers/repository"
	vouchersService "github.com/redeemly/vouchers/internal/vouchers/service"
	vouchersUseCase "github.com/redeemly/vouchers/internal/vouchers/usecase"
)

// voucherComponents groups the lazily-initialized voucher module dependencies.
type voucherComponents struct {
	codeGenerator  vouchersService.CodeGenerator
	voucherRepo    vouchersUseCase.VoucherRepository
	voucherUseCase vouchersUseCase.VoucherUseCase
	voucherHandler *vouchersHTTP.VoucherHandler

	codeGeneratorInit  sync.Once
	voucherRepoInit    sync.Once
	voucherUseCaseInit sync.Once
	voucherHandlerInit sync.Once
}

// CodeGenerator returns the voucher code generator.
func (c *Container) CodeGenerator() vouchersService.CodeGenerator {
	c.vouchers.codeGeneratorInit.Do(func() {
		c.vouchers.codeGenerator = vouchersService.NewCodeGenerator(c.config.VoucherCodeAlphabet)
	})
	return c.vouchers.codeGenerator
}

// VoucherRepository returns the voucher repository based on database driver.
func (c *Container) VoucherRepository() (vouchersUseCase.VoucherRepository, error) {
	c.vouchers.voucherRepoInit.Do(func() {
		var err error
		c.vouchers.voucherRepo, err = c.initVoucherRepository()
		if err != nil {
			c.initErrors["voucherRepo"] = err
		}
	})
	if storedErr, exists := c.initErrors["voucherRepo"]; exists {
		return nil, storedErr
	}
	return c.vouchers.voucherRepo, nil
}

// VoucherUseCase returns the voucher lifecycle use case.
func (c *Container) VoucherUseCase() (vouchersUseCase.VoucherUseCase, error) {
	c.vouchers.voucherUseCaseInit.Do(func() {
		var err error
		c.vouchers.voucherUseCase, err = c.initVoucherUseCase()
		if err != nil {
			c.initErrors["voucherUseCase"] = err
		}
	})
	if storedErr, exists := c.initErrors["voucherUseCase"]; exists {
		return nil, storedErr
	}
	return c.vouchers.voucherUseCase, nil
}

// VoucherHandler returns the HTTP handler for voucher operations.
func (c *Container) VoucherHandler() (*vouchersHTTP.VoucherHandler, error) {
	c.vouchers.voucherHandlerInit.Do(func() {
		var err error
		c.vouchers.voucherHandler, err = c.initVoucherHandler()
		if err != nil {
			c.initErrors["voucherHandler"] = err
		}
	})
	if storedErr, exists := c.initErrors["voucherHandler"]; exists {
		return nil, storedErr
	}
	return c.vouchers.voucherHandler, nil
}

// initVoucherRepository creates the voucher repository based on the database driver.
func (c *Container) initVoucherRepository() (vouchersUseCase.VoucherRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for voucher repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return vouchersRepository.NewPostgreSQLVoucherRepository(db), nil
	case "mysql":
		return vouchersRepository.NewMySQLVoucherRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initVoucherUseCase creates the voucher use case with all its dependencies.
func (c *Container) initVoucherUseCase() (vouchersUseCase.VoucherUseCase, error) {
	voucherRepo, err := c.VoucherRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get voucher repository for voucher use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for voucher use case: %w", err)
	}

	baseUseCase := vouchersUseCase.NewVoucherUseCase(
		voucherRepo,
		c.CodeGenerator(),
		txManager,
		c.config.VoucherCodeLength,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for voucher use case: %w", err)
		}
		return vouchersUseCase.NewVoucherUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initVoucherHandler creates the voucher HTTP handler with all its dependencies.
func (c *Container) initVoucherHandler() (*vouchersHTTP.VoucherHandler, error) {
	voucherUseCase, err := c.VoucherUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get voucher use case for voucher handler: %w", err)
	}

	return vouchersHTTP.NewVoucherHandler(voucherUseCase, c.Logger()), nil
}
