package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	vouchersDomain "github.com/redeemly/vouchers/internal/vouchers/domain"
)

type mockVoucherRepository struct {
	mock.Mock
}

func (m *mockVoucherRepository) Create(ctx context.Context, voucher *vouchersDomain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *mockVoucherRepository) CreateBatch(
	ctx context.Context,
	vouchers []*vouchersDomain.Voucher,
) error {
	args := m.Called(ctx, vouchers)
	return args.Error(0)
}

func (m *mockVoucherRepository) Get(
	ctx context.Context,
	voucherID uuid.UUID,
) (*vouchersDomain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vouchersDomain.Voucher), args.Error(1)
}

func (m *mockVoucherRepository) Update(
	ctx context.Context,
	voucherID uuid.UUID,
	input *vouchersDomain.UpdateVoucherInput,
) error {
	args := m.Called(ctx, voucherID, input)
	return args.Error(0)
}

func (m *mockVoucherRepository) Delete(ctx context.Context, voucherID uuid.UUID) error {
	args := m.Called(ctx, voucherID)
	return args.Error(0)
}

func (m *mockVoucherRepository) List(
	ctx context.Context,
	filter vouchersDomain.ListVouchersFilter,
	offset, limit int,
) ([]*vouchersDomain.Voucher, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*vouchersDomain.Voucher), args.Int(1), args.Error(2)
}

func (m *mockVoucherRepository) FindRedeemable(
	ctx context.Context,
	code, userID string,
) (*vouchersDomain.Voucher, error) {
	args := m.Called(ctx, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vouchersDomain.Voucher), args.Error(1)
}

func (m *mockVoucherRepository) MarkUsed(
	ctx context.Context,
	voucherID uuid.UUID,
	usedAt time.Time,
) error {
	args := m.Called(ctx, voucherID, usedAt)
	return args.Error(0)
}

type mockCodeGenerator struct {
	mock.Mock
}

func (m *mockCodeGenerator) Generate(length int) (string, error) {
	args := m.Called(length)
	return args.String(0), args.Error(1)
}

func (m *mockCodeGenerator) GenerateBatch(count, length int) ([]string, error) {
	args := m.Called(count, length)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// mockTxManager runs the function without a real transaction.
type mockTxManager struct{}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
