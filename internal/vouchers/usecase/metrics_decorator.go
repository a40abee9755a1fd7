package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/redeemly/vouchers/internal/metrics"
	vouchersDomain "github.com/redeemly/vouchers/internal/vouchers/domain"
)

// voucherUseCaseWithMetrics decorates VoucherUseCase with metrics instrumentation.
type voucherUseCaseWithMetrics struct {
	next    VoucherUseCase
	metrics metrics.BusinessMetrics
}

// NewVoucherUseCaseWithMetrics wraps a VoucherUseCase with metrics recording.
func NewVoucherUseCaseWithMetrics(useCase VoucherUseCase, m metrics.BusinessMetrics) VoucherUseCase {
	return &voucherUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (v *voucherUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vouchers", operation, status)
	v.metrics.RecordDuration(ctx, "vouchers", operation, time.Since(start), status)
}

// Get records metrics for voucher retrieval operations.
func (v *voucherUseCaseWithMetrics) Get(
	ctx context.Context,
	voucherID uuid.UUID,
) (*vouchersDomain.Voucher, error) {
	start := time.Now()
	voucher, err := v.next.Get(ctx, voucherID)
	v.record(ctx, "voucher_get", start, err)
	return voucher, err
}

// Create records metrics for voucher creation operations.
func (v *voucherUseCaseWithMetrics) Create(
	ctx context.Context,
	input *vouchersDomain.CreateVoucherInput,
) (*vouchersDomain.Voucher, error) {
	start := time.Now()
	voucher, err := v.next.Create(ctx, input)
	v.record(ctx, "voucher_create", start, err)
	return voucher, err
}

// Update records metrics for voucher update operations.
func (v *voucherUseCaseWithMetrics) Update(
	ctx context.Context,
	voucherID uuid.UUID,
	input *vouchersDomain.UpdateVoucherInput,
) error {
	start := time.Now()
	err := v.next.Update(ctx, voucherID, input)
	v.record(ctx, "voucher_update", start, err)
	return err
}

// Delete records metrics for voucher deletion operations.
func (v *voucherUseCaseWithMetrics) Delete(ctx context.Context, voucherID uuid.UUID) error {
	start := time.Now()
	err := v.next.Delete(ctx, voucherID)
	v.record(ctx, "voucher_delete", start, err)
	return err
}

// List records metrics for voucher listing operations.
func (v *voucherUseCaseWithMetrics) List(
	ctx context.Context,
	filter vouchersDomain.ListVouchersFilter,
	offset, limit int,
) ([]*vouchersDomain.Voucher, int, error) {
	start := time.Now()
	vouchers, total, err := v.next.List(ctx, filter, offset, limit)
	v.record(ctx, "voucher_list", start, err)
	return vouchers, total, err
}

// Generate records metrics for single-user voucher generation.
func (v *voucherUseCaseWithMetrics) Generate(
	ctx context.Context,
	quantity int,
	userID string,
	template *vouchersDomain.GenerateVouchersInput,
) error {
	start := time.Now()
	err := v.next.Generate(ctx, quantity, userID, template)
	v.record(ctx, "voucher_generate", start, err)
	return err
}

// GenerateForMany records metrics for multi-user voucher generation.
func (v *voucherUseCaseWithMetrics) GenerateForMany(
	ctx context.Context,
	quantity int,
	userIDs []string,
	template *vouchersDomain.GenerateVouchersInput,
) error {
	start := time.Now()
	err := v.next.GenerateForMany(ctx, quantity, userIDs, template)
	v.record(ctx, "voucher_generate_many", start, err)
	return err
}

// Redeem records metrics for voucher redemption operations.
func (v *voucherUseCaseWithMetrics) Redeem(
	ctx context.Context,
	code, userID string,
) (*vouchersDomain.Voucher, error) {
	start := time.Now()
	voucher, err := v.next.Redeem(ctx, code, userID)
	v.record(ctx, "voucher_redeem", start, err)
	return voucher, err
}
