// Package usecase implements the voucher business logic.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	vouchersDomain "github.com/redeemly/vouchers/internal/vouchers/domain"
)

// VoucherRepository defines the interface for voucher persistence.
type VoucherRepository interface {
	// Create inserts a new voucher.
	Create(ctx context.Context, voucher *vouchersDomain.Voucher) error

	// CreateBatch inserts multiple vouchers in a single statement.
	CreateBatch(ctx context.Context, vouchers []*vouchersDomain.Voucher) error

	// Get retrieves a voucher by ID. Returns ErrVoucherNotFound if missing.
	Get(ctx context.Context, voucherID uuid.UUID) (*vouchersDomain.Voucher, error)

	// Update applies a partial update. Returns ErrVoucherNotFound when no
	// row matched.
	Update(ctx context.Context, voucherID uuid.UUID, input *vouchersDomain.UpdateVoucherInput) error

	// Delete removes a voucher. Deleting a missing voucher is not an error.
	Delete(ctx context.Context, voucherID uuid.UUID) error

	// List retrieves vouchers with pagination plus the total count matching
	// the filter.
	List(
		ctx context.Context,
		filter vouchersDomain.ListVouchersFilter,
		offset, limit int,
	) ([]*vouchersDomain.Voucher, int, error)

	// FindRedeemable retrieves an enabled voucher matching code and owner.
	// Returns ErrUnredeemable when no such voucher exists.
	FindRedeemable(ctx context.Context, code, userID string) (*vouchersDomain.Voucher, error)

	// MarkUsed transitions a voucher to used with a compare-and-set update.
	// Returns ErrAlreadyUsed when the voucher was consumed before.
	MarkUsed(ctx context.Context, voucherID uuid.UUID, usedAt time.Time) error
}

// VoucherUseCase defines the voucher lifecycle operations.
type VoucherUseCase interface {
	// Get retrieves a voucher by ID.
	Get(ctx context.Context, voucherID uuid.UUID) (*vouchersDomain.Voucher, error)

	// Create persists a voucher with a caller-supplied code.
	Create(ctx context.Context, input *vouchersDomain.CreateVoucherInput) (*vouchersDomain.Voucher, error)

	// Update applies a partial update to a voucher.
	Update(ctx context.Context, voucherID uuid.UUID, input *vouchersDomain.UpdateVoucherInput) error

	// Delete removes a voucher. Idempotent.
	Delete(ctx context.Context, voucherID uuid.UUID) error

	// List retrieves vouchers with pagination plus the total count.
	List(
		ctx context.Context,
		filter vouchersDomain.ListVouchersFilter,
		offset, limit int,
	) ([]*vouchersDomain.Voucher, int, error)

	// Generate creates quantity vouchers for one user from a template,
	// persisted atomically in a single batch.
	Generate(
		ctx context.Context,
		quantity int,
		userID string,
		template *vouchersDomain.GenerateVouchersInput,
	) error

	// GenerateForMany runs Generate concurrently for every user ID.
	// Batches already committed for other users persist if one fails.
	GenerateForMany(
		ctx context.Context,
		quantity int,
		userIDs []string,
		template *vouchersDomain.GenerateVouchersInput,
	) error

	// Redeem consumes the voucher matching code and owner exactly once.
	Redeem(ctx context.Context, code, userID string) (*vouchersDomain.Voucher, error)
}
