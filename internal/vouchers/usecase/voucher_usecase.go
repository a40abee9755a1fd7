package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/redeemly/vouchers/internal/database"
	apperrors "github.com/redeemly/vouchers/internal/errors"
	vouchersDomain "github.com/redeemly/vouchers/internal/vouchers/domain"
	vouchersService "github.com/redeemly/vouchers/internal/vouchers/service"
)

// voucherUseCase implements VoucherUseCase.
type voucherUseCase struct {
	voucherRepo   VoucherRepository
	codeGenerator vouchersService.CodeGenerator
	txManager     database.TxManager
	codeLength    int
}

// Get retrieves a voucher by ID.
func (v *voucherUseCase) Get(
	ctx context.Context,
	voucherID uuid.UUID,
) (*vouchersDomain.Voucher, error) {
	return v.voucherRepo.Get(ctx, voucherID)
}

// Create persists a voucher with the caller-supplied code. Vouchers start
// unused; IsEnabled defaults to true when omitted.
func (v *voucherUseCase) Create(
	ctx context.Context,
	input *vouchersDomain.CreateVoucherInput,
) (*vouchersDomain.Voucher, error) {
	now := time.Now().UTC()

	isEnabled := true
	if input.IsEnabled != nil {
		isEnabled = *input.IsEnabled
	}

	voucher := &vouchersDomain.Voucher{
		ID:            uuid.Must(uuid.NewV7()),
		Code:          input.Code,
		Description:   input.Description,
		DiscountValue: input.DiscountValue,
		DiscountType:  input.DiscountType,
		IsEnabled:     isEnabled,
		Used:          false,
		Expires:       input.Expires,
		UserID:        input.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := v.voucherRepo.Create(ctx, voucher); err != nil {
		return nil, err
	}

	return voucher, nil
}

// Update applies a partial update to a voucher.
func (v *voucherUseCase) Update(
	ctx context.Context,
	voucherID uuid.UUID,
	input *vouchersDomain.UpdateVoucherInput,
) error {
	return v.voucherRepo.Update(ctx, voucherID, input)
}

// Delete removes a voucher. Deleting a missing voucher is not an error.
func (v *voucherUseCase) Delete(ctx context.Context, voucherID uuid.UUID) error {
	return v.voucherRepo.Delete(ctx, voucherID)
}

// List retrieves vouchers with pagination plus the total count.
func (v *voucherUseCase) List(
	ctx context.Context,
	filter vouchersDomain.ListVouchersFilter,
	offset, limit int,
) ([]*vouchersDomain.Voucher, int, error) {
	return v.voucherRepo.List(ctx, filter, offset, limit)
}

// Generate creates quantity vouchers for one user from the template and
// persists them in a single batch inside a transaction.
func (v *voucherUseCase) Generate(
	ctx context.Context,
	quantity int,
	userID string,
	template *vouchersDomain.GenerateVouchersInput,
) error {
	codes, err := v.codeGenerator.GenerateBatch(quantity, v.codeLength)
	if err != nil {
		return apperrors.Wrap(err, "failed to generate voucher codes")
	}

	now := time.Now().UTC()

	isEnabled := true
	if template.IsEnabled != nil {
		isEnabled = *template.IsEnabled
	}

	vouchers := make([]*vouchersDomain.Voucher, 0, len(codes))
	for _, code := range codes {
		vouchers = append(vouchers, &vouchersDomain.Voucher{
			ID:            uuid.Must(uuid.NewV7()),
			Code:          code,
			Description:   template.Description,
			DiscountValue: template.DiscountValue,
			DiscountType:  template.DiscountType,
			IsEnabled:     isEnabled,
			Used:          false,
			Expires:       template.Expires,
			UserID:        userID,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	return v.txManager.WithTx(ctx, func(ctx context.Context) error {
		return v.voucherRepo.CreateBatch(ctx, vouchers)
	})
}

// GenerateForMany generates vouchers for every user concurrently. Each user
// gets its own transaction; the first failure cancels the group, but batches
// already committed for other users are not rolled back.
func (v *voucherUseCase) GenerateForMany(
	ctx context.Context,
	quantity int,
	userIDs []string,
	template *vouchersDomain.GenerateVouchersInput,
) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, userID := range userIDs {
		g.Go(func() error {
			return v.Generate(ctx, quantity, userID, template)
		})
	}

	return g.Wait()
}

// Redeem consumes the voucher matching code and owner. The repository's
// compare-and-set guarantees at most one caller wins a concurrent race;
// the losers get ErrAlreadyUsed.
func (v *voucherUseCase) Redeem(
	ctx context.Context,
	code, userID string,
) (*vouchersDomain.Voucher, error) {
	voucher, err := v.voucherRepo.FindRedeemable(ctx, code, userID)
	if err != nil {
		return nil, err
	}

	if voucher.Used {
		return nil, apperrors.ErrAlreadyUsed
	}

	usedAt := time.Now().UTC()
	if err := v.voucherRepo.MarkUsed(ctx, voucher.ID, usedAt); err != nil {
		return nil, err
	}

	voucher.Used = true
	voucher.UsedAt = &usedAt
	voucher.UpdatedAt = usedAt

	return voucher, nil
}

// NewVoucherUseCase creates a new VoucherUseCase.
func NewVoucherUseCase(
	voucherRepo VoucherRepository,
	codeGenerator vouchersService.CodeGenerator,
	txManager database.TxManager,
	codeLength int,
) VoucherUseCase {
	return &voucherUseCase{
		voucherRepo:   voucherRepo,
		codeGenerator: codeGenerator,
		txManager:     txManager,
		codeLength:    codeLength,
	}
}
