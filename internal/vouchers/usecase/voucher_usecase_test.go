package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	apperrors "github.com/redeemly/vouchers/internal/errors"
	vouchersDomain "github.com/redeemly/vouchers/internal/vouchers/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestUseCase(repo *mockVoucherRepository, gen *mockCodeGenerator) VoucherUseCase {
	return NewVoucherUseCase(repo, gen, &mockTxManager{}, 8)
}

func TestVoucherUseCase_Create(t *testing.T) {
	repo := &mockVoucherRepository{}
	useCase := newTestUseCase(repo, &mockCodeGenerator{})

	repo.On("Create", mock.Anything, mock.MatchedBy(func(v *vouchersDomain.Voucher) bool {
		return v.Code == "xKj3mWp9" && v.UserID == "user-123" && !v.Used && v.IsEnabled
	})).Return(nil)

	voucher, err := useCase.Create(context.Background(), &vouchersDomain.CreateVoucherInput{
		Code:          "xKj3mWp9",
		Description:   "welcome discount",
		DiscountValue: 10,
		DiscountType:  vouchersDomain.DiscountTypePercentage,
		UserID:        "user-123",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, voucher.ID)
	assert.False(t, voucher.Used)
	assert.Nil(t, voucher.UsedAt)
	assert.True(t, voucher.IsEnabled, "IsEnabled defaults to true when omitted")
	assert.Equal(t, voucher.CreatedAt, voucher.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestVoucherUseCase_Create_Disabled(t *testing.T) {
	repo := &mockVoucherRepository{}
	useCase := newTestUseCase(repo, &mockCodeGenerator{})

	repo.On("Create", mock.Anything, mock.MatchedBy(func(v *vouchersDomain.Voucher) bool {
		return !v.IsEnabled
	})).Return(nil)

	disabled := false
	voucher, err := useCase.Create(context.Background(), &vouchersDomain.CreateVoucherInput{
		Code:          "xKj3mWp9",
		Description:   "disabled voucher",
		DiscountValue: 5,
		DiscountType:  vouchersDomain.DiscountTypeNumeric,
		IsEnabled:     &disabled,
		UserID:        "user-123",
	})
	require.NoError(t, err)

	assert.False(t, voucher.IsEnabled)
	repo.AssertExpectations(t)
}

func TestVoucherUseCase_Create_RepositoryError(t *testing.T) {
	repo := &mockVoucherRepository{}
	useCase := newTestUseCase(repo, &mockCodeGenerator{})

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	voucher, err := useCase.Create(context.Background(), &vouchersDomain.CreateVoucherInput{
		Code:   "xKj3mWp9",
		UserID: "user-123",
	})
	assert.Error(t, err)
	assert.Nil(t, voucher)
}

func TestVoucherUseCase_Get(t *testing.T) {
	repo := &mockVoucherRepository{}
	useCase := newTestUseCase(repo, &mockCodeGenerator{})

	voucherID := uuid.Must(uuid.NewV7())
	expected := &vouchersDomain.Voucher{ID: voucherID, Code: "xKj3mWp9"}
	repo.On("Get", mock.Anything, voucherID).Return(expected, nil)

	voucher, err := useCase.Get(context.Background(), voucherID)
	require.NoError(t, err)
	assert.Equal(t, expected, voucher)
}

func TestVoucherUseCase_Get_NotFound(t *testing.T) {
	repo := &mockVoucherRepository{}
	useCase := newTestUseCase(repo, &mockCodeGenerator{})

	voucherID := uuid.Must(uuid.NewV7())
	repo.On("Get", mock.Anything, voucherID).Return(nil, vouchersDomain.ErrVoucherNotFound)

	voucher, err := useCase.Get(context.Background(), voucherID)
	assert.ErrorIs(t, err, vouchersDomain.ErrVoucherNotFound)
	assert.Nil(t, voucher)
}

func TestVoucherUseCase_Update(t *testing.T) {
	repo := &mockVoucherRepository{}
	useCase := newTestUseCase(repo, &mockCodeGenerator{})

	voucherID := uuid.Must(uuid.NewV7())
	description := "updated"
	input := &vouchersDomain.UpdateVoucherInput{Description: &description}
	repo.On("Update", mock.Anything, voucherID, input).Return(nil)

	err := useCase.Update(context.Background(), voucherID, input)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestVoucherUseCase_Delete(t *testing.T) {
	repo := &mockVoucherRepository{}
	useCase := newTestUseCase(repo, &mockCodeGenerator{})

	voucherID := uuid.Must(uuid.NewV7())
	repo.On("Delete", mock.Anything, voucherID).Return(nil)

	err := useCase.Delete(context.Background(), voucherID)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestVoucherUseCase_List(t *testing.T) {
	repo := &mockVoucherRepository{}
	useCase := newTestUseCase(repo, &mockCodeGenerator{})

	filter := vouchersDomain.ListVouchersFilter{UserID: "user-123"}
	expected := []*vouchersDomain.Voucher{{Code: "xKj3mWp9"}}
	repo.On("List", mock.Anything, filter, 0, 10).Return(expected, 1, nil)

	vouchers, total, err := useCase.List(context.Background(), filter, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, expected, vouchers)
}

func TestVoucherUseCase_Generate(t *testing.T) {
	repo := &mockVoucherRepository{}
	gen := &mockCodeGenerator{}
	useCase := newTestUseCase(repo, gen)

	gen.On("GenerateBatch", 3, 8).Return([]string{"aaaa1111", "bbbb2222", "cccc3333"}, nil)
	repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(vs []*vouchersDomain.Voucher) bool {
		if len(vs) != 3 {
			return false
		}
		for _, v := range vs {
			if v.UserID != "user-123" || v.Used || !v.IsEnabled {
				return false
			}
		}
		return vs[0].Code == "aaaa1111" && vs[2].Code == "cccc3333"
	})).Return(nil)

	err := useCase.Generate(context.Background(), 3, "user-123", &vouchersDomain.GenerateVouchersInput{
		Description:   "campaign",
		DiscountValue: 15,
		DiscountType:  vouchersDomain.DiscountTypePercentage,
	})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
	gen.AssertExpectations(t)
}

func TestVoucherUseCase_Generate_CodeError(t *testing.T) {
	repo := &mockVoucherRepository{}
	gen := &mockCodeGenerator{}
	useCase := newTestUseCase(repo, gen)

	gen.On("GenerateBatch", 0, 8).Return(nil, apperrors.ErrInvalidInput)

	err := useCase.Generate(context.Background(), 0, "user-123", &vouchersDomain.GenerateVouchersInput{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestVoucherUseCase_GenerateForMany(t *testing.T) {
	repo := &mockVoucherRepository{}
	gen := &mockCodeGenerator{}
	useCase := newTestUseCase(repo, gen)

	gen.On("GenerateBatch", 2, 8).Return([]string{"aaaa1111", "bbbb2222"}, nil)

	var mu sync.Mutex
	seen := map[string]int{}
	repo.On("CreateBatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		vouchers := args.Get(1).([]*vouchersDomain.Voucher)
		mu.Lock()
		defer mu.Unlock()
		for _, v := range vouchers {
			seen[v.UserID]++
		}
	}).Return(nil)

	userIDs := []string{"user-1", "user-2", "user-3"}
	err := useCase.GenerateForMany(
		context.Background(),
		2,
		userIDs,
		&vouchersDomain.GenerateVouchersInput{Description: "campaign"},
	)
	require.NoError(t, err)

	for _, userID := range userIDs {
		assert.Equal(t, 2, seen[userID], "user %s should get 2 vouchers", userID)
	}
}

func TestVoucherUseCase_GenerateForMany_PropagatesError(t *testing.T) {
	repo := &mockVoucherRepository{}
	gen := &mockCodeGenerator{}
	useCase := newTestUseCase(repo, gen)

	gen.On("GenerateBatch", 1, 8).Return([]string{"aaaa1111"}, nil)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(errors.New("deadlock detected"))

	err := useCase.GenerateForMany(
		context.Background(),
		1,
		[]string{"user-1", "user-2"},
		&vouchersDomain.GenerateVouchersInput{},
	)
	assert.Error(t, err)
}

func TestVoucherUseCase_Redeem(t *testing.T) {
	repo := &mockVoucherRepository{}
	useCase := newTestUseCase(repo, &mockCodeGenerator{})

	voucher := &vouchersDomain.Voucher{
		ID:        uuid.Must(uuid.NewV7()),
		Code:      "xKj3mWp9",
		IsEnabled: true,
		UserID:    "user-123",
	}
	repo.On("FindRedeemable", mock.Anything, "xKj3mWp9", "user-123").Return(voucher, nil)
	repo.On("MarkUsed", mock.Anything, voucher.ID, mock.Anything).Return(nil)

	result, err := useCase.Redeem(context.Background(), "xKj3mWp9", "user-123")
	require.NoError(t, err)

	assert.True(t, result.Used)
	require.NotNil(t, result.UsedAt)
	assert.WithinDuration(t, time.Now().UTC(), *result.UsedAt, time.Minute)
	repo.AssertExpectations(t)
}

func TestVoucherUseCase_Redeem_NoMatch(t *testing.T) {
	repo := &mockVoucherRepository{}
	useCase := newTestUseCase(repo, &mockCodeGenerator{})

	repo.On("FindRedeemable", mock.Anything, "unknownc", "user-123").
		Return(nil, apperrors.ErrUnredeemable)

	result, err := useCase.Redeem(context.Background(), "unknownc", "user-123")
	assert.ErrorIs(t, err, apperrors.ErrUnredeemable)
	assert.Nil(t, result)
	repo.AssertNotCalled(t, "MarkUsed", mock.Anything, mock.Anything, mock.Anything)
}

func TestVoucherUseCase_Redeem_AlreadyUsed(t *testing.T) {
	repo := &mockVoucherRepository{}
	useCase := newTestUseCase(repo, &mockCodeGenerator{})

	usedAt := time.Now().UTC()
	voucher := &vouchersDomain.Voucher{
		ID:        uuid.Must(uuid.NewV7()),
		Code:      "xKj3mWp9",
		IsEnabled: true,
		Used:      true,
		UsedAt:    &usedAt,
		UserID:    "user-123",
	}
	repo.On("FindRedeemable", mock.Anything, "xKj3mWp9", "user-123").Return(voucher, nil)

	result, err := useCase.Redeem(context.Background(), "xKj3mWp9", "user-123")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyUsed)
	assert.Nil(t, result)
	repo.AssertNotCalled(t, "MarkUsed", mock.Anything, mock.Anything, mock.Anything)
}

func TestVoucherUseCase_Redeem_LosesRace(t *testing.T) {
	repo := &mockVoucherRepository{}
	useCase := newTestUseCase(repo, &mockCodeGenerator{})

	// The read sees an unused voucher, but another request flips it before
	// our update runs. The CAS reports zero rows affected.
	voucher := &vouchersDomain.Voucher{
		ID:        uuid.Must(uuid.NewV7()),
		Code:      "xKj3mWp9",
		IsEnabled: true,
		UserID:    "user-123",
	}
	repo.On("FindRedeemable", mock.Anything, "xKj3mWp9", "user-123").Return(voucher, nil)
	repo.On("MarkUsed", mock.Anything, voucher.ID, mock.Anything).
		Return(apperrors.ErrAlreadyUsed)

	result, err := useCase.Redeem(context.Background(), "xKj3mWp9", "user-123")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyUsed)
	assert.Nil(t, result)
}
