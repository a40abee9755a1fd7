package dto

import (
	"time"

	vouchersDomain "github.com/redeemly/vouchers/internal/vouchers/domain"
)

// VoucherResponse represents a voucher in API responses.
type VoucherResponse struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	Description   string     `json:"description"`
	DiscountValue int        `json:"discountValue"`
	DiscountType  string     `json:"discountType"`
	IsEnabled     bool       `json:"isEnabled"`
	Used          bool       `json:"used"`
	UsedAt        *time.Time `json:"usedAt,omitempty"`
	Expires       *time.Time `json:"expires,omitempty"`
	UserID        string     `json:"userId"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// MapVoucherToResponse converts a domain voucher to an API response.
func MapVoucherToResponse(voucher *vouchersDomain.Voucher) VoucherResponse {
	return VoucherResponse{
		ID:            voucher.ID.String(),
		Code:          voucher.Code,
		Description:   voucher.Description,
		DiscountValue: voucher.DiscountValue,
		DiscountType:  string(voucher.DiscountType),
		IsEnabled:     voucher.IsEnabled,
		Used:          voucher.Used,
		UsedAt:        voucher.UsedAt,
		Expires:       voucher.Expires,
		UserID:        voucher.UserID,
		CreatedAt:     voucher.CreatedAt,
		UpdatedAt:     voucher.UpdatedAt,
	}
}

// ListVouchersResponse represents a paginated voucher listing.
type ListVouchersResponse struct {
	Items  []VoucherResponse `json:"items"`
	Total  int               `json:"total"`
	Offset int               `json:"offset"`
	Limit  int               `json:"limit"`
}

// MapVouchersToListResponse converts domain vouchers to a paginated API response.
func MapVouchersToListResponse(
	vouchers []*vouchersDomain.Voucher,
	total, offset, limit int,
) ListVouchersResponse {
	items := make([]VoucherResponse, 0, len(vouchers))
	for _, voucher := range vouchers {
		items = append(items, MapVoucherToResponse(voucher))
	}

	return ListVouchersResponse{
		Items:  items,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}
}
