// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/redeemly/vouchers/internal/validation"
	vouchersDomain "github.com/redeemly/vouchers/internal/vouchers/domain"
)

// discountTypes are the accepted values for the discountType field.
var discountTypes = []any{
	string(vouchersDomain.DiscountTypeNumeric),
	string(vouchersDomain.DiscountTypePercentage),
}

// CreateVoucherRequest contains the parameters for creating a single voucher
// with a caller-supplied code.
type CreateVoucherRequest struct {
	Code          string     `json:"code"`
	Description   string     `json:"description"`
	DiscountValue int        `json:"discountValue"`
	DiscountType  string     `json:"discountType"`
	IsEnabled     *bool      `json:"isEnabled"`
	Expires       *time.Time `json:"expires"`
	UserID        string     `json:"userId"`
}

// Validate checks if the create voucher request is valid.
func (r *CreateVoucherRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Code, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Description, validation.Required, customValidation.NotBlank),
		validation.Field(&r.DiscountValue, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&r.DiscountType, validation.Required, validation.In(discountTypes...)),
		validation.Field(&r.UserID, validation.Required, customValidation.NotBlank),
	)
}

// ToInput converts the request to a domain input.
func (r *CreateVoucherRequest) ToInput() *vouchersDomain.CreateVoucherInput {
	return &vouchersDomain.CreateVoucherInput{
		Code:          r.Code,
		Description:   r.Description,
		DiscountValue: r.DiscountValue,
		DiscountType:  vouchersDomain.DiscountType(r.DiscountType),
		IsEnabled:     r.IsEnabled,
		Expires:       r.Expires,
		UserID:        r.UserID,
	}
}

// UpdateVoucherRequest contains the mutable fields for a partial voucher
// update. Absent fields are left unchanged.
type UpdateVoucherRequest struct {
	Code          *string    `json:"code"`
	Description   *string    `json:"description"`
	DiscountValue *int       `json:"discountValue"`
	DiscountType  *string    `json:"discountType"`
	IsEnabled     *bool      `json:"isEnabled"`
	Expires       *time.Time `json:"expires"`
	UserID        *string    `json:"userId"`
}

// Validate checks if the update voucher request is valid. Nil fields are
// skipped; present fields obey the same rules as on creation.
func (r *UpdateVoucherRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Code, customValidation.NotBlank),
		validation.Field(&r.Description, customValidation.NotBlank),
		validation.Field(&r.DiscountValue, validation.Min(1), validation.Max(100)),
		validation.Field(&r.DiscountType, validation.In(discountTypes...)),
		validation.Field(&r.UserID, customValidation.NotBlank),
	)
}

// ToInput converts the request to a domain input.
func (r *UpdateVoucherRequest) ToInput() *vouchersDomain.UpdateVoucherInput {
	input := &vouchersDomain.UpdateVoucherInput{
		Code:          r.Code,
		Description:   r.Description,
		DiscountValue: r.DiscountValue,
		IsEnabled:     r.IsEnabled,
		Expires:       r.Expires,
		UserID:        r.UserID,
	}
	if r.DiscountType != nil {
		discountType := vouchersDomain.DiscountType(*r.DiscountType)
		input.DiscountType = &discountType
	}
	return input
}

// GenerateVouchersRequest contains the parameters for bulk voucher generation.
// Every listed user receives quantity vouchers built from the template fields.
type GenerateVouchersRequest struct {
	Quantity      int        `json:"quantity"`
	UserIDs       []string   `json:"userIds"`
	Description   string     `json:"description"`
	DiscountValue int        `json:"discountValue"`
	DiscountType  string     `json:"discountType"`
	IsEnabled     *bool      `json:"isEnabled"`
	Expires       *time.Time `json:"expires"`
}

// Validate checks if the generate vouchers request is valid.
func (r *GenerateVouchersRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&r.UserIDs, validation.Required, validation.Length(1, 0)),
		validation.Field(&r.Description, validation.Required, customValidation.NotBlank),
		validation.Field(&r.DiscountValue, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&r.DiscountType, validation.Required, validation.In(discountTypes...)),
	)
}

// Template converts the request's template fields to a domain input.
func (r *GenerateVouchersRequest) Template() *vouchersDomain.GenerateVouchersInput {
	return &vouchersDomain.GenerateVouchersInput{
		Description:   r.Description,
		DiscountValue: r.DiscountValue,
		DiscountType:  vouchersDomain.DiscountType(r.DiscountType),
		IsEnabled:     r.IsEnabled,
		Expires:       r.Expires,
	}
}

// RedeemVoucherRequest contains the parameters for redeeming a voucher.
type RedeemVoucherRequest struct {
	Code   string `json:"code"`
	UserID string `json:"userId"`
}

// Validate checks if the redeem voucher request is valid.
func (r *RedeemVoucherRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Code, validation.Required, customValidation.NotBlank),
		validation.Field(&r.UserID, validation.Required, customValidation.NotBlank),
	)
}
