// Package domain defines the core domain models for voucher management.
// Vouchers are owned by a user, carry a discount, and transition to used
// exactly once at redemption.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DiscountType defines how a voucher's discount value is interpreted.
type DiscountType string

const (
	// DiscountTypeNumeric is a fixed-amount discount.
	DiscountTypeNumeric DiscountType = "numeric"

	// DiscountTypePercentage is a percentage discount.
	DiscountTypePercentage DiscountType = "percentage"
)

// Voucher represents a redeemable discount voucher.
type Voucher struct {
	// ID is the unique identifier (UUIDv7), assigned on creation.
	ID uuid.UUID
	// Code is the redeemable token. Codes are not globally unique; lookups
	// are always scoped by (code, user_id).
	Code string
	// Description is free-form text describing the voucher.
	Description string
	// DiscountValue is the discount amount; interpretation depends on DiscountType.
	DiscountValue int
	// DiscountType is either numeric or percentage.
	DiscountType DiscountType
	// IsEnabled controls redeemability; disabled vouchers are never redeemable.
	IsEnabled bool
	// Used marks the voucher as redeemed. One-way transition, set with UsedAt.
	Used bool
	// UsedAt is the UTC timestamp of redemption (nil if unused).
	UsedAt *time.Time
	// Expires is an optional expiry timestamp. Stored for bookkeeping;
	// redemption does not check it.
	Expires *time.Time
	// UserID is the opaque identifier of the voucher's owner.
	UserID string
	// CreatedAt is the UTC timestamp when the voucher was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last modification.
	UpdatedAt time.Time
}

// CreateVoucherInput contains the parameters for creating a single voucher.
type CreateVoucherInput struct {
	Code          string
	Description   string
	DiscountValue int
	DiscountType  DiscountType
	IsEnabled     *bool // nil defaults to true
	Expires       *time.Time
	UserID        string
}

// UpdateVoucherInput contains the mutable fields for a partial voucher update.
// Nil fields are left unchanged.
type UpdateVoucherInput struct {
	Code          *string
	Description   *string
	DiscountValue *int
	DiscountType  *DiscountType
	IsEnabled     *bool
	Expires       *time.Time
	UserID        *string
}

// GenerateVouchersInput contains the template applied to every generated
// voucher. Codes are generated, never supplied.
type GenerateVouchersInput struct {
	Description   string
	DiscountValue int
	DiscountType  DiscountType
	IsEnabled     *bool // nil defaults to true
	Expires       *time.Time
}

// ListVouchersFilter narrows voucher listings.
type ListVouchersFilter struct {
	UserID string // empty matches all users
}
