package domain

import (
	"github.com/redeemly/vouchers/internal/errors"
)

// Voucher-specific error definitions.
var (
	// ErrVoucherNotFound indicates no voucher exists with the specified ID.
	ErrVoucherNotFound = errors.Wrap(errors.ErrNotFound, "voucher not found")
)
