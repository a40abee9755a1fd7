// Package domain defines authentication and authorization domain models.
// Implements capability-based access control with clients and bearer tokens.
package domain

// Capability defines the types of operations an API client may perform.
type Capability string

const (
	// ManageVouchersCapability allows creating, reading, updating, deleting,
	// and bulk-generating vouchers.
	ManageVouchersCapability Capability = "manageVouchers"

	// RedeemVoucherCapability allows redeeming vouchers.
	RedeemVoucherCapability Capability = "redeemVoucher"
)
