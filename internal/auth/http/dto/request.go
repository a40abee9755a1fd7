// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/redeemly/vouchers/internal/validation"
)

// IssueTokenRequest contains the parameters for issuing an authentication token.
type IssueTokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ClientID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.ClientSecret,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
