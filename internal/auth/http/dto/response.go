// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"
)

// IssueTokenResponse contains the result of issuing a token.
// SECURITY: The token is only returned once and must be saved securely.
type IssueTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
