package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token represents a bearer authentication token. Only the SHA-256 hash of the
// plain token is persisted.
type Token struct {
	ID        uuid.UUID
	TokenHash string
	ClientID  uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IssueTokenInput contains the credentials used to issue a new token.
type IssueTokenInput struct {
	ClientID     uuid.UUID
	ClientSecret string
}

// IssueTokenOutput contains the result of issuing a token.
// SECURITY: The PlainToken is only returned once.
type IssueTokenOutput struct {
	PlainToken string
	ExpiresAt  time.Time
}
