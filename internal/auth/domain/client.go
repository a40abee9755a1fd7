package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Client represents an API client with an associated capability set.
// Clients authenticate with a secret and operate under bearer tokens.
type Client struct {
	ID           uuid.UUID    // Unique identifier (UUIDv7)
	Secret       string       //nolint:gosec // hashed client secret (not plaintext)
	Name         string       // Human-readable client name
	IsActive     bool         // Whether the client can authenticate
	Capabilities []Capability // Operations this client is allowed to perform
	CreatedAt    time.Time
}

// IsAllowed reports whether the client's capability set includes the given
// capability. An empty capability is never allowed.
func (c *Client) IsAllowed(capability Capability) bool {
	if capability == "" {
		return false
	}
	return slices.Contains(c.Capabilities, capability)
}

// CreateClientInput contains the parameters for creating a new API client.
// The client secret is generated automatically and cannot be supplied.
type CreateClientInput struct {
	Name         string
	IsActive     bool
	Capabilities []Capability
}

// CreateClientOutput contains the result of creating a new client.
// SECURITY: The PlainSecret is only returned once and must be securely
// transmitted to the client. It is never retrievable again.
type CreateClientOutput struct {
	ID          uuid.UUID
	PlainSecret string
}

// UpdateClientInput contains the mutable fields for updating an existing client.
// The client ID and secret cannot be modified through updates.
type UpdateClientInput struct {
	Name         string
	IsActive     bool
	Capabilities []Capability
}
