// Package service provides technical services for authentication operations:
// client secret generation and hashing, and token generation and hashing.
package service

// SecretService defines operations for client secret generation and validation.
// Implementations must use cryptographically secure random generation and a
// password hashing algorithm suitable for long-lived credentials (e.g., Argon2id).
type SecretService interface {
	// GenerateSecret creates a new cryptographically secure random secret.
	// Returns both the plain text secret (to be shared with the client) and
	// the hashed version (to be stored in the database).
	GenerateSecret() (plainSecret string, hashedSecret string, error error)

	// HashSecret hashes a plain text secret.
	HashSecret(plainSecret string) (hashedSecret string, error error)

	// CompareSecret compares a plain text secret against a hashed secret in
	// constant time. Returns true if the secret matches the hash.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// TokenService defines operations for authentication token generation and
// hashing. Tokens are short-lived, so a fast hash (SHA-256) is appropriate.
type TokenService interface {
	// GenerateToken creates a new cryptographically secure random token.
	// Returns both the plain text token (shown once to the client) and
	// the hashed version (stored in the database).
	GenerateToken() (plainToken string, tokenHash string, error error)

	// HashToken hashes a plain text token using SHA-256.
	HashToken(plainToken string) string
}
