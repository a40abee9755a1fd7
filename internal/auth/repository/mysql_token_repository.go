package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/redeemly/vouchers/internal/auth/domain"
	"github.com/redeemly/vouchers/internal/database"
	apperrors "github.com/redeemly/vouchers/internal/errors"
)

// MySQLTokenRepository implements Token persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new Token into the MySQL database.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	querier := database.GetTx(ctx, m.db)

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal token id")
	}

	clientID, err := token.ClientID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `INSERT INTO tokens (id, token_hash, client_id, expires_at, revoked_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		token.TokenHash,
		clientID,
		token.ExpiresAt,
		token.RevokedAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByTokenHash retrieves a Token by its SHA-256 hash from the MySQL database.
// Returns ErrTokenNotFound if the token doesn't exist.
func (m *MySQLTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Token, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, token_hash, client_id, expires_at, revoked_at, created_at
			  FROM tokens WHERE token_hash = ?`

	var token authDomain.Token
	var rawID, rawClientID []byte

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&rawID,
		&token.TokenHash,
		&rawClientID,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get token by hash")
	}

	if token.ID, err = uuid.FromBytes(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal token id")
	}
	if token.ClientID, err = uuid.FromBytes(rawClientID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}

	return &token, nil
}

// NewMySQLTokenRepository creates a new MySQL Token repository.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}
