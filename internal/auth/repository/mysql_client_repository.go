package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/redeemly/vouchers/internal/auth/domain"
	"github.com/redeemly/vouchers/internal/database"
	apperrors "github.com/redeemly/vouchers/internal/errors"
)

// MySQLClientRepository implements Client persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLClientRepository struct {
	db *sql.DB
}

// Create inserts a new Client into the MySQL database.
func (m *MySQLClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	querier := database.GetTx(ctx, m.db)

	id, err := client.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	capabilities, err := json.Marshal(client.Capabilities)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client capabilities")
	}

	query := `INSERT INTO clients (id, secret, name, is_active, capabilities, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		client.Secret,
		client.Name,
		client.IsActive,
		capabilities,
		client.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create client")
	}
	return nil
}

// Update modifies an existing Client in the MySQL database.
func (m *MySQLClientRepository) Update(ctx context.Context, client *authDomain.Client) error {
	querier := database.GetTx(ctx, m.db)

	id, err := client.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	capabilities, err := json.Marshal(client.Capabilities)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client capabilities")
	}

	query := `UPDATE clients
			  SET secret = ?,
			  	  name = ?,
				  is_active = ?,
				  capabilities = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(
		ctx,
		query,
		client.Secret,
		client.Name,
		client.IsActive,
		capabilities,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update client")
	}

	return nil
}

// Get retrieves a Client by ID from the MySQL database.
func (m *MySQLClientRepository) Get(
	ctx context.Context,
	clientID uuid.UUID,
) (*authDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := clientID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `SELECT id, secret, name, is_active, capabilities, created_at
			  FROM clients WHERE id = ?`

	var client authDomain.Client
	var rawID []byte
	var capabilities []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&rawID,
		&client.Secret,
		&client.Name,
		&client.IsActive,
		&capabilities,
		&client.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get client")
	}

	if client.ID, err = uuid.FromBytes(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}

	if err := json.Unmarshal(capabilities, &client.Capabilities); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client capabilities")
	}

	return &client, nil
}

// NewMySQLClientRepository creates a new MySQL Client repository.
func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db}
}
