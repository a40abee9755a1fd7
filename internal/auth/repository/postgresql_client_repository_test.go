package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/redeemly/vouchers/internal/auth/domain"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, mock
}

func testClient(t *testing.T) *authDomain.Client {
	t.Helper()

	return &authDomain.Client{
		ID:       uuid.Must(uuid.NewV7()),
		Secret:   "$argon2id$v=19$m=65536,t=3,p=4$test-hash",
		Name:     "test-client",
		IsActive: true,
		Capabilities: []authDomain.Capability{
			authDomain.ManageVouchersCapability,
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestPostgreSQLClientRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLClientRepository(db)
	client := testClient(t)

	capabilities, err := json.Marshal(client.Capabilities)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO clients`)).
		WithArgs(
			client.ID,
			client.Secret,
			client.Name,
			client.IsActive,
			capabilities,
			client.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), client)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLClientRepository_Create_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLClientRepository(db)
	client := testClient(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO clients`)).
		WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), client)
	assert.Error(t, err)
}

func TestPostgreSQLClientRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLClientRepository(db)
	client := testClient(t)

	capabilities, err := json.Marshal(client.Capabilities)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "secret", "name", "is_active", "capabilities", "created_at"}).
		AddRow(client.ID, client.Secret, client.Name, client.IsActive, capabilities, client.CreatedAt)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, secret, name, is_active, capabilities, created_at`)).
		WithArgs(client.ID).
		WillReturnRows(rows)

	result, err := repo.Get(context.Background(), client.ID)
	require.NoError(t, err)

	assert.Equal(t, client.ID, result.ID)
	assert.Equal(t, client.Name, result.Name)
	assert.Equal(t, client.Capabilities, result.Capabilities)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLClientRepository_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLClientRepository(db)

	clientID := uuid.Must(uuid.NewV7())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, secret, name, is_active, capabilities, created_at`)).
		WithArgs(clientID).
		WillReturnError(sql.ErrNoRows)

	result, err := repo.Get(context.Background(), clientID)
	assert.ErrorIs(t, err, authDomain.ErrClientNotFound)
	assert.Nil(t, result)
}

func TestPostgreSQLClientRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLClientRepository(db)
	client := testClient(t)

	capabilities, err := json.Marshal(client.Capabilities)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE clients`)).
		WithArgs(
			client.Secret,
			client.Name,
			client.IsActive,
			capabilities,
			client.ID,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(context.Background(), client)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
