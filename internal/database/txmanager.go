package database

import (
	"context"
	"database/sql"
)

// txKey is the context key under which an active transaction is stored.
type txKey struct{}

// Querier is the subset of database operations shared by *sql.DB and *sql.Tx.
// Repositories accept a Querier so the same code runs inside and outside
// transactions.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager runs functions inside database transactions.
type TxManager interface {
	// WithTx runs fn inside a transaction. The transaction commits when fn
	// returns nil and rolls back when fn returns an error. Repository calls
	// made with the ctx passed to fn join the transaction automatically.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager creates a TxManager backed by the given database pool.
func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

func (m *sqlTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls join the outer transaction instead of opening a new one.
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}

	return tx.Commit()
}

// GetTx returns the transaction stored in ctx, or db when no transaction
// is active.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
