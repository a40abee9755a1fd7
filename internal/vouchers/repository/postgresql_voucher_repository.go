// Package repository implements data persistence for vouchers.
// Repositories support both PostgreSQL and MySQL with transaction support
// via database.GetTx().
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/redeemly/vouchers/internal/database"
	apperrors "github.com/redeemly/vouchers/internal/errors"
	vouchersDomain "github.com/redeemly/vouchers/internal/vouchers/domain"
)

// voucherColumns is the canonical column list used by all voucher queries.
const voucherColumns = `id, code, description, discount_value, discount_type, is_enabled,
			  used, used_at, expires, user_id, created_at, updated_at`

// PostgreSQLVoucherRepository implements Voucher persistence for PostgreSQL.
type PostgreSQLVoucherRepository struct {
	db *sql.DB
}

// Create inserts a new voucher into the PostgreSQL database.
func (p *PostgreSQLVoucherRepository) Create(
	ctx context.Context,
	voucher *vouchersDomain.Voucher,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO vouchers (` + voucherColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := querier.ExecContext(
		ctx,
		query,
		voucher.ID,
		voucher.Code,
		voucher.Description,
		voucher.DiscountValue,
		voucher.DiscountType,
		voucher.IsEnabled,
		voucher.Used,
		voucher.UsedAt,
		voucher.Expires,
		voucher.UserID,
		voucher.CreatedAt,
		voucher.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create voucher")
	}
	return nil
}

// CreateBatch inserts multiple vouchers in a single multi-row INSERT.
func (p *PostgreSQLVoucherRepository) CreateBatch(
	ctx context.Context,
	vouchers []*vouchersDomain.Voucher,
) error {
	if len(vouchers) == 0 {
		return nil
	}

	querier := database.GetTx(ctx, p.db)

	var sb strings.Builder
	sb.WriteString(`INSERT INTO vouchers (` + voucherColumns + `) VALUES `)

	args := make([]any, 0, len(vouchers)*12)
	for i, voucher := range vouchers {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 12
		sb.WriteString(fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11, base+12,
		))
		args = append(args,
			voucher.ID,
			voucher.Code,
			voucher.Description,
			voucher.DiscountValue,
			voucher.DiscountType,
			voucher.IsEnabled,
			voucher.Used,
			voucher.UsedAt,
			voucher.Expires,
			voucher.UserID,
			voucher.CreatedAt,
			voucher.UpdatedAt,
		)
	}

	if _, err := querier.ExecContext(ctx, sb.String(), args...); err != nil {
		return apperrors.Wrap(err, "failed to create voucher batch")
	}
	return nil
}

// Get retrieves a voucher by ID. Returns ErrVoucherNotFound if no row matches.
func (p *PostgreSQLVoucherRepository) Get(
	ctx context.Context,
	voucherID uuid.UUID,
) (*vouchersDomain.Voucher, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1`

	voucher, err := scanVoucher(querier.QueryRowContext(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, vouchersDomain.ErrVoucherNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get voucher")
	}

	return voucher, nil
}

// Update applies a partial update to a voucher. Nil fields in the input keep
// their current values. Returns ErrVoucherNotFound when no row matched.
func (p *PostgreSQLVoucherRepository) Update(
	ctx context.Context,
	voucherID uuid.UUID,
	input *vouchersDomain.UpdateVoucherInput,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE vouchers
			  SET code = COALESCE($1, code),
				  description = COALESCE($2, description),
				  discount_value = COALESCE($3, discount_value),
				  discount_type = COALESCE($4, discount_type),
				  is_enabled = COALESCE($5, is_enabled),
				  expires = COALESCE($6, expires),
				  user_id = COALESCE($7, user_id),
				  updated_at = $8
			  WHERE id = $9`

	result, err := querier.ExecContext(
		ctx,
		query,
		input.Code,
		input.Description,
		input.DiscountValue,
		input.DiscountType,
		input.IsEnabled,
		input.Expires,
		input.UserID,
		time.Now().UTC(),
		voucherID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update voucher")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return vouchersDomain.ErrVoucherNotFound
	}

	return nil
}

// Delete removes a voucher by ID. Deleting a missing voucher is not an error.
func (p *PostgreSQLVoucherRepository) Delete(ctx context.Context, voucherID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM vouchers WHERE id = $1`

	if _, err := querier.ExecContext(ctx, query, voucherID); err != nil {
		return apperrors.Wrap(err, "failed to delete voucher")
	}
	return nil
}

// List retrieves vouchers ordered by creation time (newest first) with
// pagination, plus the total count matching the filter.
func (p *PostgreSQLVoucherRepository) List(
	ctx context.Context,
	filter vouchersDomain.ListVouchersFilter,
	offset, limit int,
) ([]*vouchersDomain.Voucher, int, error) {
	querier := database.GetTx(ctx, p.db)

	where := ""
	args := []any{}
	if filter.UserID != "" {
		where = ` WHERE user_id = $1`
		args = append(args, filter.UserID)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM vouchers` + where
	if err := querier.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count vouchers")
	}

	query := fmt.Sprintf(
		`SELECT `+voucherColumns+` FROM vouchers`+where+
			` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list vouchers")
	}
	defer func() { _ = rows.Close() }()

	vouchers := make([]*vouchersDomain.Voucher, 0)
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, 0, apperrors.Wrap(err, "failed to scan voucher")
		}
		vouchers = append(vouchers, voucher)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to iterate vouchers")
	}

	return vouchers, total, nil
}

// FindRedeemable retrieves an enabled voucher matching the code and owner.
// Returns ErrUnredeemable when no such voucher exists; the caller cannot
// distinguish wrong code, wrong user, or disabled voucher.
func (p *PostgreSQLVoucherRepository) FindRedeemable(
	ctx context.Context,
	code, userID string,
) (*vouchersDomain.Voucher, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + voucherColumns + ` FROM vouchers
			  WHERE code = $1 AND user_id = $2 AND is_enabled = true
			  LIMIT 1`

	voucher, err := scanVoucher(querier.QueryRowContext(ctx, query, code, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUnredeemable
		}
		return nil, apperrors.Wrap(err, "failed to find redeemable voucher")
	}

	return voucher, nil
}

// MarkUsed transitions a voucher to used with a compare-and-set update.
// The WHERE clause requires used = false, so of N concurrent redeemers
// exactly one succeeds; the rest observe zero rows affected and get
// ErrAlreadyUsed.
func (p *PostgreSQLVoucherRepository) MarkUsed(
	ctx context.Context,
	voucherID uuid.UUID,
	usedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE vouchers
			  SET used = true, used_at = $1, updated_at = $2
			  WHERE id = $3 AND used = false`

	result, err := querier.ExecContext(ctx, query, usedAt, usedAt, voucherID)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark voucher used")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return apperrors.ErrAlreadyUsed
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanVoucher scans a voucher row in canonical column order.
func scanVoucher(row rowScanner) (*vouchersDomain.Voucher, error) {
	var voucher vouchersDomain.Voucher
	err := row.Scan(
		&voucher.ID,
		&voucher.Code,
		&voucher.Description,
		&voucher.DiscountValue,
		&voucher.DiscountType,
		&voucher.IsEnabled,
		&voucher.Used,
		&voucher.UsedAt,
		&voucher.Expires,
		&voucher.UserID,
		&voucher.CreatedAt,
		&voucher.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &voucher, nil
}

// NewPostgreSQLVoucherRepository creates a new PostgreSQL Voucher repository.
func NewPostgreSQLVoucherRepository(db *sql.DB) *PostgreSQLVoucherRepository {
	return &PostgreSQLVoucherRepository{db: db}
}
