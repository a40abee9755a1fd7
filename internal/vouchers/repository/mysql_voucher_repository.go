package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/redeemly/vouchers/internal/database"
	apperrors "github.com/redeemly/vouchers/internal/errors"
	vouchersDomain "github.com/redeemly/vouchers/internal/vouchers/domain"
)

// MySQLVoucherRepository implements Voucher persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLVoucherRepository struct {
	db *sql.DB
}

// Create inserts a new voucher into the MySQL database.
func (m *MySQLVoucherRepository) Create(
	ctx context.Context,
	voucher *vouchersDomain.Voucher,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := voucher.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal voucher id")
	}

	query := `INSERT INTO vouchers (` + voucherColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLVoucherRepository) CreateBatch(
	ctx context.Context,
	vouchers []*vouchersDomain.Voucher,
) error {
	if len(vouchers) == 0 {
		return nil
	}

	querier := database.GetTx(ctx, m.db)

	var sb strings.Builder
	sb.WriteString(`INSERT INTO vouchers (` + voucherColumns + `) VALUES `)

	args := make([]any, 0, len(vouchers)*12)
	for i, voucher := range vouchers {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")

		id, err := voucher.ID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal voucher id")
		}
		args = append(args,
			id,
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
func (m *MySQLVoucherRepository) Get(
	ctx context.Context,
	voucherID uuid.UUID,
) (*vouchersDomain.Voucher, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := voucherID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal voucher id")
	}

	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = ?`

	voucher, err := scanMySQLVoucher(querier.QueryRowContext(ctx, query, id))
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
func (m *MySQLVoucherRepository) Update(
	ctx context.Context,
	voucherID uuid.UUID,
	input *vouchersDomain.UpdateVoucherInput,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := voucherID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal voucher id")
	}

	query := `UPDATE vouchers
			  SET code = COALESCE(?, code),
				  description = COALESCE(?, description),
				  discount_value = COALESCE(?, discount_value),
				  discount_type = COALESCE(?, discount_type),
				  is_enabled = COALESCE(?, is_enabled),
				  expires = COALESCE(?, expires),
				  user_id = COALESCE(?, user_id),
				  updated_at = ?
			  WHERE id = ?`

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
		id,
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
func (m *MySQLVoucherRepository) Delete(ctx context.Context, voucherID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := voucherID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal voucher id")
	}

	query := `DELETE FROM vouchers WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to delete voucher")
	}
	return nil
}

// List retrieves vouchers ordered by creation time (newest first) with
// pagination, plus the total count matching the filter.
func (m *MySQLVoucherRepository) List(
	ctx context.Context,
	filter vouchersDomain.ListVouchersFilter,
	offset, limit int,
) ([]*vouchersDomain.Voucher, int, error) {
	querier := database.GetTx(ctx, m.db)

	where := ""
	args := []any{}
	if filter.UserID != "" {
		where = ` WHERE user_id = ?`
		args = append(args, filter.UserID)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM vouchers` + where
	if err := querier.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count vouchers")
	}

	query := `SELECT ` + voucherColumns + ` FROM vouchers` + where +
		` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list vouchers")
	}
	defer func() { _ = rows.Close() }()

	vouchers := make([]*vouchersDomain.Voucher, 0)
	for rows.Next() {
		voucher, err := scanMySQLVoucher(rows)
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
// Returns ErrUnredeemable when no such voucher exists.
func (m *MySQLVoucherRepository) FindRedeemable(
	ctx context.Context,
	code, userID string,
) (*vouchersDomain.Voucher, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + voucherColumns + ` FROM vouchers
			  WHERE code = ? AND user_id = ? AND is_enabled = true
			  LIMIT 1`

	voucher, err := scanMySQLVoucher(querier.QueryRowContext(ctx, query, code, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUnredeemable
		}
		return nil, apperrors.Wrap(err, "failed to find redeemable voucher")
	}

	return voucher, nil
}

// MarkUsed transitions a voucher to used with a compare-and-set update.
// Zero rows affected means another request consumed the voucher first.
func (m *MySQLVoucherRepository) MarkUsed(
	ctx context.Context,
	voucherID uuid.UUID,
	usedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := voucherID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal voucher id")
	}

	query := `UPDATE vouchers
			  SET used = true, used_at = ?, updated_at = ?
			  WHERE id = ? AND used = false`

	result, err := querier.ExecContext(ctx, query, usedAt, usedAt, id)
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

// scanMySQLVoucher scans a voucher row, decoding the BINARY(16) id column.
func scanMySQLVoucher(row rowScanner) (*vouchersDomain.Voucher, error) {
	var voucher vouchersDomain.Voucher
	var rawID []byte

	err := row.Scan(
		&rawID,
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

	if voucher.ID, err = uuid.FromBytes(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal voucher id")
	}

	return &voucher, nil
}

// NewMySQLVoucherRepository creates a new MySQL Voucher repository.
func NewMySQLVoucherRepository(db *sql.DB) *MySQLVoucherRepository {
	return &MySQLVoucherRepository{db: db}
}
