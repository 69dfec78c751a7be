package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
	"go.uber.org/zap"
)

const billColumns = `id, email, type, name, commentary, comment_admin,
	date, amount, pct, vat, file_url, file_name, status`

// BillRepository implements port.BillRepository
type BillRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *DB, logger *zap.Logger) *BillRepository {
	return &BillRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new bill
func (r *BillRepository) Create(ctx context.Context, bill *entity.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.getExecutor(ctx).ExecContext(ctx, query,
		bill.ID,
		bill.Email,
		bill.Type,
		bill.Name,
		bill.Commentary,
		bill.CommentAdmin,
		bill.Date,
		bill.Amount,
		bill.Pct,
		bill.VAT,
		bill.FileURL,
		bill.FileName,
		bill.Status,
	)
	if err != nil {
		r.logger.Error("Failed to create bill", zap.String("id", bill.ID), zap.Error(err))
		return fmt.Errorf("failed to create bill: %w", err)
	}

	return nil
}

// GetByID retrieves a bill by ID
func (r *BillRepository) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = ?`

	bill, err := scanBill(r.db.getExecutor(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrBillNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get bill by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	return bill, nil
}

// List retrieves every bill in insertion order
func (r *BillRepository) List(ctx context.Context) ([]*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills ORDER BY seq ASC`
	return r.query(ctx, query)
}

// ListByEmail retrieves the bills of one employee in insertion order
func (r *BillRepository) ListByEmail(ctx context.Context, email string) ([]*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE email = ? ORDER BY seq ASC`
	return r.query(ctx, query, email)
}

// Update applies fn to the stored bill inside a transaction
func (r *BillRepository) Update(ctx context.Context, id string, fn func(bill *entity.Bill) error) (*entity.Bill, error) {
	var updated *entity.Bill

	err := r.db.WithTransaction(ctx, func(txCtx context.Context) error {
		bill, err := r.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := fn(bill); err != nil {
			return err
		}
		bill.ID = id

		query := `
			UPDATE bills SET
				email = ?, type = ?, name = ?, commentary = ?, comment_admin = ?,
				date = ?, amount = ?, pct = ?, vat = ?, file_url = ?, file_name = ?,
				status = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`
		_, err = r.db.getExecutor(txCtx).ExecContext(txCtx, query,
			bill.Email,
			bill.Type,
			bill.Name,
			bill.Commentary,
			bill.CommentAdmin,
			bill.Date,
			bill.Amount,
			bill.Pct,
			bill.VAT,
			bill.FileURL,
			bill.FileName,
			bill.Status,
			id,
		)
		if err != nil {
			r.logger.Error("Failed to update bill", zap.String("id", id), zap.Error(err))
			return fmt.Errorf("failed to update bill: %w", err)
		}

		updated = bill
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Close closes the underlying database
func (r *BillRepository) Close() error {
	return r.db.Close()
}

func (r *BillRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Bill, error) {
	rows, err := r.db.getExecutor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list bills", zap.Error(err))
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	bills := make([]*entity.Bill, 0)
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}

	return bills, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBill(row rowScanner) (*entity.Bill, error) {
	var bill entity.Bill
	err := row.Scan(
		&bill.ID,
		&bill.Email,
		&bill.Type,
		&bill.Name,
		&bill.Commentary,
		&bill.CommentAdmin,
		&bill.Date,
		&bill.Amount,
		&bill.Pct,
		&bill.VAT,
		&bill.FileURL,
		&bill.FileName,
		&bill.Status,
	)
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

var _ port.BillRepository = (*BillRepository)(nil)
