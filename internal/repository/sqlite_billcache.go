package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mroussel/frais/internal/domain"
)

// SQLiteBillCacheRepo implements BillCacheRepo using a SQLite database.
type SQLiteBillCacheRepo struct {
	db *sql.DB
}

// NewSQLiteBillCacheRepo creates a new SQLiteBillCacheRepo.
func NewSQLiteBillCacheRepo(db *sql.DB) *SQLiteBillCacheRepo {
	return &SQLiteBillCacheRepo{db: db}
}

func (r *SQLiteBillCacheRepo) Replace(ctx context.Context, bills []domain.Bill) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting cache transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bill_cache`); err != nil {
		return fmt.Errorf("clearing bill cache: %w", err)
	}

	now := time.Now().Format(time.RFC3339)
	query := `INSERT INTO bill_cache (
			id, email, type, name, date, amount, pct, vat,
			commentary, comment_admin, file_url, file_name, status, cached_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, b := range bills {
		if _, err := tx.ExecContext(ctx, query,
			b.ID, b.Email, b.Type, b.Name, b.Date, b.Amount, b.Pct, b.VAT,
			b.Commentary, b.CommentAdmin, b.FileURL, b.FileName, string(b.Status), now,
		); err != nil {
			return fmt.Errorf("caching bill %s: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing bill cache: %w", err)
	}
	committed = true
	return nil
}

func (r *SQLiteBillCacheRepo) List(ctx context.Context) ([]domain.Bill, error) {
	query := `SELECT id, email, type, name, date, amount, pct, vat,
			commentary, comment_admin, file_url, file_name, status
		FROM bill_cache ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing cached bills: %w", err)
	}
	defer rows.Close()

	var bills []domain.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cached bills: %w", err)
	}
	return bills, nil
}

func scanBill(rows *sql.Rows) (domain.Bill, error) {
	var b domain.Bill
	var status string
	err := rows.Scan(
		&b.ID, &b.Email, &b.Type, &b.Name, &b.Date, &b.Amount, &b.Pct, &b.VAT,
		&b.Commentary, &b.CommentAdmin, &b.FileURL, &b.FileName, &status,
	)
	if err != nil {
		return domain.Bill{}, fmt.Errorf("scanning cached bill: %w", err)
	}
	b.Status = domain.BillStatus(status)
	return b, nil
}
