package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mroussel/frais/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db *sql.DB
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(db *sql.DB) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

func (r *SQLiteSessionRepo) Save(ctx context.Context, s *domain.StoredSession) error {
	query := `INSERT INTO session (id, role, email, token, created_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			role = excluded.role,
			email = excluded.email,
			token = excluded.token,
			created_at = excluded.created_at`
	_, err := r.db.ExecContext(ctx, query,
		string(s.Role),
		s.Email,
		s.Token,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) Get(ctx context.Context) (*domain.StoredSession, error) {
	query := `SELECT role, email, token, created_at FROM session WHERE id = 1`
	row := r.db.QueryRowContext(ctx, query)

	var s domain.StoredSession
	var role, createdAt string
	if err := row.Scan(&role, &s.Email, &s.Token, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}
	s.Role = domain.UserRole(role)

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing session created_at: %w", err)
	}
	s.CreatedAt = t
	return &s, nil
}

func (r *SQLiteSessionRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
