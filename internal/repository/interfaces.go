// Package repository persists the client's local state in SQLite.
package repository

import (
	"context"

	"github.com/mroussel/frais/internal/domain"
)

// SessionRepo stores the single logged-in user record.
type SessionRepo interface {
	// Save replaces the stored session.
	Save(ctx context.Context, s *domain.StoredSession) error
	// Get returns the stored session, or nil when nobody is logged in.
	Get(ctx context.Context) (*domain.StoredSession, error)
	// Clear removes the stored session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// BillCacheRepo keeps the last successfully listed bill collection so the
// views can render something when the remote store is unavailable.
type BillCacheRepo interface {
	// Replace swaps the cached collection for the given one.
	Replace(ctx context.Context, bills []domain.Bill) error
	// List returns the cached bills in insertion order.
	List(ctx context.Context) ([]domain.Bill, error)
}
