package cli

import (
	"log/slog"

	"github.com/mroussel/frais/internal/domain"
	"github.com/mroussel/frais/internal/repository"
	"github.com/mroussel/frais/internal/session"
	"github.com/mroussel/frais/internal/store"
)

// App holds the collaborators every view depends on.
type App struct {
	// Store is the remote backend. Nil means read-only mode: the bill
	// list is served from Fixtures or the local cache and mutations are
	// unavailable.
	Store store.Store

	// Sessions reads and writes the persisted login record.
	Sessions *session.Sessions

	// Cache keeps the last successfully listed bills for offline reads.
	// May be nil (no local database).
	Cache repository.BillCacheRepo

	// Fixtures, when set, override the cache as the read-only data source.
	Fixtures []domain.Bill

	// InitialRoute is the hash path opened on startup ("" = login).
	InitialRoute string

	// IsInteractive reports whether stdin is an interactive terminal.
	IsInteractive func() bool

	// Log defaults to slog.Default().
	Log *slog.Logger
}

func (a *App) logger() *slog.Logger {
	if a.Log != nil {
		return a.Log
	}
	return slog.Default()
}
