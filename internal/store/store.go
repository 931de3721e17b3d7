// Package store defines the remote persistence capability for bill records
// and its HTTP implementation over the expense-report backend API.
package store

import (
	"context"
	"io"

	"github.com/mroussel/frais/internal/domain"
)

// Store is the remote service surface the views depend on. A nil Store is
// legal: views then operate in read-only mode on locally cached records.
type Store interface {
	// Bills returns the bills resource.
	Bills() BillsResource

	// Login exchanges credentials for a session token.
	Login(ctx context.Context, email, password string) (Credentials, error)
}

// BillsResource exposes the per-resource operations of the remote store.
// Every call may fail; rejection messages are surfaced verbatim to views.
type BillsResource interface {
	List(ctx context.Context) ([]domain.Bill, error)
	Create(ctx context.Context, bill domain.Bill) (domain.Bill, error)
	Update(ctx context.Context, bill domain.Bill) (domain.Bill, error)

	// Upload sends a receipt file ahead of record creation. The returned
	// attachment carries the remote file location and the record key the
	// store allocated for it.
	Upload(ctx context.Context, fileName string, content io.Reader) (Attachment, error)
}

// Attachment is the result of a receipt upload.
type Attachment struct {
	BillID   string `json:"key"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

// Credentials is the result of a successful login.
type Credentials struct {
	Token string `json:"jwt"`
}

// TokenSource supplies the bearer token for authenticated calls.
// It is read per request so a re-login takes effect immediately.
type TokenSource func(ctx context.Context) string
