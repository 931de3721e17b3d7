package store

import (
	"errors"
	"fmt"
)

// ErrNoStore indicates a remote operation was attempted without a
// configured store (offline / read-only mode).
var ErrNoStore = errors.New("no remote store configured")

// APIError is a non-2xx response from the backend. Its message is the
// literal text views render, so the format must stay "Erreur <code>".
type APIError struct {
	Code int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Erreur %d", e.Code)
}
