package hawkfuel

import (
	"errors"
	"fmt"

	isync "github.com/HlnefzgerSchoolAct/HawkFuel/internal/sync"
)

// Common errors returned by the HawkFuel client.
var (
	// ErrNotFound is returned when a document or record does not exist.
	// It originates in the sync layer, which owns remote-document lookups.
	ErrNotFound = isync.ErrNotFound

	// ErrStoreClosed is returned when operating on a closed store.
	ErrStoreClosed = errors.New("store is closed")

	// ErrOffline is returned when a network operation is attempted with no
	// cloud backend configured.
	ErrOffline = errors.New("operation unavailable in offline mode")

	// ErrNotSignedIn is returned when a cloud operation requires an active
	// signed-in session.
	ErrNotSignedIn = errors.New("no user signed in")

	// ErrSyncFailed is returned when a sync operation fails.
	ErrSyncFailed = errors.New("sync operation failed")

	// ErrInvalidRecordType is returned when a record type fails validation
	// where silence is not acceptable (e.g. portability import).
	ErrInvalidRecordType = errors.New("invalid record type")

	// ErrEmptyName is returned when a food, recipe, or template has no name.
	ErrEmptyName = errors.New("name cannot be empty")
)

// ValidationError is returned when configuration validation fails.
// Extractable via errors.As().
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// SyncError is returned when a cloud operation fails with details.
// Extractable via errors.As(). Supports Unwrap().
type SyncError = isync.SyncError
