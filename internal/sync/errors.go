package sync

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a remote document does not exist.
var ErrNotFound = errors.New("record not found")

// SyncError is returned when a cloud operation fails with details.
// Extractable via errors.As(). Supports Unwrap().
type SyncError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync: %s failed (status %d): %v", e.Operation, e.StatusCode, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
