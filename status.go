package hawkfuel

import (
	"sync"
	"time"

	isync "github.com/HlnefzgerSchoolAct/HawkFuel/internal/sync"
)

// SyncState is the user-visible sync status.
type SyncState string

const (
	SyncIdle    SyncState = "idle"
	SyncSyncing SyncState = "syncing"
	SyncSuccess SyncState = "success"
	SyncErrored SyncState = "error"
)

// StatusReporter observes sync engine outcomes for display. The
// interface is owned by the sync engine, which consumes it.
type StatusReporter = isync.StatusReporter

// StatusTracker is an in-memory StatusReporter that remembers the latest
// state for status UI.
type StatusTracker struct {
	mu         sync.Mutex
	state      SyncState
	lastSynced time.Time
	lastErr    error
}

var _ StatusReporter = (*StatusTracker)(nil)

// NewStatusTracker returns a tracker in the idle state.
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{state: SyncIdle}
}

func (t *StatusTracker) SyncStarted() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = SyncSyncing
}

func (t *StatusTracker) SyncCompleted(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = SyncSuccess
	t.lastSynced = at
	t.lastErr = nil
}

func (t *StatusTracker) SyncFailed(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = SyncErrored
	t.lastErr = err
}

// State returns the current sync state.
func (t *StatusTracker) State() SyncState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// LastSynced returns the completion time of the most recent successful sync,
// or the zero time if none has completed.
func (t *StatusTracker) LastSynced() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSynced
}

// LastError returns the error from the most recent failed sync, if the
// tracker is in the error state.
func (t *StatusTracker) LastError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}
