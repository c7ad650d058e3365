package sync

import (
	"context"
	"encoding/json"

	"github.com/HlnefzgerSchoolAct/HawkFuel/internal/record"
)

// Bridge routes local record mutations to single-record pushes for one
// signed-in user. A Bridge is created at sign-in and discarded at
// sign-out; the rest of the app pushes changed records through it
// without knowing about authentication state. One bridge exists per
// active session.
type Bridge struct {
	engine *Engine
	userID string
	status StatusReporter
}

// NewBridge creates a bridge for a signed-in user. status may be nil.
func NewBridge(engine *Engine, userID string, status StatusReporter) *Bridge {
	return &Bridge{engine: engine, userID: userID, status: status}
}

// UserID returns the signed-in user this bridge pushes for.
func (b *Bridge) UserID() string { return b.userID }

// RecordChanged pushes one changed record to the cloud and updates the
// sync status around the attempt. The error is also returned so callers
// that want it can have it; the local write this push mirrors has
// already succeeded.
func (b *Bridge) RecordChanged(ctx context.Context, t record.Type, payload json.RawMessage) error {
	if b.engine.Offline() {
		return nil
	}

	if b.status != nil {
		b.status.SyncStarted()
	}
	if err := b.engine.SyncToCloud(ctx, b.userID, t, payload); err != nil {
		if b.status != nil {
			b.status.SyncFailed(err)
		}
		return err
	}
	if b.status != nil {
		b.status.SyncCompleted(b.engine.now().UTC())
	}
	return nil
}
