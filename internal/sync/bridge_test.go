package sync

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/HlnefzgerSchoolAct/HawkFuel/internal/record"
)

func TestBridgeRecordChangedSuccess(t *testing.T) {
	local := newFakeLocal()
	local.setSlotJSON(record.SlotStreakData, `{"current":2}`)
	cloud := newFakeCloud()
	status := &recordingStatus{}
	engine := NewEngine(local, cloud).WithClock(fixedClock("2025-02-23"))

	b := NewBridge(engine, "u1", status)
	if b.UserID() != "u1" {
		t.Errorf("UserID() = %q", b.UserID())
	}

	if err := b.RecordChanged(context.Background(), record.StreakData, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.started != 1 || status.completed != 1 || status.failed != 0 {
		t.Errorf("status = started %d completed %d failed %d", status.started, status.completed, status.failed)
	}
	if _, ok := cloud.docs["users/u1/data/streakData"]; !ok {
		t.Error("record not pushed")
	}
}

func TestBridgeRecordChangedFailure(t *testing.T) {
	local := newFakeLocal()
	cloud := newFakeCloud()
	cloud.setErr = errors.New("transport failure")
	status := &recordingStatus{}
	engine := NewEngine(local, cloud).WithClock(fixedClock("2025-02-23"))

	b := NewBridge(engine, "u1", status)
	err := b.RecordChanged(context.Background(), record.StreakData, json.RawMessage(`{"current":1}`))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if status.failed != 1 {
		t.Errorf("failed = %d, want 1", status.failed)
	}
	if status.lastErr == nil {
		t.Error("failure error not reported")
	}
}

func TestBridgeRecordChangedOffline(t *testing.T) {
	status := &recordingStatus{}
	engine := NewEngine(newFakeLocal(), nil)

	b := NewBridge(engine, "u1", status)
	if err := b.RecordChanged(context.Background(), record.StreakData, nil); err != nil {
		t.Fatalf("offline push must no-op, got %v", err)
	}
	if status.started != 0 {
		t.Errorf("status touched while offline: started = %d", status.started)
	}
}
