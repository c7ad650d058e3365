package hawkfuel

import (
	isync "github.com/HlnefzgerSchoolAct/HawkFuel/internal/sync"
)

// DebugLogger traces cloud API traffic and sync phases when debug mode
// is enabled. A nil *DebugLogger discards everything. The implementation
// lives in the sync layer, which produces most of the traffic it logs.
type DebugLogger = isync.DebugLogger

// NewDebugLogger creates a debug logger writing to logPath, or to
// stderr when logPath is empty.
func NewDebugLogger(enabled bool, logPath string) (*DebugLogger, error) {
	return isync.NewDebugLogger(enabled, logPath)
}
