package sync

import (
	"fmt"
	"io"
	"os"
	gosync "sync"
	"time"
)

// maxLoggedBody caps how much of a request body lands in the debug log;
// a full food-log document can run to many kilobytes of history.
const maxLoggedBody = 2048

// DebugLogger traces cloud traffic and sync phases when debug mode is
// on. A nil *DebugLogger is valid and silently discards everything, so
// callers never have to guard their log calls.
type DebugLogger struct {
	mu      gosync.Mutex
	enabled bool
	out     io.Writer
}

// NewDebugLogger creates a debug logger writing to logPath, or to
// stderr when logPath is empty.
func NewDebugLogger(enabled bool, logPath string) (*DebugLogger, error) {
	out := io.Writer(os.Stderr)
	if enabled && logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open debug log: %w", err)
		}
		out = f
	}
	return &DebugLogger{enabled: enabled, out: out}, nil
}

// Close releases the log file, if the logger owns one.
func (l *DebugLogger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if closer, ok := l.out.(io.Closer); ok && l.out != os.Stderr {
		return closer.Close()
	}
	return nil
}

func (l *DebugLogger) logf(format string, args ...any) {
	if l == nil || !l.enabled {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	stamp := time.Now().Format("2006-01-02T15:04:05.000Z07:00")
	_, _ = fmt.Fprintf(l.out, "%s hawkfuel: %s\n", stamp, fmt.Sprintf(format, args...))
}

// LogRequest traces an outgoing cloud request. The body, when present,
// is truncated to keep date-keyed documents from flooding the log.
func (l *DebugLogger) LogRequest(method, url string, body []byte) {
	if l == nil || !l.enabled {
		return
	}
	if len(body) == 0 {
		l.logf("-> %s %s", method, url)
		return
	}
	l.logf("-> %s %s (%d bytes)", method, url, len(body))
	if len(body) > maxLoggedBody {
		l.logf("   body: %s... [truncated]", body[:maxLoggedBody])
	} else {
		l.logf("   body: %s", body)
	}
}

// LogResponse traces a cloud response status.
func (l *DebugLogger) LogResponse(statusCode int, status string) {
	l.logf("<- %d %s", statusCode, status)
}

// LogError records a failed operation with its full error chain.
func (l *DebugLogger) LogError(operation string, err error) {
	l.logf("error %s: %v", operation, err)
}

// LogSync records a sync-phase event: reconciliation decisions, skipped
// record types, partial erasure counts.
func (l *DebugLogger) LogSync(phase, details string) {
	l.logf("sync %s: %s", phase, details)
}
