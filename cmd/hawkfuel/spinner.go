package main

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// spinner animates a one-line progress indicator while a sync operation
// runs. Off a TTY it degrades to a single plain status line.
type spinner struct {
	message string
	w       io.Writer
	done    atomic.Bool
}

func (s *spinner) start() {
	if !isTTY() {
		fmt.Fprintf(s.w, "%s...\n", s.message)
		return
	}

	style := lipgloss.NewStyle().Foreground(colorPrimary)
	go func() {
		for i := 0; !s.done.Load(); i++ {
			fmt.Fprintf(s.w, "\r%s %s", style.Render(spinnerFrames[i%len(spinnerFrames)]), s.message)
			time.Sleep(spinnerTick)
		}
	}()
}

func (s *spinner) stop() {
	s.done.Store(true)
	if isTTY() {
		// frame glyph + space + message, with slack for wide terminals
		width := 2 + 1 + len(s.message) + 5
		fmt.Fprint(s.w, "\r"+strings.Repeat(" ", width)+"\r")
	}
}

// runWithSpinner animates a spinner around operation and clears the
// line once it returns.
func runWithSpinner(w io.Writer, message string, operation func() error) error {
	s := &spinner{message: message, w: w}
	s.start()
	err := operation()
	s.stop()
	return err
}
