package util

import (
	"fmt"
	"io"
	"sync"
)

// Warnings collects non-fatal degradations for one run. Each distinct
// message is recorded once and echoed to out as "Warning: ..." when out is
// set. A nil *Warnings discards everything. Safe for concurrent use.
type Warnings struct {
	mu    sync.Mutex
	out   io.Writer
	items []string
	seen  map[string]bool
}

// NewWarnings creates a collector that echoes to out (may be nil)
func NewWarnings(out io.Writer) *Warnings {
	return &Warnings{
		out:  out,
		seen: make(map[string]bool),
	}
}

// Addf records a formatted warning
func (w *Warnings) Addf(format string, args ...any) {
	if w == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.seen[msg] {
		return
	}
	w.seen[msg] = true
	w.items = append(w.items, msg)

	if w.out != nil {
		_, _ = fmt.Fprintf(w.out, "Warning: %s\n", msg)
	}
}

// Add records each message as is
func (w *Warnings) Add(msgs ...string) {
	for _, msg := range msgs {
		w.Addf("%s", msg)
	}
}

// List returns the recorded warnings in insertion order
func (w *Warnings) List() []string {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.items) == 0 {
		return nil
	}
	out := make([]string, len(w.items))
	copy(out, w.items)
	return out
}
