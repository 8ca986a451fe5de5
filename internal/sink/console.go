package sink

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/vvka-141/qcsv/pkg/qcsv"
)

// ConsoleSink writes each script, followed by a newline, to a text stream.
type ConsoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleSink creates a sink writing to w.
// Panics if w is nil.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		panic("writer cannot be nil")
	}
	return &ConsoleSink{w: w}
}

// Write implements qcsv.StatementSink.
func (s *ConsoleSink) Write(_ context.Context, _ string, script string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintln(s.w, script); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	return nil
}

var _ qcsv.StatementSink = (*ConsoleSink)(nil)
