package trace

import (
	"fmt"
	"io"
	"sync"
)

// StreamTracer writes events immediately to an io.Writer, one line each.
type StreamTracer struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// NewStreamTracer creates a new StreamTracer.
func NewStreamTracer(w io.Writer, level Level) *StreamTracer {
	return &StreamTracer{w: w, level: level}
}

// Emit writes an event to the output.
func (t *StreamTracer) Emit(ev Event) {
	if !t.level.ShouldEmit(ev.Kind) {
		return
	}
	ev.Seq = NextSeq()

	t.mu.Lock()
	defer t.mu.Unlock()

	line := fmt.Sprintf("[%s] #%d %s %s", ev.Time.Format("15:04:05.000"), ev.Seq, ev.Kind, ev.Name)
	if ev.Detail != "" {
		line += " (" + ev.Detail + ")"
	}
	// Best-effort write; tracing must never disrupt the caller.
	_, _ = io.WriteString(t.w, line+"\n")
}

// Flush is a no-op for unbuffered stream output.
func (t *StreamTracer) Flush() error { return nil }

// Close flushes and closes the underlying writer when it is closable.
func (t *StreamTracer) Close() error {
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Level returns the configured tracing level.
func (t *StreamTracer) Level() Level { return t.level }

// Enabled reports whether tracing is active.
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
