// Package diag is the write-only diagnostic channel (USB serial on the MCU,
// stdout on the host). Nothing reads it back for control flow.
package diag

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// Logger writes one line per call. Errorf and Printf always write; Debugf
// only writes while diagnostics are enabled.
type Logger struct {
	mu   sync.Mutex
	w    io.Writer
	diag atomic.Bool
}

func New(w io.Writer, enabled bool) *Logger {
	if w == nil {
		w = io.Discard
	}
	l := &Logger{w: w}
	l.diag.Store(enabled)
	return l
}

// Discard returns a logger that drops everything.
func Discard() *Logger { return New(io.Discard, false) }

func (l *Logger) SetEnabled(on bool) { l.diag.Store(on) }
func (l *Logger) Enabled() bool      { return l.diag.Load() }

func (l *Logger) Printf(format string, a ...any) { l.line("", format, a...) }
func (l *Logger) Errorf(format string, a ...any) { l.line("ERROR! ", format, a...) }

func (l *Logger) Debugf(format string, a ...any) {
	if l.diag.Load() {
		l.line("", format, a...)
	}
}

// Writer exposes the sink for multi-line renderers.
func (l *Logger) Writer() io.Writer { return lockedWriter{l} }

func (l *Logger) line(prefix, format string, a ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, prefix+fmt.Sprintf(format, a...)+"\n")
}

type lockedWriter struct{ l *Logger }

func (w lockedWriter) Write(p []byte) (int, error) {
	w.l.mu.Lock()
	defer w.l.mu.Unlock()
	return w.l.w.Write(p)
}
