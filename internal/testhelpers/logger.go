// Package testhelpers collects helpers shared by tests of several packages.
package testhelpers

import (
	"bytes"
	"github.com/OPSAF/Anime/internal/logging"
	"io"
	"log/slog"
	"sync"
	"testing"
)

// NewLogger creates a debug level logger with the given log sink such as io.Discard. Attributes added with
// logging.WithAttrs end up in the records.
func NewLogger(logSink io.Writer) *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	return slog.New(handler)
}

// LogWriter returns a writer that forwards complete lines to t.Log, so the output only shows up for failing or
// verbose tests. Lines written after the test finished are dropped.
func LogWriter(t testing.TB) io.Writer {
	t.Helper()
	w := &testWriter{t: t}
	t.Cleanup(func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.done = true
	})
	return w
}

type testWriter struct {
	t    testing.TB
	mu   sync.Mutex
	buf  bytes.Buffer
	done bool
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return len(p), nil
	}
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadBytes('\n')
		if err != nil {
			// Keep the partial line for the next write.
			rest := append([]byte(nil), line...)
			w.buf.Reset()
			w.buf.Write(rest)
			return len(p), nil
		}
		w.t.Log(string(bytes.TrimRight(line, "\n")))
	}
}
