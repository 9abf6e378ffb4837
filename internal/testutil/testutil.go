// Package testutil holds small helpers shared by tests across packages.
package testutil

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/sugipamo/project-cph-sub010/internal/ctxlog"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements io.Writer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements fmt.Stringer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// DiscardLogger returns a logger that drops everything, for tests that
// need a logger in context but never assert on output.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// BufferLogger returns a text logger writing into a SafeBuffer so tests
// can assert on emitted log lines.
func BufferLogger() (*slog.Logger, *SafeBuffer) {
	buf := &SafeBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// Context returns a background context carrying a discard logger, the
// minimum most engine code paths expect.
func Context() context.Context {
	return ctxlog.WithLogger(context.Background(), DiscardLogger())
}
