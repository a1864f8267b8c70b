// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	mu     sync.RWMutex
}

// New creates a new Logger writing human-readable output to stderr.
func New() *Logger {
	return &Logger{logger: slog.New(textHandler(os.Stderr))}
}

func textHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}

// SetOutput redirects the logger to w. Safe to call concurrently with the
// logging methods.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(textHandler(w))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Error logs an error. Metadata attached via zerr.With is emitted as
// structured attributes.
func (l *Logger) Error(err error) {
	args := []any{"error", err}
	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		for k, v := range zErr.Metadata() {
			args = append(args, k, v)
		}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", args...)
}
