// Package diag writes babylog's diagnostic log (debug.log in the data directory).
package diag

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the diagnostic log inside the data directory.
const FileName = "debug.log"

// ParseLevel maps a config level name to a slog level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// Open appends to dir/debug.log. The returned close function must be called
// when done. If the file cannot be opened the logger discards everything and
// the error is returned for the caller to report.
func Open(dir, level string) (*slog.Logger, func() error, error) {
	nop := func() error { return nil }
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return slog.New(slog.DiscardHandler), nop, fmt.Errorf("creating data directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return slog.New(slog.DiscardHandler), nop, fmt.Errorf("opening %s: %w", FileName, err)
	}
	return New(f, level), f.Close, nil
}
