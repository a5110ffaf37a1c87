package logging

import (
	"github.com/myrjola/detectivequest/internal/errors"
	"io"
	"log/slog"
	"strings"
)

var ErrUnknownLevel = errors.NewSentinel("unknown log level")

// ParseLevel maps the configured level name to a [slog.Level].
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.Wrap(ErrUnknownLevel, "parse level", slog.String("level", name))
}

// NewLogger creates a text logger writing to w that is enriched with context attributes.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewContextHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	})))
}
