package logging_test

import (
	"bytes"
	"context"
	"github.com/myrjola/detectivequest/internal/logging"
	"github.com/stretchr/testify/require"
	"log/slog"
	"testing"
)

func TestContextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(&buf, slog.LevelDebug).With("source", "Explorer")

	ctx := logging.WithAttrs(context.Background(), slog.String("session", "abc"))
	logger.LogAttrs(ctx, slog.LevelInfo, "room entered", slog.String("room", "Hall"))

	out := buf.String()
	require.Contains(t, out, "session=abc")
	require.Contains(t, out, "source=Explorer")
	require.Contains(t, out, "room=Hall")
}

func TestWithAttrs_SiblingsDoNotShare(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(&buf, slog.LevelDebug)

	base := logging.WithAttrs(context.Background(), slog.String("session", "abc"))
	left := logging.WithAttrs(base, slog.String("dir", "left"))
	right := logging.WithAttrs(base, slog.String("dir", "right"))

	logger.InfoContext(left, "step")
	require.Contains(t, buf.String(), "dir=left")
	buf.Reset()
	logger.InfoContext(right, "step")
	require.Contains(t, buf.String(), "dir=right")
	require.NotContains(t, buf.String(), "dir=left")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", want: slog.LevelDebug},
		{name: "INFO", want: slog.LevelInfo},
		{name: "", want: slog.LevelInfo},
		{name: "warn", want: slog.LevelWarn},
		{name: "error", want: slog.LevelError},
		{name: "loud", want: slog.LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, logging.ErrUnknownLevel)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
