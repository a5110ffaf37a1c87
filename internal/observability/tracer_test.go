package observability_test

import (
	"context"
	"github.com/myrjola/detectivequest/internal/observability"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestInitTracing_Disabled(t *testing.T) {
	tp, err := observability.InitTracing(t.Context(), observability.Config{
		ServiceName:    "detectivequest",
		ServiceVersion: "test",
		Enabled:        false,
		Endpoint:       "",
		Insecure:       false,
	})
	require.NoError(t, err)
	require.False(t, tp.IsEnabled())

	_, span := tp.Tracer("test").Start(t.Context(), "noop")
	require.False(t, span.SpanContext().IsValid(), "disabled tracing records nothing")
	span.End()
	require.NoError(t, tp.Shutdown(t.Context()))
}

func TestInitTracing_Enabled(t *testing.T) {
	tp, err := observability.InitTracing(t.Context(), observability.Config{
		ServiceName:    "detectivequest",
		ServiceVersion: "test",
		Enabled:        true,
		Endpoint:       "127.0.0.1:1",
		Insecure:       true,
	})
	require.NoError(t, err)
	require.True(t, tp.IsEnabled())

	_, span := tp.Tracer("test").Start(t.Context(), "recorded")
	require.True(t, span.SpanContext().IsValid())
	span.End()
	// Nothing listens on the endpoint, so only make sure shutdown returns in time.
	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()
	_ = tp.Shutdown(ctx)
}
