package pprofserver_test

import (
	"github.com/myrjola/detectivequest/internal/pprofserver"
	"github.com/myrjola/detectivequest/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"testing"
)

func TestLaunch(t *testing.T) {
	ctx := t.Context()
	s, err := pprofserver.Launch(ctx, "127.0.0.1:0", testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+s.Addr()+"/debug/pprof/cmdline", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, s.Close())
	_, err = http.DefaultClient.Do(req)
	require.Error(t, err)
}

func TestLaunch_AddressInUse(t *testing.T) {
	ctx := t.Context()
	logger := testhelpers.NewLogger(io.Discard)
	s, err := pprofserver.Launch(ctx, "127.0.0.1:0", logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	_, err = pprofserver.Launch(ctx, s.Addr(), logger)
	require.Error(t, err)
}
