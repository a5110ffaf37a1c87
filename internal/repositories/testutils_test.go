package repositories_test

import (
	"github.com/myrjola/detectivequest/internal/sqlite"
	"github.com/myrjola/detectivequest/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

// newTestDB creates a new in-memory database for testing purposes.
func newTestDB(t *testing.T) *sqlite.Database {
	t.Helper()
	dbs, err := sqlite.NewDatabase(t.Context(), ":memory:", testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, dbs.Close())
	})
	return dbs
}
