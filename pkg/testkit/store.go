// Package testkit collects the helpers shared by paladar's tests: a
// throwaway store per test and small HTTP request builders.
package testkit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/shashiranjanraj/paladar/database/migrations"
	"github.com/shashiranjanraj/paladar/pkg/store"
)

// OpenStore returns an initialized gateway over a fresh sqlite file that is
// removed when the test ends.
func OpenStore(t testing.TB) *store.Gateway {
	t.Helper()

	gw := store.New(store.Config{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "paladar.db"),
	})
	_, err := gw.Initialize(context.Background())
	require.NoError(t, err, "testkit: initialize store")

	t.Cleanup(func() { _ = gw.Close() })
	return gw
}
