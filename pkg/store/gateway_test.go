package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/paladar/app/models"
	"github.com/shashiranjanraj/paladar/pkg/store"
	"github.com/shashiranjanraj/paladar/pkg/testkit"
)

func TestInitializeIsIdempotent(t *testing.T) {
	gw := testkit.OpenStore(t)

	first, err := gw.Initialize(context.Background())
	require.NoError(t, err)
	second, err := gw.Initialize(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.True(t, gw.Ready())
}

func TestCollectionBeforeInitialize(t *testing.T) {
	gw := store.New(store.Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "x.db")})

	_, err := gw.Collection(models.UsersCollection, store.ReadOnly)
	assert.ErrorIs(t, err, store.ErrNotInitialized)
	assert.ErrorIs(t, gw.Ping(context.Background()), store.ErrNotInitialized)
	assert.False(t, gw.Ready())
}

func TestInitializeUnavailable(t *testing.T) {
	cases := map[string]store.Config{
		"unknown driver": {Driver: "oracle", DSN: "whatever"},
		"empty dsn":      {Driver: "sqlite"},
		"missing dir":    {Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "no", "such", "dir", "x.db")},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			gw := store.New(cfg)
			_, err := gw.Initialize(context.Background())
			assert.ErrorIs(t, err, store.ErrStorageUnavailable)
			assert.False(t, gw.Ready())
		})
	}
}

func TestInitializeKeepsExistingData(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "paladar.db")
	ctx := context.Background()

	gw := store.New(store.Config{Driver: "sqlite", DSN: dsn})
	_, err := gw.Initialize(ctx)
	require.NoError(t, err)
	col, err := gw.Collection(models.UsersCollection, store.ReadWrite)
	require.NoError(t, err)
	require.NoError(t, col.Add(ctx, &models.User{Name: "Ana"}))
	require.NoError(t, gw.Close())

	_, err = os.Stat(dsn)
	require.NoError(t, err)

	reopened := store.New(store.Config{Driver: "sqlite", DSN: dsn})
	_, err = reopened.Initialize(ctx)
	require.NoError(t, err)
	defer reopened.Close()

	col, err = reopened.Collection(models.UsersCollection, store.ReadOnly)
	require.NoError(t, err)
	n, err := col.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUnknownCollection(t *testing.T) {
	gw := testkit.OpenStore(t)

	_, err := gw.Collection("reservas", store.ReadOnly)
	assert.ErrorIs(t, err, store.ErrUnknownCollection)
}
