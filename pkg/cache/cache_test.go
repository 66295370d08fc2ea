package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	type form struct{ Mode string }
	require.NoError(t, m.Set(ctx, "k", form{Mode: "editing"}, 0))

	var got form
	assert.True(t, m.Get(ctx, "k", &got))
	assert.Equal(t, "editing", got.Mode)

	require.NoError(t, m.Del(ctx, "k"))
	assert.False(t, m.Get(ctx, "k", &got))
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", 1, time.Minute))

	var n int
	now = now.Add(59 * time.Second)
	assert.True(t, m.Get(ctx, "k", &n))

	now = now.Add(time.Second)
	assert.False(t, m.Get(ctx, "k", &n))
}

func TestConnectFallsBackToMemory(t *testing.T) {
	assert.Equal(t, "memory", Connect(context.Background(), "", "").Driver())

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	// nothing listens on port 1
	assert.Equal(t, "memory", Connect(ctx, "127.0.0.1:1", "").Driver())
}
