package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/paladar/pkg/workerpool"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newScheduler(t *testing.T, c *clock) *Scheduler {
	pool := workerpool.New("test", 2, 2)
	t.Cleanup(func() { _ = pool.Shutdown(context.Background()) })
	s := New(pool)
	s.now = c.now
	return s
}

func TestRunsWhenDue(t *testing.T) {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := newScheduler(t, c)

	var runs atomic.Int32
	s.Every(time.Hour, "count", func(context.Context) error {
		runs.Add(1)
		return nil
	})
	s.Every(0, "ignored", func(context.Context) error { return nil })
	assert.Equal(t, 1, s.Len())

	s.RunDue(context.Background())
	assert.Zero(t, runs.Load())

	c.t = c.t.Add(time.Hour)
	s.RunDue(context.Background())
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, time.Millisecond)

	s.RunDue(context.Background())
	time.Sleep(10 * time.Millisecond)
	assert.EqualValues(t, 1, runs.Load())
}

func TestSkipsWhileStillRunning(t *testing.T) {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := newScheduler(t, c)

	started := make(chan struct{}, 4)
	release := make(chan struct{})
	var runs atomic.Int32
	s.Every(time.Minute, "slow", func(context.Context) error {
		runs.Add(1)
		started <- struct{}{}
		<-release
		return nil
	})

	c.t = c.t.Add(time.Minute)
	s.RunDue(context.Background())
	<-started

	c.t = c.t.Add(time.Minute)
	s.RunDue(context.Background())
	close(release)

	time.Sleep(10 * time.Millisecond)
	assert.EqualValues(t, 1, runs.Load())
}
