// Package schedule runs named tasks at fixed intervals.
//
//	s := schedule.New(workerpool.New("schedule", 1, 0))
//	s.Every(6*time.Hour, "backup", exportBackup)
//	go s.Start(ctx)
//
// Each due task is handed to the pool. A task that is still running when it
// comes due again is skipped for that tick.
package schedule

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shashiranjanraj/paladar/pkg/logger"
	"github.com/shashiranjanraj/paladar/pkg/workerpool"
)

// Task receives the scheduler's context, which ends on shutdown.
type Task func(ctx context.Context) error

type entry struct {
	name     string
	interval time.Duration
	task     Task
	next     time.Time
	running  bool
}

type Scheduler struct {
	pool *workerpool.Pool
	tick time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries []*entry
}

func New(pool *workerpool.Pool) *Scheduler {
	return &Scheduler{pool: pool, tick: time.Second, now: time.Now}
}

// Every registers task to run first after one interval, then every interval.
// Non-positive intervals are ignored.
func (s *Scheduler) Every(interval time.Duration, name string, task Task) {
	if interval <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, &entry{
		name:     name,
		interval: interval,
		task:     task,
		next:     s.now().Add(interval),
	})
}

// Len reports how many tasks are registered.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Start dispatches due tasks until ctx ends. It blocks.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	logger.Info("schedule: started", "tasks", s.Len())

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: stopped")
			return
		case <-ticker.C:
			s.RunDue(ctx)
		}
	}
}

// RunDue dispatches every task whose time has come.
func (s *Scheduler) RunDue(ctx context.Context) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if now.Before(e.next) {
			continue
		}
		e.next = now.Add(e.interval)
		if e.running {
			logger.Warn("schedule: previous run still going, skipping", "task", e.name)
			continue
		}
		s.dispatch(ctx, e)
	}
}

func (s *Scheduler) dispatch(ctx context.Context, e *entry) {
	e.running = true
	err := s.pool.Submit(func() {
		defer func() {
			s.mu.Lock()
			e.running = false
			s.mu.Unlock()
		}()
		start := time.Now()
		if err := e.task(ctx); err != nil {
			logger.Error("schedule: task failed", "task", e.name, "error", err)
			return
		}
		logger.Info("schedule: task done", "task", e.name, "took", time.Since(start))
	})
	if err != nil {
		e.running = false
		if errors.Is(err, workerpool.ErrPoolFull) {
			logger.Warn("schedule: no free worker, skipping", "task", e.name)
			return
		}
		logger.Warn("schedule: dispatch failed", "task", e.name, "error", err)
	}
}
