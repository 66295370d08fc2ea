// Package cache is a small JSON key/value cache with a Redis driver and an
// in-process fallback.
//
//	c := cache.Connect(ctx, config.RedisAddr(), config.RedisPassword())
//	_ = c.Set(ctx, "k", v, time.Minute)
//	var out T
//	if c.Get(ctx, "k", &out) { ... }
package cache

import (
	"context"
	"time"

	"github.com/shashiranjanraj/paladar/pkg/logger"
)

// Store is implemented by every cache driver. Values are stored as JSON.
type Store interface {
	// Get unmarshals the value under key into dest and reports a hit.
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Driver() string
}

// Connect returns a Redis store when addr answers a ping, and a memory store
// otherwise. An empty addr selects memory without trying the network.
func Connect(ctx context.Context, addr, password string) Store {
	if addr == "" {
		return NewMemory()
	}
	r, err := NewRedis(ctx, addr, password)
	if err != nil {
		logger.Warn("cache: redis unavailable, using memory", "addr", addr, "error", err)
		return NewMemory()
	}
	logger.Info("cache: redis connected", "addr", addr)
	return r
}
