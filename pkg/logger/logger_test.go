package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))

	var buf bytes.Buffer
	reqLog := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc")
	ctx := InjectLogger(context.Background(), reqLog)

	WithCtx(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=abc")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	warnOnly := slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn})
	log := slog.New(NewMultiHandler(slog.NewTextHandler(&a, nil), warnOnly)).With("component", "store")

	log.Info("opened")
	log.Warn("slow query")

	assert.Contains(t, a.String(), "opened")
	assert.Contains(t, a.String(), "slow query")
	assert.NotContains(t, b.String(), "opened")
	assert.Contains(t, b.String(), "component=store")
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LevelFor(200))
	assert.Equal(t, slog.LevelInfo, LevelFor(303))
	assert.Equal(t, slog.LevelWarn, LevelFor(422))
	assert.Equal(t, slog.LevelError, LevelFor(503))
}
