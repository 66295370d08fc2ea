// Package server runs the HTTP (and optional gRPC health) listeners until the
// process is told to stop.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/paladar/app/repositories"
	"github.com/shashiranjanraj/paladar/app/services"
	"github.com/shashiranjanraj/paladar/config"
	"github.com/shashiranjanraj/paladar/internal/kernel"
	"github.com/shashiranjanraj/paladar/pkg/broker"
	"github.com/shashiranjanraj/paladar/pkg/cache"
	"github.com/shashiranjanraj/paladar/pkg/event"
	"github.com/shashiranjanraj/paladar/pkg/grpc"
	"github.com/shashiranjanraj/paladar/pkg/logger"
	"github.com/shashiranjanraj/paladar/pkg/middleware"
	"github.com/shashiranjanraj/paladar/pkg/schedule"
	"github.com/shashiranjanraj/paladar/pkg/session"
	"github.com/shashiranjanraj/paladar/pkg/storage"
	"github.com/shashiranjanraj/paladar/pkg/store"
	"github.com/shashiranjanraj/paladar/pkg/workerpool"
	"github.com/shashiranjanraj/paladar/pkg/ws"
)

const (
	shutdownTimeout = 10 * time.Second
	healthInterval  = 15 * time.Second
)

// Start boots every dependency from config and serves until SIGINT/SIGTERM
// or ctx ends. A store that cannot be opened does not stop the server: pages
// report it and /healthz answers 503.
func Start(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.LogMongoURI(); uri != "" {
		closeSink, err := logger.EnableMongo(uri, config.LogMongoDB(), config.LogMongoCollection())
		if err != nil {
			logger.Warn("server: mongo log sink disabled", "error", err)
		}
		defer closeSink()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw := store.New(store.Config{Driver: config.DatabaseDriver(), DSN: config.DatabaseDSN()})
	if _, err := gw.Initialize(ctx); err != nil {
		logger.Error("server: store unavailable", "error", err)
	}
	defer gw.Close()

	sessions := session.DefaultOptions()
	sessions.TTL = config.SessionTTL()

	events := event.New()
	hub := ws.NewHub()
	limiter := middleware.NewLimiter(config.RateLimit(), time.Minute)

	if url := config.AMQPURL(); url != "" {
		pub, err := broker.Dial(broker.Config{URL: url, Exchange: config.AMQPExchange()})
		if err != nil {
			logger.Warn("server: change publishing disabled", "error", err)
		} else {
			defer pub.Close()
			broker.Forward(events, pub)
		}
	}

	k, err := kernel.NewHTTPKernel(kernel.Deps{
		Store:   gw,
		Cache:   cache.Connect(ctx, config.RedisAddr(), config.RedisPassword()),
		Events:  events,
		Hub:     hub,
		Limiter: limiter,
		Session: sessions,
		CORS:    middleware.DefaultCORSOptions(),
	})
	if err != nil {
		return err
	}

	go hub.Run(ctx)
	go limiter.Sweep(ctx)

	if every := config.BackupInterval(); every > 0 {
		stopBackups, err := scheduleBackups(ctx, gw, every)
		if err != nil {
			return err
		}
		defer stopBackups()
	}

	if port := config.GRPCPort(); port != "" {
		gs := grpc.New(gw)
		if _, err := gs.Start(port); err != nil {
			return err
		}
		defer gs.Stop()
		go gs.Watch(ctx, healthInterval)
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// scheduleBackups exports a backup to the default disk every interval. The
// returned func waits for a running export to finish.
func scheduleBackups(ctx context.Context, gw *store.Gateway, every time.Duration) (func(), error) {
	disk, err := storage.FromConfig(ctx).Disk("")
	if err != nil {
		return nil, err
	}
	backups := services.NewBackupService(
		repositories.NewUserRepository(gw, nil),
		repositories.NewOrderRepository(gw, nil),
		disk,
	)

	pool := workerpool.New("schedule", 1, 0)
	s := schedule.New(pool)
	s.Every(every, "backup", func(ctx context.Context) error {
		_, err := backups.Export(ctx)
		return err
	})
	go s.Start(ctx)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := pool.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server: backup still running at shutdown", "error", err)
		}
	}, nil
}
