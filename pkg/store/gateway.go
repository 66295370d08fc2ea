// Package store is the storage gateway: it opens the local database once,
// brings the schema up to date, and hands out handles scoped to a single
// collection and access mode.
//
//	gw := store.New(store.Config{Driver: "sqlite", DSN: "paladar.db"})
//	if _, err := gw.Initialize(ctx); err != nil { ... }
//	users, err := gw.Collection("users", store.ReadWrite)
//	err = users.Add(ctx, &models.User{Name: "Ana"})
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/paladar/pkg/logger"
	"github.com/shashiranjanraj/paladar/pkg/migration"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config selects the engine behind the gateway.
type Config struct {
	Driver string // sqlite | postgres | mysql | sqlserver
	DSN    string

	// SkipMigrations leaves the schema untouched on Initialize; the migrate
	// command uses it to run and report migrations itself.
	SkipMigrations bool
}

// Gateway owns the single store handle shared by every repository.
type Gateway struct {
	cfg Config

	mu     sync.Mutex
	db     *gorm.DB
	tables map[string]bool
}

func New(cfg Config) *Gateway {
	return &Gateway{cfg: cfg}
}

// Initialize opens the store and applies pending migrations. Once it has
// succeeded, later calls return the same handle without touching the engine.
// Any failure to open is reported as ErrStorageUnavailable and is not retried
// here.
func (g *Gateway) Initialize(ctx context.Context) (*gorm.DB, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil {
		return g.db, nil
	}

	dialector, err := buildDialector(g.cfg.Driver, g.cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorageUnavailable, g.cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if g.cfg.Driver == "sqlite" || g.cfg.Driver == "" {
		// sqlite allows one writer; a single connection serialises requests
		// instead of surfacing "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: ping: %w", ErrStorageUnavailable, err)
	}

	if !g.cfg.SkipMigrations {
		if _, err := migration.New(db.WithContext(ctx)).Run(); err != nil && !errors.Is(err, migration.ErrNoMigrations) {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("%w: schema: %w", ErrStorageUnavailable, err)
		}
	}

	g.db = db
	g.tables = nil
	logger.Info("store: ready", "driver", g.cfg.Driver)
	return db, nil
}

// Ready reports whether Initialize has completed.
func (g *Gateway) Ready() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.db != nil
}

// Collection returns a handle limited to one collection and one access mode.
func (g *Gateway) Collection(name string, mode Mode) (*Collection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil {
		return nil, ErrNotInitialized
	}
	if !g.tables[name] {
		if err := g.loadTables(); err != nil {
			return nil, fmt.Errorf("%w: list collections: %w", ErrRead, err)
		}
		if !g.tables[name] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
		}
	}
	return &Collection{name: name, mode: mode, db: g.db}, nil
}

func (g *Gateway) loadTables() error {
	names, err := g.db.Migrator().GetTables()
	if err != nil {
		return err
	}
	g.tables = make(map[string]bool, len(names))
	for _, n := range names {
		g.tables[n] = true
	}
	return nil
}

// Ping checks that the engine still answers.
func (g *Gateway) Ping(ctx context.Context) error {
	g.mu.Lock()
	db := g.db
	g.mu.Unlock()

	if db == nil {
		return ErrNotInitialized
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the engine. The gateway can be initialized again afterwards.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	g.db = nil
	g.tables = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	if dsn == "" {
		return nil, errors.New("empty DSN")
	}
	switch driver {
	case "sqlite", "":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}
