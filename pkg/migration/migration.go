// Package migration versions the store schema.
//
// Migrations register themselves from init() in database/migrations and run in
// name order; names are timestamp-prefixed so lexical order is chronological.
//
//	func init() {
//	    migration.Register("20250101000000_create_users_table", &CreateUsersTable{})
//	}
package migration

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shashiranjanraj/paladar/pkg/logger"
	"gorm.io/gorm"
)

// Migration is implemented by every schema step.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// record is the row kept in the tracking table for each applied migration.
type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "paladar_migrations" }

type entry struct {
	name string
	m    Migration
}

var (
	mu       sync.RWMutex
	registry []entry
)

// ErrNoMigrations is returned by Run when nothing has been registered.
var ErrNoMigrations = errors.New("migration: no migrations registered")

// Register adds m to the global registry under name.
func Register(name string, m Migration) {
	mu.Lock()
	defer mu.Unlock()
	for _, e := range registry {
		if e.name == name {
			panic(fmt.Sprintf("migration: %q registered twice", name))
		}
	}
	registry = append(registry, entry{name: name, m: m})
}

func registered() []entry {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]entry, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Status describes one registered migration.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// Runner applies and tracks migrations against one database.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

func (r *Runner) ensureTable() error {
	return r.db.AutoMigrate(&record{})
}

func (r *Runner) applied() (map[string]record, error) {
	var rows []record
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]record, len(rows))
	for _, row := range rows {
		out[row.Name] = row
	}
	return out, nil
}

// Run applies every pending migration as one batch and returns how many ran.
func (r *Runner) Run() (int, error) {
	all := registered()
	if len(all) == 0 {
		return 0, ErrNoMigrations
	}
	if err := r.ensureTable(); err != nil {
		return 0, fmt.Errorf("migration: ensure table: %w", err)
	}

	done, err := r.applied()
	if err != nil {
		return 0, fmt.Errorf("migration: fetch applied: %w", err)
	}

	batch := r.lastBatch() + 1
	ran := 0
	for _, e := range all {
		if _, ok := done[e.name]; ok {
			continue
		}

		logger.Info("migration: running", "name", e.name)
		if err := e.m.Up(r.db); err != nil {
			return ran, fmt.Errorf("migration: %s up: %w", e.name, err)
		}
		if err := r.db.Create(&record{Name: e.name, Batch: batch}).Error; err != nil {
			return ran, fmt.Errorf("migration: record %s: %w", e.name, err)
		}
		ran++
	}

	if ran > 0 {
		logger.Info("migration: done", "ran", ran, "batch", batch)
	}
	return ran, nil
}

// Rollback reverses the most recent batch and returns the names it undid.
func (r *Runner) Rollback() ([]string, error) {
	if err := r.ensureTable(); err != nil {
		return nil, fmt.Errorf("migration: ensure table: %w", err)
	}

	last := r.lastBatch()
	if last == 0 {
		return nil, nil
	}

	var rows []record
	if err := r.db.Where("batch = ?", last).Order("id desc").Find(&rows).Error; err != nil {
		return nil, err
	}

	byName := make(map[string]Migration)
	for _, e := range registered() {
		byName[e.name] = e.m
	}

	var undone []string
	for _, row := range rows {
		m, ok := byName[row.Name]
		if !ok {
			return undone, fmt.Errorf("migration: cannot roll back %s: not registered", row.Name)
		}

		logger.Info("migration: rolling back", "name", row.Name)
		if err := m.Down(r.db); err != nil {
			return undone, fmt.Errorf("migration: %s down: %w", row.Name, err)
		}
		if err := r.db.Delete(&row).Error; err != nil {
			return undone, err
		}
		undone = append(undone, row.Name)
	}
	return undone, nil
}

// Status reports every registered migration and whether it has been applied.
func (r *Runner) Status() ([]Status, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	done, err := r.applied()
	if err != nil {
		return nil, err
	}

	var out []Status
	for _, e := range registered() {
		row, ok := done[e.name]
		out = append(out, Status{Name: e.name, Ran: ok, Batch: row.Batch})
	}
	return out, nil
}

func (r *Runner) lastBatch() int {
	var max struct{ Max int }
	r.db.Model(&record{}).Select("COALESCE(MAX(batch), 0) as max").Scan(&max)
	return max.Max
}
