package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/paladar/pkg/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Mode is the access level a Collection handle was opened with.
type Mode int

const (
	ReadOnly Mode = iota
	ReadWrite
)

func (m Mode) String() string {
	if m == ReadWrite {
		return "readwrite"
	}
	return "readonly"
}

// Collection is a handle on one named collection. Every method is a single
// request with exactly one outcome; nothing spans collections.
type Collection struct {
	name string
	mode Mode
	db   *gorm.DB
}

func (c *Collection) Name() string { return c.name }
func (c *Collection) Mode() Mode   { return c.mode }

func (c *Collection) session(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx).Table(c.name)
}

func (c *Collection) writable() error {
	if c.mode != ReadWrite {
		return fmt.Errorf("%w: %s", ErrReadOnly, c.name)
	}
	return nil
}

// Add inserts rec; the store writes the assigned id back into it.
func (c *Collection) Add(ctx context.Context, rec any) error {
	if err := c.writable(); err != nil {
		return err
	}
	defer metrics.ObserveDBQuery("insert", time.Now())

	if err := c.session(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("%w: %s add: %w", ErrWrite, c.name, err)
	}
	return nil
}

// All loads every record into dest (a pointer to a slice), in id order.
func (c *Collection) All(ctx context.Context, dest any) error {
	defer metrics.ObserveDBQuery("select", time.Now())

	if err := c.session(ctx).Order("id").Find(dest).Error; err != nil {
		return fmt.Errorf("%w: %s list: %w", ErrRead, c.name, err)
	}
	return nil
}

// Get loads the record with the given id into dest.
func (c *Collection) Get(ctx context.Context, id uint, dest any) error {
	defer metrics.ObserveDBQuery("select", time.Now())

	if err := c.session(ctx).Take(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s %d", ErrNotFound, c.name, id)
		}
		return fmt.Errorf("%w: %s get %d: %w", ErrRead, c.name, id, err)
	}
	return nil
}

// Modify reads the record into dest, lets fn change it and writes it back,
// all inside one transaction. The id is never touched by the write.
func (c *Collection) Modify(ctx context.Context, id uint, dest any, fn func() error) error {
	if err := c.writable(); err != nil {
		return err
	}
	defer metrics.ObserveDBQuery("update", time.Now())

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(c.name).Take(dest, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s %d", ErrNotFound, c.name, id)
			}
			return fmt.Errorf("%w: %s read %d: %w", ErrRead, c.name, id, err)
		}
		if err := fn(); err != nil {
			return err
		}
		if err := tx.Table(c.name).Save(dest).Error; err != nil {
			return fmt.Errorf("%w: %s update %d: %w", ErrWrite, c.name, id, err)
		}
		return nil
	})
}

// Delete removes the record with the given id. Deleting an id that does not
// exist succeeds and changes nothing.
func (c *Collection) Delete(ctx context.Context, id uint, model any) error {
	if err := c.writable(); err != nil {
		return err
	}
	defer metrics.ObserveDBQuery("delete", time.Now())

	if err := c.session(ctx).Delete(model, id).Error; err != nil {
		return fmt.Errorf("%w: %s delete %d: %w", ErrWrite, c.name, id, err)
	}
	return nil
}

// Index loads every record whose indexed column equals value.
func (c *Collection) Index(ctx context.Context, column string, value any, dest any) error {
	defer metrics.ObserveDBQuery("select", time.Now())

	err := c.session(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Order("id").
		Find(dest).Error
	if err != nil {
		return fmt.Errorf("%w: %s by %s: %w", ErrRead, c.name, column, err)
	}
	return nil
}

// Count returns the number of records in the collection.
func (c *Collection) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var n int64
	if err := c.session(ctx).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: %s count: %w", ErrRead, c.name, err)
	}
	return n, nil
}
