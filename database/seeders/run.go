// Package seeders holds named seed functions run by `paladar seed`.
//
//	func init() {
//	    seeders.Register("demo", seedDemo)
//	}
package seeders

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/paladar/pkg/store"
)

// SeederFunc fills the store with rows.
type SeederFunc func(ctx context.Context, gw *store.Gateway) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry. Call it from init().
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// Names lists the registered seeders in registration order.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.name)
	}
	return out
}

// Run executes the named seeders, or all of them when names is empty, and
// stops on the first error.
func Run(ctx context.Context, gw *store.Gateway, out io.Writer, names ...string) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if len(names) > 0 {
		want := map[string]bool{}
		for _, n := range names {
			want[n] = true
		}
		selected := current[:0]
		for _, e := range current {
			if want[e.name] {
				selected = append(selected, e)
				delete(want, e.name)
			}
		}
		for n := range want {
			return fmt.Errorf("seeder %q is not registered", n)
		}
		current = selected
	}

	if len(current) == 0 {
		fmt.Fprintln(out, "  (no seeders registered)")
		return nil
	}

	for _, e := range current {
		fmt.Fprintf(out, "  • Running seeder: %s … ", e.name)
		if err := e.fn(ctx, gw); err != nil {
			fmt.Fprintln(out, "FAILED")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Fprintln(out, "done")
	}
	return nil
}
