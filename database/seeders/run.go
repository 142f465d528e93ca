// Package seeders provides a registry of seed functions. Seeders write
// through the application services, so every domain rule applies to seeded
// data as well.
//
// Define a seeder in any file in this package:
//
//	func init() {
//	    seeders.Register("demo", seedDemo)
//	}
//
// Then run it with: franchise seed
package seeders

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/johssalinas/backend-accenture/app/services"
)

// Services is what a seeder may write through.
type Services struct {
	Franchises *services.FranchiseService
	Branches   *services.BranchService
	Products   *services.ProductService
}

// SeederFunc is the signature for a seed function.
type SeederFunc func(ctx context.Context, s Services) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
// Call this from init() in your seeder files.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// Names lists the registered seeders in registration order.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out
}

// RunAll executes every registered seeder in registration order, reporting
// progress to w. It stops on the first error.
func RunAll(ctx context.Context, s Services, w io.Writer) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Fprintln(w, "  (no seeders registered)")
		return nil
	}

	for _, e := range current {
		fmt.Fprintf(w, "  • Running seeder: %s … ", e.name)
		if err := e.fn(ctx, s); err != nil {
			fmt.Fprintln(w, "FAILED")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Fprintln(w, "done")
	}
	return nil
}
