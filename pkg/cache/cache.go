// Package cache provides the read-through cache used by the repositories.
//
// Two stores implement Store: RedisStore for shared deployments and
// MemoryStore for single-process runs and tests. Values are stored as JSON.
// Keys are grouped by prefix ("franchises:", "branches:", "products:") so a
// write can evict every entry of a kind with a single Flush call.
package cache

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// Store is a key/value cache with prefix eviction.
//
// Every prefix carries a generation that Flush increments. A read-through
// fill records the generation before it loads and stores its value only if
// the generation is unchanged, so a write that commits and flushes while the
// load runs cannot be overwritten by the stale result.
type Store interface {
	// Get unmarshals the cached value for key into dest and reports a hit.
	// Any error is treated as a miss.
	Get(ctx context.Context, key string, dest any) bool
	// Generation returns the flush generation of prefix.
	Generation(ctx context.Context, prefix string) (int64, error)
	// Set stores value under key for ttl if the key's prefix is still at
	// generation gen, and reports whether it did. Nil values are never
	// cached.
	Set(ctx context.Context, key string, value any, ttl time.Duration, gen int64) (bool, error)
	// Flush removes every key under prefix, i.e. every key built with
	// Key(prefix, ...), and advances the prefix's generation.
	Flush(ctx context.Context, prefix string) error
	// Driver names the backend for metrics labels.
	Driver() string
}

// Key joins a prefix and an identifier: Key("franchises", id) → "franchises:<id>".
func Key(prefix string, parts ...string) string {
	k := prefix
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

// PrefixOf returns the prefix a key was built with.
func PrefixOf(key string) string {
	prefix, _, _ := strings.Cut(key, ":")
	return prefix
}

// Remember fills dest from the cache, or calls load to fill it and caches
// the result. A nil store always loads. Load errors are returned and
// nothing is cached; cache errors only cost a miss.
func Remember(ctx context.Context, s Store, key string, ttl time.Duration, dest any, load func() error) error {
	if s == nil {
		return load()
	}
	if s.Get(ctx, key, dest) {
		return nil
	}

	gen, genErr := s.Generation(ctx, PrefixOf(key))
	if err := load(); err != nil {
		return err
	}
	if genErr == nil {
		_, _ = s.Set(ctx, key, dest, ttl, gen)
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
