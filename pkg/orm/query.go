// Package orm is a small chainable layer over gorm used by the
// repositories. Every terminal call is timed under its operation name, and
// Cache / CacheFirst read through a cache.Store.
package orm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/johssalinas/backend-accenture/pkg/cache"
	"github.com/johssalinas/backend-accenture/pkg/metrics"
)

type Query struct {
	db *gorm.DB
	op string
}

// New starts a query. op labels the franchise_db_query_duration_seconds
// histogram.
func New(ctx context.Context, db *gorm.DB, op string) *Query {
	return &Query{db: db.WithContext(ctx), op: op}
}

func (q *Query) with(db *gorm.DB) *Query {
	return &Query{db: db, op: q.op}
}

func (q *Query) Model(v any) *Query {
	return q.with(q.db.Model(v))
}

func (q *Query) Where(query any, args ...any) *Query {
	return q.with(q.db.Where(query, args...))
}

func (q *Query) Order(v any) *Query {
	return q.with(q.db.Order(v))
}

// Preload eager-loads an association in insertion order.
func (q *Query) Preload(assoc string) *Query {
	return q.with(q.db.Preload(assoc, InsertionOrder))
}

// InsertionOrder sorts rows the way they were created.
func InsertionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

func (q *Query) Get(dest any) error {
	defer metrics.ObserveDBQuery(q.op, time.Now())
	return q.db.Find(dest).Error
}

// First returns gorm.ErrRecordNotFound when nothing matches.
func (q *Query) First(dest any) error {
	defer metrics.ObserveDBQuery(q.op, time.Now())
	return q.db.Take(dest).Error
}

// Exists reports whether any row matches.
func (q *Query) Exists() (bool, error) {
	defer metrics.ObserveDBQuery(q.op, time.Now())
	var n int64
	if err := q.db.Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Cache is Get reading through store. A nil store disables caching.
func (q *Query) Cache(store cache.Store, key string, ttl time.Duration, dest any) error {
	return q.remember(store, key, ttl, dest, q.Get)
}

// CacheFirst is First reading through store. Misses are not cached.
func (q *Query) CacheFirst(store cache.Store, key string, ttl time.Duration, dest any) error {
	return q.remember(store, key, ttl, dest, q.First)
}

func (q *Query) remember(store cache.Store, key string, ttl time.Duration, dest any, load func(any) error) error {
	return cache.Remember(q.db.Statement.Context, store, key, ttl, dest, func() error {
		return load(dest)
	})
}
