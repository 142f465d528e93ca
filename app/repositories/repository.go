// Package repositories implements the domain ports on gorm with a
// read-through cache.
//
// Writes are guarded by the entity's version: a zero version inserts, any
// other version updates only when the stored row still carries it. Every
// successful write flushes the cache prefixes whose entries embed the
// written row.
package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johssalinas/backend-accenture/app/domain"
	"github.com/johssalinas/backend-accenture/pkg/cache"
	"github.com/johssalinas/backend-accenture/pkg/logger"
	"github.com/johssalinas/backend-accenture/pkg/orm"
)

// Cache key prefixes.
const (
	PrefixFranchises = "franchises"
	PrefixBranches   = "branches"
	PrefixProducts   = "products"
)

// store bundles what every repository needs.
type store struct {
	db    *gorm.DB
	cache cache.Store
	ttl   time.Duration
}

// write describes one versioned save.
type write struct {
	op      string
	entity  string
	scope   string
	id      uuid.UUID
	name    string
	version int64
	record  any
	changes map[string]any
	// evicts lists the cache prefixes whose entries embed this row.
	evicts []string
}

// save inserts or updates w.record and returns the new version. The
// prefixes in w.evicts are flushed after a successful write and after a
// version conflict, which means the caller worked from a stale copy that
// may still be cached.
func (s store) save(ctx context.Context, w write) (int64, error) {
	next, err := s.persist(ctx, w)
	if err == nil || errors.Is(err, domain.ErrConflict) {
		s.evict(ctx, w.evicts...)
	}
	return next, err
}

func (s store) persist(ctx context.Context, w write) (int64, error) {
	if w.version == 0 {
		err := orm.Transaction(ctx, s.db, w.op, func(tx *gorm.DB) error {
			return tx.Create(w.record).Error
		})
		if err != nil {
			return 0, s.translate(w, err)
		}
		return 1, nil
	}

	w.changes["version"] = gorm.Expr("version + 1")
	w.changes["updated_at"] = time.Now()

	var affected int64
	err := orm.Transaction(ctx, s.db, w.op, func(tx *gorm.DB) error {
		res := tx.Model(w.record).
			Where("id = ? AND version = ?", w.id.String(), w.version).
			Updates(w.changes)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, s.translate(w, err)
	}
	if affected == 0 {
		return 0, domain.NewConflictError(w.entity, w.id)
	}
	return w.version + 1, nil
}

func (s store) translate(w write, err error) error {
	if orm.IsUniqueViolation(err) {
		return domain.NewDuplicateNameError(w.entity, w.name, w.scope)
	}
	return err
}

// evict flushes prefixes. Failures are logged; the write has already
// committed and entries expire on their own.
func (s store) evict(ctx context.Context, prefixes ...string) {
	if s.cache == nil {
		return
	}
	for _, p := range prefixes {
		if err := s.cache.Flush(ctx, p); err != nil {
			logger.WithCtx(ctx).Warn("cache eviction failed", zap.String("prefix", p), zap.Error(err))
		}
	}
}

func (s store) exists(ctx context.Context, op string, model any, query string, args ...any) (bool, error) {
	return orm.New(ctx, s.db, op).Model(model).Where(query, args...).Exists()
}
