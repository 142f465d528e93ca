// Package app wires the application together: it connects storage, builds
// repositories and services, and runs the servers.
//
//	a, err := app.Boot(ctx)
//	if err != nil { ... }
//	defer a.Close()
//	return a.Serve(ctx)
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johssalinas/backend-accenture/app/repositories"
	"github.com/johssalinas/backend-accenture/app/services"
	"github.com/johssalinas/backend-accenture/config"
	"github.com/johssalinas/backend-accenture/pkg/cache"
	"github.com/johssalinas/backend-accenture/pkg/database"
	"github.com/johssalinas/backend-accenture/pkg/logger"
)

// App holds the long-lived dependencies.
type App struct {
	DB    *gorm.DB
	Cache cache.Store
	Log   *zap.Logger

	Franchises *services.FranchiseService
	Branches   *services.BranchService
	Products   *services.ProductService

	closers []func() error
}

// Boot loads configuration, initialises logging and connects the database
// and cache.
func Boot(ctx context.Context) (*App, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := logger.Init(config.AppEnv(), config.LogLevel()); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	db, err := database.Connect(database.Options{
		Driver: config.DatabaseDriver(),
		DSN:    config.DatabaseDSN(),
	})
	if err != nil {
		return nil, err
	}
	logger.Info("database connected", zap.String("driver", config.DatabaseDriver()))

	store, closeCache := connectCache(ctx)
	a := New(db, store, logger.L)
	a.closers = append(a.closers, func() error { return database.Close(db) })
	if closeCache != nil {
		a.closers = append(a.closers, closeCache)
	}
	return a, nil
}

// New builds repositories and services on an open database. A nil store
// disables caching.
func New(db *gorm.DB, store cache.Store, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	ttl := config.CacheTTL()
	franchises := repositories.NewFranchiseRepository(db, store, ttl)
	branches := repositories.NewBranchRepository(db, store, ttl)
	products := repositories.NewProductRepository(db, store, ttl)

	return &App{
		DB:         db,
		Cache:      store,
		Log:        log,
		Franchises: services.NewFranchiseService(franchises, log),
		Branches:   services.NewBranchService(franchises, branches, log),
		Products:   services.NewProductService(branches, products, log),
	}
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	logger.Sync()
	return first
}

// connectCache prefers Redis and falls back to an in-process store when
// Redis is unreachable. CACHE_ENABLED=false disables caching entirely.
func connectCache(ctx context.Context) (cache.Store, func() error) {
	if !config.CacheEnabled() {
		logger.Info("cache disabled")
		return nil, nil
	}
	rs, err := cache.Connect(ctx, config.RedisAddr(), config.RedisPassword())
	if err != nil {
		logger.Warn("redis unavailable, using in-memory cache",
			zap.String("addr", config.RedisAddr()), zap.Error(err))
		return cache.NewMemoryStore(), nil
	}
	logger.Info("redis connected", zap.String("addr", config.RedisAddr()))
	return rs, rs.Close
}
