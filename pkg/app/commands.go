package app

import (
	"context"
	"io"

	"github.com/johssalinas/backend-accenture/database/seeders"
	"github.com/johssalinas/backend-accenture/pkg/migration"
	"github.com/johssalinas/backend-accenture/pkg/router"
)

// Migrate applies every pending migration and returns their names.
func (a *App) Migrate() ([]string, error) {
	return migration.New(a.DB).Run()
}

// Rollback reverts the last migration batch.
func (a *App) Rollback() ([]string, error) {
	return migration.New(a.DB).Rollback()
}

func (a *App) MigrationStatus() ([]migration.Status, error) {
	return migration.New(a.DB).Status()
}

// Seed runs every registered seeder through the app's services.
func (a *App) Seed(ctx context.Context, w io.Writer) error {
	return seeders.RunAll(ctx, seeders.Services{
		Franchises: a.Franchises,
		Branches:   a.Branches,
		Products:   a.Products,
	}, w)
}

// Routes lists the named HTTP routes.
func (a *App) Routes() ([]router.RouteInfo, error) {
	k, err := a.Kernel()
	if err != nil {
		return nil, err
	}
	defer k.Close()
	return k.Router().Routes(), nil
}
