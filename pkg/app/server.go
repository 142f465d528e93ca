package app

import (
	"context"
	"net"

	gql "github.com/graphql-go/graphql"

	"github.com/johssalinas/backend-accenture/app/controllers"
	appgraphql "github.com/johssalinas/backend-accenture/app/graphql"
	"github.com/johssalinas/backend-accenture/app/routes"
	"github.com/johssalinas/backend-accenture/config"
	"github.com/johssalinas/backend-accenture/internal/kernel"
	"github.com/johssalinas/backend-accenture/internal/server"
	"github.com/johssalinas/backend-accenture/pkg/database"
	"github.com/johssalinas/backend-accenture/pkg/graphql"
	"github.com/johssalinas/backend-accenture/pkg/grpc"
	"github.com/johssalinas/backend-accenture/pkg/middleware"
)

// Kernel builds the HTTP kernel over the app's services.
func (a *App) Kernel() (*kernel.HTTPKernel, error) {
	schema, err := a.Schema()
	if err != nil {
		return nil, err
	}
	trusted, err := middleware.ParseTrustedProxies(config.TrustedProxies())
	if err != nil {
		return nil, err
	}
	limit, window := config.RateLimit()
	return kernel.NewHTTPKernel(kernel.Deps{
		Controllers: routes.Controllers{
			Franchises: controllers.NewFranchiseController(a.Franchises),
			Branches:   controllers.NewBranchController(a.Branches),
			Products:   controllers.NewProductController(a.Products),
		},
		Schema:         &schema,
		Health:         a.ping,
		TrustedProxies: trusted,
		RateLimit:      limit,
		RateWindow:     window,
	}), nil
}

// Serve runs HTTP on APP_PORT and gRPC health on GRPC_PORT until ctx is
// cancelled.
func (a *App) Serve(ctx context.Context) error {
	k, err := a.Kernel()
	if err != nil {
		return err
	}
	defer k.Close()

	return server.Run(ctx, server.Options{
		HTTPAddr: net.JoinHostPort("", config.AppPort()),
		Handler:  k.Handler(),
		GRPCAddr: net.JoinHostPort("", config.GRPCPort()),
		GRPC:     grpc.New(a.Log, a.ping),
	})
}

func (a *App) ping(ctx context.Context) error {
	return database.Ping(ctx, a.DB)
}

// Schema builds the read-only GraphQL schema over the franchise service.
func (a *App) Schema() (gql.Schema, error) {
	return graphql.NewSchema(appgraphql.NewQuery(a.Franchises))
}
