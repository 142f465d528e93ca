package routes

import (
	"github.com/johssalinas/backend-accenture/app/controllers"
	"github.com/johssalinas/backend-accenture/pkg/ctx"
	"github.com/johssalinas/backend-accenture/pkg/router"
)

// Controllers groups the handlers mounted by RegisterAPI.
type Controllers struct {
	Franchises *controllers.FranchiseController
	Branches   *controllers.BranchController
	Products   *controllers.ProductController
}

// RegisterAPI mounts the REST API under /api/v1.
func RegisterAPI(r *router.Router, c Controllers) {
	api := r.Group("/api/v1")

	franchises := api.Group("/franchises")
	franchises.Post("", "franchises.store", ctx.Wrap(c.Franchises.Store))
	franchises.Get("", "franchises.index", ctx.Wrap(c.Franchises.Index))
	franchises.Get("/{franchiseId}", "franchises.show", ctx.Wrap(c.Franchises.Show))
	franchises.Patch("/{franchiseId}/name", "franchises.update_name", ctx.Wrap(c.Franchises.UpdateName))
	franchises.Delete("/{franchiseId}", "franchises.destroy", ctx.Wrap(c.Franchises.Destroy))
	franchises.Get("/{franchiseId}/top-stock-products", "franchises.top_stock", ctx.Wrap(c.Franchises.TopStockProducts))
	franchises.Get("/{franchiseId}/branches", "franchises.branches", ctx.Wrap(c.Branches.IndexByFranchise))

	branches := api.Group("/branches")
	branches.Post("", "branches.store", ctx.Wrap(c.Branches.Store))
	branches.Get("/{branchId}", "branches.show", ctx.Wrap(c.Branches.Show))
	branches.Patch("/{branchId}/name", "branches.update_name", ctx.Wrap(c.Branches.UpdateName))
	branches.Delete("/{branchId}", "branches.destroy", ctx.Wrap(c.Branches.Destroy))
	branches.Get("/{branchId}/products", "branches.products", ctx.Wrap(c.Products.IndexByBranch))

	products := api.Group("/products")
	products.Post("", "products.store", ctx.Wrap(c.Products.Store))
	products.Get("/{productId}", "products.show", ctx.Wrap(c.Products.Show))
	products.Patch("/{productId}/name", "products.update_name", ctx.Wrap(c.Products.UpdateName))
	products.Patch("/{productId}/stock", "products.update_stock", ctx.Wrap(c.Products.UpdateStock))
	products.Delete("/{productId}", "products.destroy", ctx.Wrap(c.Products.Destroy))
}
