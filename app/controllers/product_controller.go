package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/johssalinas/backend-accenture/app/domain"
	"github.com/johssalinas/backend-accenture/app/resources"
	"github.com/johssalinas/backend-accenture/app/services"
	"github.com/johssalinas/backend-accenture/pkg/ctx"
	"github.com/johssalinas/backend-accenture/pkg/resource"
)

type ProductService interface {
	Add(ctx context.Context, in services.AddProductInput) (*domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListByBranch(ctx context.Context, branchID uuid.UUID) ([]*domain.Product, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.Product, error)
	UpdateStock(ctx context.Context, id uuid.UUID, stock *int) (*domain.Product, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type ProductController struct {
	service ProductService
}

func NewProductController(service ProductService) *ProductController {
	return &ProductController{service: service}
}

type createProductRequest struct {
	BranchID string `json:"branchId" validate:"required,uuid"`
	Name     string `json:"name"     validate:"notblank"`
	Stock    *int   `json:"stock"    validate:"required,gte=0"`
}

type stockRequest struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

func (h *ProductController) Store(c *ctx.Context) {
	var req createProductRequest
	if !c.BindJSON(&req) {
		return
	}
	p, err := h.service.Add(c.Context(), services.AddProductInput{
		BranchID: uuid.MustParse(req.BranchID),
		Name:     req.Name,
		Stock:    req.Stock,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resource.New(resources.ProductResource{}, p))
}

func (h *ProductController) Show(c *ctx.Context) {
	id, ok := c.ParamUUID("productId")
	if !ok {
		return
	}
	p, err := h.service.Get(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.New(resources.ProductResource{}, p))
}

// IndexByBranch handles GET /branches/{branchId}/products.
func (h *ProductController) IndexByBranch(c *ctx.Context) {
	id, ok := c.ParamUUID("branchId")
	if !ok {
		return
	}
	list, err := h.service.ListByBranch(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.CollectionOf(resources.ProductResource{}, list))
}

func (h *ProductController) UpdateName(c *ctx.Context) {
	id, ok := c.ParamUUID("productId")
	if !ok {
		return
	}
	var req nameRequest
	if !c.BindJSON(&req) {
		return
	}
	p, err := h.service.UpdateName(c.Context(), id, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.New(resources.ProductResource{}, p))
}

func (h *ProductController) UpdateStock(c *ctx.Context) {
	id, ok := c.ParamUUID("productId")
	if !ok {
		return
	}
	var req stockRequest
	if !c.BindJSON(&req) {
		return
	}
	p, err := h.service.UpdateStock(c.Context(), id, req.Stock)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.New(resources.ProductResource{}, p))
}

func (h *ProductController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUUID("productId")
	if !ok {
		return
	}
	if err := h.service.Remove(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}
