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

// FranchiseService is what FranchiseController needs from the service layer.
type FranchiseService interface {
	Create(ctx context.Context, in services.CreateFranchiseInput) (*domain.Franchise, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Franchise, error)
	List(ctx context.Context) ([]*domain.Franchise, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.Franchise, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TopStockProducts(ctx context.Context, id uuid.UUID) ([]domain.ProductStock, error)
}

type FranchiseController struct {
	service FranchiseService
}

func NewFranchiseController(service FranchiseService) *FranchiseController {
	return &FranchiseController{service: service}
}

type createFranchiseRequest struct {
	Name string `json:"name" validate:"notblank"`
}

// Store handles POST /franchises.
func (h *FranchiseController) Store(c *ctx.Context) {
	var req createFranchiseRequest
	if !c.BindJSON(&req) {
		return
	}
	f, err := h.service.Create(c.Context(), services.CreateFranchiseInput{Name: req.Name})
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resource.New(resources.FranchiseResource{}, f))
}

// Index handles GET /franchises.
func (h *FranchiseController) Index(c *ctx.Context) {
	list, err := h.service.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.CollectionOf(resources.FranchiseResource{}, list))
}

// Show handles GET /franchises/{franchiseId}.
func (h *FranchiseController) Show(c *ctx.Context) {
	id, ok := c.ParamUUID("franchiseId")
	if !ok {
		return
	}
	f, err := h.service.Get(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.New(resources.FranchiseResource{}, f))
}

// UpdateName handles PATCH /franchises/{franchiseId}/name.
func (h *FranchiseController) UpdateName(c *ctx.Context) {
	id, ok := c.ParamUUID("franchiseId")
	if !ok {
		return
	}
	var req nameRequest
	if !c.BindJSON(&req) {
		return
	}
	f, err := h.service.UpdateName(c.Context(), id, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.New(resources.FranchiseResource{}, f))
}

// Destroy handles DELETE /franchises/{franchiseId}.
func (h *FranchiseController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUUID("franchiseId")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}

// TopStockProducts handles GET /franchises/{franchiseId}/top-stock-products.
func (h *FranchiseController) TopStockProducts(c *ctx.Context) {
	id, ok := c.ParamUUID("franchiseId")
	if !ok {
		return
	}
	top, err := h.service.TopStockProducts(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.CollectionOf(resources.ProductStockResource{}, top))
}
