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

type BranchService interface {
	Add(ctx context.Context, in services.AddBranchInput) (*domain.Branch, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Branch, error)
	ListByFranchise(ctx context.Context, franchiseID uuid.UUID) ([]*domain.Branch, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.Branch, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BranchController struct {
	service BranchService
}

func NewBranchController(service BranchService) *BranchController {
	return &BranchController{service: service}
}

type createBranchRequest struct {
	FranchiseID string `json:"franchiseId" validate:"required,uuid"`
	Name        string `json:"name"        validate:"notblank"`
}

func (h *BranchController) Store(c *ctx.Context) {
	var req createBranchRequest
	if !c.BindJSON(&req) {
		return
	}
	b, err := h.service.Add(c.Context(), services.AddBranchInput{
		FranchiseID: uuid.MustParse(req.FranchiseID),
		Name:        req.Name,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resource.New(resources.BranchResource{}, b))
}

func (h *BranchController) Show(c *ctx.Context) {
	id, ok := c.ParamUUID("branchId")
	if !ok {
		return
	}
	b, err := h.service.Get(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.New(resources.BranchResource{}, b))
}

// IndexByFranchise handles GET /franchises/{franchiseId}/branches.
func (h *BranchController) IndexByFranchise(c *ctx.Context) {
	id, ok := c.ParamUUID("franchiseId")
	if !ok {
		return
	}
	list, err := h.service.ListByFranchise(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.CollectionOf(resources.BranchResource{}, list))
}

func (h *BranchController) UpdateName(c *ctx.Context) {
	id, ok := c.ParamUUID("branchId")
	if !ok {
		return
	}
	var req nameRequest
	if !c.BindJSON(&req) {
		return
	}
	b, err := h.service.UpdateName(c.Context(), id, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.New(resources.BranchResource{}, b))
}

func (h *BranchController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUUID("branchId")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}
