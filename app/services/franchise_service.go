package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johssalinas/backend-accenture/app/domain"
)

type CreateFranchiseInput struct {
	Name string
}

// FranchiseService manages franchises and answers the top-stock query.
type FranchiseService struct {
	franchises domain.FranchiseRepository
	log        *zap.Logger
}

func NewFranchiseService(franchises domain.FranchiseRepository, log *zap.Logger) *FranchiseService {
	return &FranchiseService{franchises: franchises, log: named(log, "franchise")}
}

// Create registers a franchise. Names are unique across all franchises.
func (s *FranchiseService) Create(ctx context.Context, in CreateFranchiseInput) (_ *domain.Franchise, err error) {
	defer finish(s.log, "franchise.create", &err)
	s.log.Info("creating franchise", zap.String("name", in.Name))

	f, err := domain.NewFranchise(in.Name)
	if err != nil {
		return nil, err
	}
	taken, err := s.franchises.ExistsByName(ctx, f.Name())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewDuplicateNameError(domain.EntityFranchise, f.Name(), "")
	}
	return s.franchises.Save(ctx, f)
}

func (s *FranchiseService) Get(ctx context.Context, id uuid.UUID) (_ *domain.Franchise, err error) {
	defer finish(s.log, "franchise.get", &err)
	return s.franchises.FindByID(ctx, id)
}

func (s *FranchiseService) List(ctx context.Context) (_ []*domain.Franchise, err error) {
	defer finish(s.log, "franchise.list", &err)
	return s.franchises.FindAll(ctx)
}

// UpdateName renames a franchise. Renaming to its current name is a no-op
// write; taking another franchise's name fails.
func (s *FranchiseService) UpdateName(ctx context.Context, id uuid.UUID, name string) (_ *domain.Franchise, err error) {
	defer finish(s.log, "franchise.update_name", &err)
	s.log.Info("renaming franchise", zap.Stringer("id", id), zap.String("name", name))

	f, err := s.franchises.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	old := f.Name()
	if err := f.UpdateName(name); err != nil {
		return nil, err
	}
	if f.Name() != old {
		taken, err := s.franchises.ExistsByName(ctx, f.Name())
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.NewDuplicateNameError(domain.EntityFranchise, f.Name(), "")
		}
	}
	return s.franchises.Save(ctx, f)
}

// Delete removes a franchise together with its branches and products.
func (s *FranchiseService) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer finish(s.log, "franchise.delete", &err)
	s.log.Info("deleting franchise", zap.Stringer("id", id))

	ok, err := s.franchises.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFoundError(domain.EntityFranchise, id)
	}
	return s.franchises.DeleteByID(ctx, id)
}

// TopStockProducts returns, per branch in branch order, the product with
// the most stock. Branches without products are skipped.
func (s *FranchiseService) TopStockProducts(ctx context.Context, id uuid.UUID) (_ []domain.ProductStock, err error) {
	defer finish(s.log, "franchise.top_stock", &err)

	f, err := s.franchises.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return f.TopStockProducts(), nil
}
