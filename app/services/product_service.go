package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johssalinas/backend-accenture/app/domain"
)

type AddProductInput struct {
	BranchID uuid.UUID
	Name     string
	Stock    *int
}

type ProductService struct {
	branches domain.BranchRepository
	products domain.ProductRepository
	log      *zap.Logger
}

func NewProductService(branches domain.BranchRepository, products domain.ProductRepository, log *zap.Logger) *ProductService {
	return &ProductService{branches: branches, products: products, log: named(log, "product")}
}

// Add creates a product in a branch.
func (s *ProductService) Add(ctx context.Context, in AddProductInput) (_ *domain.Product, err error) {
	defer finish(s.log, "product.add", &err)
	s.log.Info("adding product", zap.Stringer("branch_id", in.BranchID), zap.String("name", in.Name))

	b, err := s.branches.FindByID(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	p, err := domain.NewProduct(in.Name, in.Stock)
	if err != nil {
		return nil, err
	}
	taken, err := s.products.ExistsByNameAndBranchID(ctx, p.Name(), b.ID())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewDuplicateNameError(domain.EntityProduct, p.Name(), domain.EntityBranch)
	}
	if err := b.AddProduct(p); err != nil {
		return nil, err
	}
	return s.products.Save(ctx, p)
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (_ *domain.Product, err error) {
	defer finish(s.log, "product.get", &err)
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) ListByBranch(ctx context.Context, branchID uuid.UUID) (_ []*domain.Product, err error) {
	defer finish(s.log, "product.list", &err)

	ok, err := s.branches.ExistsByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewNotFoundError(domain.EntityBranch, branchID)
	}
	return s.products.FindByBranchID(ctx, branchID)
}

// UpdateName renames a product, keeping names unique within its branch.
func (s *ProductService) UpdateName(ctx context.Context, id uuid.UUID, name string) (_ *domain.Product, err error) {
	defer finish(s.log, "product.update_name", &err)
	s.log.Info("renaming product", zap.Stringer("id", id), zap.String("name", name))

	b, p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	old := p.Name()
	if _, err := b.RenameProduct(id, name); err != nil {
		return nil, err
	}
	if p.Name() != old {
		taken, err := s.products.ExistsByNameAndBranchID(ctx, p.Name(), b.ID())
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.NewDuplicateNameError(domain.EntityProduct, p.Name(), domain.EntityBranch)
		}
	}
	return s.products.Save(ctx, p)
}

// UpdateStock sets a product's stock. Nil and negative values are rejected.
func (s *ProductService) UpdateStock(ctx context.Context, id uuid.UUID, stock *int) (_ *domain.Product, err error) {
	defer finish(s.log, "product.update_stock", &err)
	s.log.Info("updating stock", zap.Stringer("id", id))

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.UpdateStock(stock); err != nil {
		return nil, err
	}
	return s.products.Save(ctx, p)
}

// Remove detaches a product from its branch and deletes it.
func (s *ProductService) Remove(ctx context.Context, id uuid.UUID) (err error) {
	defer finish(s.log, "product.remove", &err)
	s.log.Info("removing product", zap.Stringer("id", id))

	b, _, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	b.RemoveProduct(id)
	return s.products.DeleteByID(ctx, id)
}

// load returns the owning branch and the product as held by it.
func (s *ProductService) load(ctx context.Context, id uuid.UUID) (*domain.Branch, *domain.Product, error) {
	stored, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.branches.FindByID(ctx, stored.BranchID())
	if err != nil {
		return nil, nil, err
	}
	p, ok := b.FindProductByID(id)
	if !ok {
		return nil, nil, domain.NewNotFoundError(domain.EntityProduct, id)
	}
	return b, p, nil
}
