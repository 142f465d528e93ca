package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johssalinas/backend-accenture/app/domain"
	"github.com/johssalinas/backend-accenture/app/models"
	"github.com/johssalinas/backend-accenture/pkg/cache"
	"github.com/johssalinas/backend-accenture/pkg/orm"
)

type ProductRepository struct {
	store
}

var _ domain.ProductRepository = (*ProductRepository)(nil)

func NewProductRepository(db *gorm.DB, c cache.Store, ttl time.Duration) *ProductRepository {
	return &ProductRepository{store{db: db, cache: c, ttl: ttl}}
}

func (r *ProductRepository) Save(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	rec := models.ProductFromDomain(p)
	rec.Version = 1
	next, err := r.save(ctx, write{
		op:      "product.save",
		entity:  domain.EntityProduct,
		scope:   domain.EntityBranch,
		id:      p.ID(),
		name:    p.Name(),
		version: p.Version(),
		record:  &rec,
		evicts:  []string{PrefixProducts, PrefixBranches, PrefixFranchises},
		changes: map[string]any{"name": p.Name(), "stock": p.Stock()},
	})
	if err != nil {
		return nil, err
	}
	return domain.RestoreProduct(p.ID(), p.Name(), p.Stock(), p.BranchID(), next), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var rec models.Product
	err := orm.New(ctx, r.db, "product.find").
		Where("id = ?", id.String()).
		CacheFirst(r.cache, cache.Key(PrefixProducts, id.String()), r.ttl, &rec)
	if orm.IsNotFound(err) {
		return nil, domain.NewNotFoundError(domain.EntityProduct, id)
	}
	if err != nil {
		return nil, err
	}
	return rec.ToDomain(), nil
}

func (r *ProductRepository) FindByBranchID(ctx context.Context, branchID uuid.UUID) ([]*domain.Product, error) {
	var recs []models.Product
	err := orm.New(ctx, r.db, "product.list").
		Where("branch_id = ?", branchID.String()).
		Order("created_at ASC, id ASC").
		Cache(r.cache, cache.Key(PrefixProducts, "branch", branchID.String()), r.ttl, &recs)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Product, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.ToDomain())
	}
	return out, nil
}

func (r *ProductRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "product.exists", &models.Product{}, "id = ?", id.String())
}

func (r *ProductRepository) ExistsByNameAndBranchID(ctx context.Context, name string, branchID uuid.UUID) (bool, error) {
	return r.exists(ctx, "product.exists_name", &models.Product{},
		"name = ? AND branch_id = ?", name, branchID.String())
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	var affected int64
	err := orm.Transaction(ctx, r.db, "product.delete", func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id.String()).Delete(&models.Product{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError(domain.EntityProduct, id)
	}
	r.evict(ctx, PrefixProducts, PrefixBranches, PrefixFranchises)
	return nil
}
