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

// FranchiseRepository stores franchises and reads them back fully hydrated.
type FranchiseRepository struct {
	store
}

var _ domain.FranchiseRepository = (*FranchiseRepository)(nil)

// NewFranchiseRepository returns a repository backed by db. A nil cache
// disables caching.
func NewFranchiseRepository(db *gorm.DB, c cache.Store, ttl time.Duration) *FranchiseRepository {
	return &FranchiseRepository{store{db: db, cache: c, ttl: ttl}}
}

// Save writes the franchise row only.
func (r *FranchiseRepository) Save(ctx context.Context, f *domain.Franchise) (*domain.Franchise, error) {
	rec := models.FranchiseFromDomain(f)
	rec.Version = 1
	next, err := r.save(ctx, write{
		op:      "franchise.save",
		entity:  domain.EntityFranchise,
		id:      f.ID(),
		name:    f.Name(),
		version: f.Version(),
		record:  &rec,
		evicts:  []string{PrefixFranchises},
		changes: map[string]any{"name": f.Name()},
	})
	if err != nil {
		return nil, err
	}
	return domain.RestoreFranchise(f.ID(), f.Name(), next, f.Branches()...), nil
}

func (r *FranchiseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Franchise, error) {
	var rec models.Franchise
	err := orm.New(ctx, r.db, "franchise.find").
		Preload("Branches").
		Preload("Branches.Products").
		Where("id = ?", id.String()).
		CacheFirst(r.cache, cache.Key(PrefixFranchises, id.String()), r.ttl, &rec)
	if orm.IsNotFound(err) {
		return nil, domain.NewNotFoundError(domain.EntityFranchise, id)
	}
	if err != nil {
		return nil, err
	}
	return rec.ToDomain(), nil
}

// FindAll returns every franchise, hydrated, in creation order.
func (r *FranchiseRepository) FindAll(ctx context.Context) ([]*domain.Franchise, error) {
	var recs []models.Franchise
	err := orm.New(ctx, r.db, "franchise.list").
		Preload("Branches").
		Preload("Branches.Products").
		Order("created_at ASC, id ASC").
		Cache(r.cache, cache.Key(PrefixFranchises, "all"), r.ttl, &recs)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Franchise, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.ToDomain())
	}
	return out, nil
}

func (r *FranchiseRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "franchise.exists", &models.Franchise{}, "id = ?", id.String())
}

func (r *FranchiseRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, "franchise.exists_name", &models.Franchise{}, "name = ?", name)
}

// DeleteByID removes the franchise with its branches and products.
func (r *FranchiseRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	var affected int64
	err := orm.Transaction(ctx, r.db, "franchise.delete", func(tx *gorm.DB) error {
		branchIDs := tx.Model(&models.Branch{}).Select("id").Where("franchise_id = ?", id.String())
		if err := tx.Where("branch_id IN (?)", branchIDs).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("franchise_id = ?", id.String()).Delete(&models.Branch{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id.String()).Delete(&models.Franchise{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError(domain.EntityFranchise, id)
	}
	r.evict(ctx, PrefixFranchises, PrefixBranches, PrefixProducts)
	return nil
}
