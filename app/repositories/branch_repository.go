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

type BranchRepository struct {
	store
}

var _ domain.BranchRepository = (*BranchRepository)(nil)

func NewBranchRepository(db *gorm.DB, c cache.Store, ttl time.Duration) *BranchRepository {
	return &BranchRepository{store{db: db, cache: c, ttl: ttl}}
}

// Save writes the branch row only. Cached franchises embed their branches,
// so both prefixes are flushed.
func (r *BranchRepository) Save(ctx context.Context, b *domain.Branch) (*domain.Branch, error) {
	rec := models.BranchFromDomain(b)
	rec.Version = 1
	next, err := r.save(ctx, write{
		op:      "branch.save",
		entity:  domain.EntityBranch,
		scope:   domain.EntityFranchise,
		id:      b.ID(),
		name:    b.Name(),
		version: b.Version(),
		record:  &rec,
		evicts:  []string{PrefixBranches, PrefixFranchises},
		changes: map[string]any{"name": b.Name()},
	})
	if err != nil {
		return nil, err
	}
	return domain.RestoreBranch(b.ID(), b.Name(), b.FranchiseID(), next, b.Products()...), nil
}

func (r *BranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Branch, error) {
	var rec models.Branch
	err := orm.New(ctx, r.db, "branch.find").
		Preload("Products").
		Where("id = ?", id.String()).
		CacheFirst(r.cache, cache.Key(PrefixBranches, id.String()), r.ttl, &rec)
	if orm.IsNotFound(err) {
		return nil, domain.NewNotFoundError(domain.EntityBranch, id)
	}
	if err != nil {
		return nil, err
	}
	return rec.ToDomain(), nil
}

func (r *BranchRepository) FindByFranchiseID(ctx context.Context, franchiseID uuid.UUID) ([]*domain.Branch, error) {
	var recs []models.Branch
	err := orm.New(ctx, r.db, "branch.list").
		Preload("Products").
		Where("franchise_id = ?", franchiseID.String()).
		Order("created_at ASC, id ASC").
		Cache(r.cache, cache.Key(PrefixBranches, "franchise", franchiseID.String()), r.ttl, &recs)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Branch, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.ToDomain())
	}
	return out, nil
}

func (r *BranchRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "branch.exists", &models.Branch{}, "id = ?", id.String())
}

func (r *BranchRepository) ExistsByNameAndFranchiseID(ctx context.Context, name string, franchiseID uuid.UUID) (bool, error) {
	return r.exists(ctx, "branch.exists_name", &models.Branch{},
		"name = ? AND franchise_id = ?", name, franchiseID.String())
}

// DeleteByID removes the branch and its products.
func (r *BranchRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	var affected int64
	err := orm.Transaction(ctx, r.db, "branch.delete", func(tx *gorm.DB) error {
		if err := tx.Where("branch_id = ?", id.String()).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id.String()).Delete(&models.Branch{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError(domain.EntityBranch, id)
	}
	r.evict(ctx, PrefixProducts, PrefixBranches, PrefixFranchises)
	return nil
}
