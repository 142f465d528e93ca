package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository ports. Implementations must return an error matching
// ErrNotFound from FindByID when the id is unknown, ErrDuplicateName when a
// storage uniqueness constraint rejects a write and ErrConflict when the
// entity's Version no longer matches the stored one. Save returns the
// stored entity carrying its new Version.

type FranchiseRepository interface {
	Save(ctx context.Context, f *Franchise) (*Franchise, error)
	// FindByID returns the franchise with all of its branches and products.
	FindByID(ctx context.Context, id uuid.UUID) (*Franchise, error)
	// FindAll returns every franchise, hydrated like FindByID.
	FindAll(ctx context.Context) ([]*Franchise, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type BranchRepository interface {
	Save(ctx context.Context, b *Branch) (*Branch, error)
	// FindByID returns the branch with all of its products.
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	// FindByFranchiseID returns the franchise's branches, with products, in
	// insertion order.
	FindByFranchiseID(ctx context.Context, franchiseID uuid.UUID) ([]*Branch, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByNameAndFranchiseID(ctx context.Context, name string, franchiseID uuid.UUID) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type ProductRepository interface {
	Save(ctx context.Context, p *Product) (*Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByBranchID(ctx context.Context, branchID uuid.UUID) ([]*Product, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByNameAndBranchID(ctx context.Context, name string, branchID uuid.UUID) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
