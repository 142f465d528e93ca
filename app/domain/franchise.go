package domain

import (
	"iter"
	"slices"

	"github.com/google/uuid"
)

// Franchise is the aggregate root. It owns an ordered set of branches whose
// names are unique within it.
//
// A loaded Franchise is meant to be mutated by one operation at a time and
// then discarded; it holds no locks. Read-only methods are safe to call
// from several goroutines as long as nobody mutates.
type Franchise struct {
	id      uuid.UUID
	name    string
	version int64

	branches []*Branch
	index    map[uuid.UUID]int
}

// NewFranchise validates name and returns an empty franchise with a fresh
// identity.
func NewFranchise(name string) (*Franchise, error) {
	n, err := normalizeName(EntityFranchise, name)
	if err != nil {
		return nil, err
	}
	return &Franchise{id: newID(), name: n, index: make(map[uuid.UUID]int)}, nil
}

// RestoreFranchise rebuilds a franchise and its branches from storage.
func RestoreFranchise(id uuid.UUID, name string, version int64, branches ...*Branch) *Franchise {
	f := &Franchise{
		id:       id,
		name:     name,
		version:  version,
		branches: make([]*Branch, 0, len(branches)),
		index:    make(map[uuid.UUID]int, len(branches)),
	}
	for _, b := range branches {
		if b == nil {
			continue
		}
		b.franchiseID = id
		f.index[b.id] = len(f.branches)
		f.branches = append(f.branches, b)
	}
	return f
}

func (f *Franchise) ID() uuid.UUID { return f.id }
func (f *Franchise) Name() string  { return f.name }

// Version is the storage concurrency token. The domain never reads it.
func (f *Franchise) Version() int64 { return f.version }

// Branches returns the branches in insertion order.
func (f *Franchise) Branches() []*Branch {
	return slices.Clone(f.branches)
}

// AddBranch attaches b, setting its franchise reference. It fails when b is
// nil or a branch with the same name is already present.
func (f *Franchise) AddBranch(b *Branch) error {
	if b == nil {
		return NewValidationError(EntityBranch, ReasonNullArgument, "Branch cannot be nil")
	}
	if f.hasBranchNamed(b.name, uuid.Nil) {
		return NewDuplicateNameError(EntityBranch, b.name, EntityFranchise)
	}

	b.franchiseID = f.id
	f.index[b.id] = len(f.branches)
	f.branches = append(f.branches, b)
	return nil
}

// RemoveBranch detaches a branch. Unknown ids are ignored.
func (f *Franchise) RemoveBranch(id uuid.UUID) {
	i, ok := f.index[id]
	if !ok {
		return
	}
	f.branches = slices.Delete(f.branches, i, i+1)
	clear(f.index)
	for j, b := range f.branches {
		f.index[b.id] = j
	}
}

// RenameBranch renames one of this franchise's branches, keeping branch
// names unique. It reports false when no branch has that id.
func (f *Franchise) RenameBranch(id uuid.UUID, name string) (bool, error) {
	b, ok := f.FindBranchByID(id)
	if !ok {
		return false, nil
	}
	n, err := normalizeName(EntityBranch, name)
	if err != nil {
		return true, err
	}
	if f.hasBranchNamed(n, id) {
		return true, NewDuplicateNameError(EntityBranch, n, EntityFranchise)
	}
	b.name = n
	return true, nil
}

// UpdateName stores the trimmed name.
func (f *Franchise) UpdateName(v string) error {
	n, err := normalizeName(EntityFranchise, v)
	if err != nil {
		return err
	}
	f.name = n
	return nil
}

// FindBranchByID looks a branch up by id.
func (f *Franchise) FindBranchByID(id uuid.UUID) (*Branch, bool) {
	i, ok := f.index[id]
	if !ok {
		return nil, false
	}
	return f.branches[i], true
}

// TopStockProductsByBranch lazily yields each branch's top product in
// branch order. Branches without products yield nothing.
func (f *Franchise) TopStockProductsByBranch() iter.Seq[ProductStock] {
	return func(yield func(ProductStock) bool) {
		for _, b := range f.branches {
			ps, ok := b.ProductWithMostStock()
			if !ok {
				continue
			}
			if !yield(ps) {
				return
			}
		}
	}
}

// TopStockProducts collects TopStockProductsByBranch. The result is never nil.
func (f *Franchise) TopStockProducts() []ProductStock {
	out := make([]ProductStock, 0, len(f.branches))
	for ps := range f.TopStockProductsByBranch() {
		out = append(out, ps)
	}
	return out
}

func (f *Franchise) hasBranchNamed(name string, except uuid.UUID) bool {
	return slices.ContainsFunc(f.branches, func(b *Branch) bool {
		return b.name == name && b.id != except
	})
}
