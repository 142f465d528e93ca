package domain

import (
	"slices"

	"github.com/google/uuid"
)

// Branch owns an ordered set of products whose names are unique within it.
// Products are held in insertion order with an id index alongside.
type Branch struct {
	id          uuid.UUID
	name        string
	franchiseID uuid.UUID
	version     int64

	products []*Product
	index    map[uuid.UUID]int
}

// NewBranch validates name and returns an empty, unattached branch with a
// fresh identity. The franchise reference is set by Franchise.AddBranch.
func NewBranch(name string) (*Branch, error) {
	n, err := normalizeName(EntityBranch, name)
	if err != nil {
		return nil, err
	}
	return &Branch{id: newID(), name: n, index: make(map[uuid.UUID]int)}, nil
}

// RestoreBranch rebuilds a branch and its products from storage. Products
// are attached in the given order with their back-reference set; no
// invariant is re-checked.
func RestoreBranch(id uuid.UUID, name string, franchiseID uuid.UUID, version int64, products ...*Product) *Branch {
	b := &Branch{
		id:          id,
		name:        name,
		franchiseID: franchiseID,
		version:     version,
		products:    make([]*Product, 0, len(products)),
		index:       make(map[uuid.UUID]int, len(products)),
	}
	for _, p := range products {
		if p == nil {
			continue
		}
		p.branchID = id
		b.index[p.id] = len(b.products)
		b.products = append(b.products, p)
	}
	return b
}

func (b *Branch) ID() uuid.UUID          { return b.id }
func (b *Branch) Name() string           { return b.name }
func (b *Branch) FranchiseID() uuid.UUID { return b.franchiseID }

// Version is the storage concurrency token. The domain never reads it.
func (b *Branch) Version() int64 { return b.version }

// Products returns the products in insertion order. The slice is a copy;
// the products are not.
func (b *Branch) Products() []*Product {
	return slices.Clone(b.products)
}

// AddProduct attaches p, setting its branch reference. It fails when p is
// nil or a product with the same name is already present.
func (b *Branch) AddProduct(p *Product) error {
	if p == nil {
		return NewValidationError(EntityProduct, ReasonNullArgument, "Product cannot be nil")
	}
	if b.hasProductNamed(p.name, uuid.Nil) {
		return NewDuplicateNameError(EntityProduct, p.name, EntityBranch)
	}

	p.branchID = b.id
	b.index[p.id] = len(b.products)
	b.products = append(b.products, p)
	return nil
}

// RemoveProduct detaches the product with the given id. Unknown ids are
// ignored.
func (b *Branch) RemoveProduct(id uuid.UUID) {
	i, ok := b.index[id]
	if !ok {
		return
	}
	b.products = slices.Delete(b.products, i, i+1)
	b.reindex()
}

// RenameProduct renames one of this branch's products, keeping product
// names unique. It reports false when no product has that id.
func (b *Branch) RenameProduct(id uuid.UUID, name string) (bool, error) {
	p, ok := b.FindProductByID(id)
	if !ok {
		return false, nil
	}
	n, err := normalizeName(EntityProduct, name)
	if err != nil {
		return true, err
	}
	if b.hasProductNamed(n, id) {
		return true, NewDuplicateNameError(EntityProduct, n, EntityBranch)
	}
	p.name = n
	return true, nil
}

// UpdateName stores the trimmed name.
func (b *Branch) UpdateName(v string) error {
	n, err := normalizeName(EntityBranch, v)
	if err != nil {
		return err
	}
	b.name = n
	return nil
}

// FindProductByID looks a product up by id.
func (b *Branch) FindProductByID(id uuid.UUID) (*Product, bool) {
	i, ok := b.index[id]
	if !ok {
		return nil, false
	}
	return b.products[i], true
}

// ProductWithMostStock returns the product with the highest stock. Ties go
// to the product added first. An empty branch yields false.
func (b *Branch) ProductWithMostStock() (ProductStock, bool) {
	var top *Product
	for _, p := range b.products {
		if top == nil || p.stock > top.stock {
			top = p
		}
	}
	if top == nil {
		return ProductStock{}, false
	}
	return ProductStock{
		ProductID:   top.id,
		ProductName: top.name,
		Stock:       top.stock,
		BranchID:    b.id,
		BranchName:  b.name,
	}, true
}

func (b *Branch) hasProductNamed(name string, except uuid.UUID) bool {
	return slices.ContainsFunc(b.products, func(p *Product) bool {
		return p.name == name && p.id != except
	})
}

func (b *Branch) reindex() {
	clear(b.index)
	for i, p := range b.products {
		b.index[p.id] = i
	}
}
