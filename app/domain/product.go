package domain

import "github.com/google/uuid"

// Product is the leaf entity: a named stock count owned by one branch.
type Product struct {
	id       uuid.UUID
	name     string
	stock    int
	branchID uuid.UUID
	version  int64
}

// NewProduct validates name and stock and returns an unattached product with
// a fresh identity. The branch reference is set by Branch.AddProduct.
func NewProduct(name string, stock *int) (*Product, error) {
	n, err := normalizeName(EntityProduct, name)
	if err != nil {
		return nil, err
	}
	s, err := checkStock(stock)
	if err != nil {
		return nil, err
	}
	return &Product{id: newID(), name: n, stock: s}, nil
}

// RestoreProduct rebuilds a product from storage without re-validating it.
func RestoreProduct(id uuid.UUID, name string, stock int, branchID uuid.UUID, version int64) *Product {
	return &Product{id: id, name: name, stock: stock, branchID: branchID, version: version}
}

func (p *Product) ID() uuid.UUID       { return p.id }
func (p *Product) Name() string        { return p.name }
func (p *Product) Stock() int          { return p.stock }
func (p *Product) BranchID() uuid.UUID { return p.branchID }

// Version is the storage concurrency token. The domain never reads it.
func (p *Product) Version() int64 { return p.version }

// UpdateStock replaces the stock. Nil or negative values are rejected; zero
// is allowed.
func (p *Product) UpdateStock(v *int) error {
	s, err := checkStock(v)
	if err != nil {
		return err
	}
	p.stock = s
	return nil
}

// UpdateName stores the trimmed name.
func (p *Product) UpdateName(v string) error {
	n, err := normalizeName(EntityProduct, v)
	if err != nil {
		return err
	}
	p.name = n
	return nil
}

func checkStock(v *int) (int, error) {
	if v == nil || *v < 0 {
		return 0, NewValidationError(EntityProduct, ReasonNotPositive, "Stock must be a positive number")
	}
	return *v, nil
}
