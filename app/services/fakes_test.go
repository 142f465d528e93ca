package services_test

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/johssalinas/backend-accenture/app/domain"
)

type row struct {
	id      uuid.UUID
	parent  uuid.UUID
	name    string
	stock   int
	version int64
	seq     int
}

// memStore is an in-memory stand-in for the gorm repositories with the
// same uniqueness and version rules.
type memStore struct {
	mu         sync.Mutex
	seq        int
	franchises map[uuid.UUID]row
	branches   map[uuid.UUID]row
	products   map[uuid.UUID]row
	err        error // returned by every call when set
	saves      int
}

func newMemStore() *memStore {
	return &memStore{
		franchises: map[uuid.UUID]row{},
		branches:   map[uuid.UUID]row{},
		products:   map[uuid.UUID]row{},
	}
}

func (m *memStore) repos() (domain.FranchiseRepository, domain.BranchRepository, domain.ProductRepository) {
	return franchiseRepo{m}, branchRepo{m}, productRepo{m}
}

func sorted(rows map[uuid.UUID]row, keep func(row) bool) []row {
	var out []row
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b row) int { return a.seq - b.seq })
	return out
}

func (m *memStore) put(table map[uuid.UUID]row, entity, scope string, r row) (int64, error) {
	m.saves++
	for _, other := range table {
		if other.id != r.id && other.parent == r.parent && other.name == r.name {
			return 0, domain.NewDuplicateNameError(entity, r.name, scope)
		}
	}
	cur, exists := table[r.id]
	if r.version == 0 {
		m.seq++
		r.seq = m.seq
		r.version = 1
		table[r.id] = r
		return 1, nil
	}
	if !exists || cur.version != r.version {
		return 0, domain.NewConflictError(entity, r.id)
	}
	r.seq = cur.seq
	r.version++
	table[r.id] = r
	return r.version, nil
}

func (m *memStore) product(r row) *domain.Product {
	return domain.RestoreProduct(r.id, r.name, r.stock, r.parent, r.version)
}

func (m *memStore) branch(r row) *domain.Branch {
	var ps []*domain.Product
	for _, p := range sorted(m.products, func(p row) bool { return p.parent == r.id }) {
		ps = append(ps, m.product(p))
	}
	return domain.RestoreBranch(r.id, r.name, r.parent, r.version, ps...)
}

func (m *memStore) franchise(r row) *domain.Franchise {
	var bs []*domain.Branch
	for _, b := range sorted(m.branches, func(b row) bool { return b.parent == r.id }) {
		bs = append(bs, m.branch(b))
	}
	return domain.RestoreFranchise(r.id, r.name, r.version, bs...)
}

type franchiseRepo struct{ m *memStore }

func (r franchiseRepo) Save(_ context.Context, f *domain.Franchise) (*domain.Franchise, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return nil, r.m.err
	}
	v, err := r.m.put(r.m.franchises, domain.EntityFranchise, "", row{id: f.ID(), name: f.Name(), version: f.Version()})
	if err != nil {
		return nil, err
	}
	return domain.RestoreFranchise(f.ID(), f.Name(), v, f.Branches()...), nil
}

func (r franchiseRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Franchise, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return nil, r.m.err
	}
	rec, ok := r.m.franchises[id]
	if !ok {
		return nil, domain.NewNotFoundError(domain.EntityFranchise, id)
	}
	return r.m.franchise(rec), nil
}

func (r franchiseRepo) FindAll(_ context.Context) ([]*domain.Franchise, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return nil, r.m.err
	}
	var out []*domain.Franchise
	for _, rec := range sorted(r.m.franchises, func(row) bool { return true }) {
		out = append(out, r.m.franchise(rec))
	}
	return out, nil
}

func (r franchiseRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	_, ok := r.m.franchises[id]
	return ok, r.m.err
}

func (r franchiseRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return len(sorted(r.m.franchises, func(f row) bool { return f.name == name })) > 0, r.m.err
}

func (r franchiseRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.franchises[id]; !ok {
		return domain.NewNotFoundError(domain.EntityFranchise, id)
	}
	for bid, b := range r.m.branches {
		if b.parent == id {
			r.m.deleteBranch(bid)
		}
	}
	delete(r.m.franchises, id)
	return nil
}

func (m *memStore) deleteBranch(id uuid.UUID) {
	for pid, p := range m.products {
		if p.parent == id {
			delete(m.products, pid)
		}
	}
	delete(m.branches, id)
}

type branchRepo struct{ m *memStore }

func (r branchRepo) Save(_ context.Context, b *domain.Branch) (*domain.Branch, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return nil, r.m.err
	}
	v, err := r.m.put(r.m.branches, domain.EntityBranch, domain.EntityFranchise,
		row{id: b.ID(), parent: b.FranchiseID(), name: b.Name(), version: b.Version()})
	if err != nil {
		return nil, err
	}
	return domain.RestoreBranch(b.ID(), b.Name(), b.FranchiseID(), v, b.Products()...), nil
}

func (r branchRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Branch, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return nil, r.m.err
	}
	rec, ok := r.m.branches[id]
	if !ok {
		return nil, domain.NewNotFoundError(domain.EntityBranch, id)
	}
	return r.m.branch(rec), nil
}

func (r branchRepo) FindByFranchiseID(_ context.Context, franchiseID uuid.UUID) ([]*domain.Branch, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*domain.Branch
	for _, rec := range sorted(r.m.branches, func(b row) bool { return b.parent == franchiseID }) {
		out = append(out, r.m.branch(rec))
	}
	return out, r.m.err
}

func (r branchRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	_, ok := r.m.branches[id]
	return ok, r.m.err
}

func (r branchRepo) ExistsByNameAndFranchiseID(_ context.Context, name string, franchiseID uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	match := sorted(r.m.branches, func(b row) bool { return b.name == name && b.parent == franchiseID })
	return len(match) > 0, r.m.err
}

func (r branchRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.branches[id]; !ok {
		return domain.NewNotFoundError(domain.EntityBranch, id)
	}
	r.m.deleteBranch(id)
	return nil
}

type productRepo struct{ m *memStore }

func (r productRepo) Save(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return nil, r.m.err
	}
	v, err := r.m.put(r.m.products, domain.EntityProduct, domain.EntityBranch,
		row{id: p.ID(), parent: p.BranchID(), name: p.Name(), stock: p.Stock(), version: p.Version()})
	if err != nil {
		return nil, err
	}
	return domain.RestoreProduct(p.ID(), p.Name(), p.Stock(), p.BranchID(), v), nil
}

func (r productRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.err != nil {
		return nil, r.m.err
	}
	rec, ok := r.m.products[id]
	if !ok {
		return nil, domain.NewNotFoundError(domain.EntityProduct, id)
	}
	return r.m.product(rec), nil
}

func (r productRepo) FindByBranchID(_ context.Context, branchID uuid.UUID) ([]*domain.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*domain.Product
	for _, rec := range sorted(r.m.products, func(p row) bool { return p.parent == branchID }) {
		out = append(out, r.m.product(rec))
	}
	return out, r.m.err
}

func (r productRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	_, ok := r.m.products[id]
	return ok, r.m.err
}

func (r productRepo) ExistsByNameAndBranchID(_ context.Context, name string, branchID uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	match := sorted(r.m.products, func(p row) bool { return p.name == name && p.parent == branchID })
	return len(match) > 0, r.m.err
}

func (r productRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.products[id]; !ok {
		return domain.NewNotFoundError(domain.EntityProduct, id)
	}
	delete(r.m.products, id)
	return nil
}

var errStorage = errors.New("storage unavailable")
