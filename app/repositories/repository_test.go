package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/johssalinas/backend-accenture/app/domain"
	"github.com/johssalinas/backend-accenture/app/repositories"
	_ "github.com/johssalinas/backend-accenture/database/migrations"
	"github.com/johssalinas/backend-accenture/pkg/cache"
	"github.com/johssalinas/backend-accenture/pkg/database"
	"github.com/johssalinas/backend-accenture/pkg/migration"
)

type repos struct {
	db         *gorm.DB
	cache      *cache.MemoryStore
	franchises *repositories.FranchiseRepository
	branches   *repositories.BranchRepository
	products   *repositories.ProductRepository
}

func setup(t *testing.T) repos {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	_, err = migration.New(db).Run()
	require.NoError(t, err)

	c := cache.NewMemoryStore()
	return repos{
		db:         db,
		cache:      c,
		franchises: repositories.NewFranchiseRepository(db, c, time.Minute),
		branches:   repositories.NewBranchRepository(db, c, time.Minute),
		products:   repositories.NewProductRepository(db, c, time.Minute),
	}
}

func intPtr(v int) *int { return &v }

func (r repos) franchise(t *testing.T, name string) *domain.Franchise {
	t.Helper()
	f, err := domain.NewFranchise(name)
	require.NoError(t, err)
	saved, err := r.franchises.Save(context.Background(), f)
	require.NoError(t, err)
	return saved
}

func (r repos) branch(t *testing.T, f *domain.Franchise, name string) *domain.Branch {
	t.Helper()
	b, err := domain.NewBranch(name)
	require.NoError(t, err)
	require.NoError(t, f.AddBranch(b))
	saved, err := r.branches.Save(context.Background(), b)
	require.NoError(t, err)
	return saved
}

func (r repos) product(t *testing.T, b *domain.Branch, name string, stock int) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(name, intPtr(stock))
	require.NoError(t, err)
	require.NoError(t, b.AddProduct(p))
	saved, err := r.products.Save(context.Background(), p)
	require.NoError(t, err)
	return saved
}

func TestFranchiseRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	r := setup(t)

	f := r.franchise(t, "Acme")
	assert.EqualValues(t, 1, f.Version())

	got, err := r.franchises.FindByID(ctx, f.ID())
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name())
	assert.Empty(t, got.Branches())

	ok, err := r.franchises.ExistsByName(ctx, "Acme")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.franchises.ExistsByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFranchiseRepository_FindByIDUnknown(t *testing.T) {
	r := setup(t)
	_, err := r.franchises.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFranchiseRepository_UniqueName(t *testing.T) {
	r := setup(t)
	r.franchise(t, "Acme")

	f, err := domain.NewFranchise("Acme")
	require.NoError(t, err)
	_, err = r.franchises.Save(context.Background(), f)
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestFranchiseRepository_OptimisticLock(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	f := r.franchise(t, "Acme")

	a, err := r.franchises.FindByID(ctx, f.ID())
	require.NoError(t, err)
	b, err := r.franchises.FindByID(ctx, f.ID())
	require.NoError(t, err)

	require.NoError(t, a.UpdateName("First"))
	saved, err := r.franchises.Save(ctx, a)
	require.NoError(t, err)
	assert.EqualValues(t, 2, saved.Version())

	require.NoError(t, b.UpdateName("Second"))
	_, err = r.franchises.Save(ctx, b)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := r.franchises.FindByID(ctx, f.ID())
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name())
}

func TestFranchiseRepository_HydratesInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	f := r.franchise(t, "Acme")
	north := r.branch(t, f, "North")
	south := r.branch(t, f, "South")
	r.product(t, north, "Latte", 5)
	r.product(t, north, "Mocha", 9)
	r.product(t, south, "Tea", 2)

	got, err := r.franchises.FindByID(ctx, f.ID())
	require.NoError(t, err)

	branches := got.Branches()
	require.Len(t, branches, 2)
	assert.Equal(t, "North", branches[0].Name())
	assert.Equal(t, "South", branches[1].Name())
	require.Len(t, branches[0].Products(), 2)
	assert.Equal(t, "Latte", branches[0].Products()[0].Name())

	top := got.TopStockProducts()
	require.Len(t, top, 2)
	assert.Equal(t, "Mocha", top[0].ProductName)
	assert.Equal(t, "Tea", top[1].ProductName)
}

func TestFranchiseRepository_FindAll(t *testing.T) {
	r := setup(t)
	r.franchise(t, "One")
	r.franchise(t, "Two")

	all, err := r.franchises.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "One", all[0].Name())
}

func TestFranchiseRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	f := r.franchise(t, "Acme")
	b := r.branch(t, f, "North")
	p := r.product(t, b, "Latte", 5)

	require.NoError(t, r.franchises.DeleteByID(ctx, f.ID()))

	ok, err := r.branches.ExistsByID(ctx, b.ID())
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = r.products.ExistsByID(ctx, p.ID())
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, r.franchises.DeleteByID(ctx, f.ID()), domain.ErrNotFound)
}

func TestBranchRepository_UniquePerFranchise(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	f1 := r.franchise(t, "One")
	f2 := r.franchise(t, "Two")
	r.branch(t, f1, "Centro")

	// A second aggregate instance bypasses the in-memory check; the index
	// still rejects it.
	dup, err := domain.NewBranch("Centro")
	require.NoError(t, err)
	require.NoError(t, domain.RestoreFranchise(f1.ID(), f1.Name(), f1.Version()).AddBranch(dup))
	_, err = r.branches.Save(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	r.branch(t, f2, "Centro")

	ok, err := r.branches.ExistsByNameAndFranchiseID(ctx, "Centro", f1.ID())
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.branches.ExistsByNameAndFranchiseID(ctx, "Norte", f1.ID())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBranchRepository_FindByFranchiseIDAndDelete(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	f := r.franchise(t, "Acme")
	b1 := r.branch(t, f, "North")
	r.branch(t, f, "South")
	p := r.product(t, b1, "Latte", 1)

	list, err := r.branches.FindByFranchiseID(ctx, f.ID())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Len(t, list[0].Products(), 1)

	require.NoError(t, r.branches.DeleteByID(ctx, b1.ID()))

	list, err = r.branches.FindByFranchiseID(ctx, f.ID())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "South", list[0].Name())

	_, err = r.products.FindByID(ctx, p.ID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.branches.DeleteByID(ctx, b1.ID()), domain.ErrNotFound)
}

func TestProductRepository_UpdateAndConflict(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	f := r.franchise(t, "Acme")
	b := r.branch(t, f, "North")
	p := r.product(t, b, "Latte", 5)

	require.NoError(t, p.UpdateStock(intPtr(0)))
	saved, err := r.products.Save(ctx, p)
	require.NoError(t, err)
	assert.EqualValues(t, 2, saved.Version())

	got, err := r.products.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock())

	// p still carries version 1.
	require.NoError(t, p.UpdateStock(intPtr(7)))
	_, err = r.products.Save(ctx, p)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProductRepository_FindByBranchID(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	f := r.franchise(t, "Acme")
	b := r.branch(t, f, "North")
	r.product(t, b, "A", 1)
	r.product(t, b, "B", 2)

	list, err := r.products.FindByBranchID(ctx, b.ID())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name())
	assert.Equal(t, b.ID(), list[0].BranchID())

	ok, err := r.products.ExistsByNameAndBranchID(ctx, "B", b.ID())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWritesInvalidateCachedReads(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	f := r.franchise(t, "Acme")
	b := r.branch(t, f, "North")

	// Warm every cache entry that embeds the branch.
	_, err := r.franchises.FindByID(ctx, f.ID())
	require.NoError(t, err)
	_, err = r.franchises.FindAll(ctx)
	require.NoError(t, err)
	_, err = r.branches.FindByID(ctx, b.ID())
	require.NoError(t, err)
	require.Positive(t, r.cache.Len())

	p := r.product(t, b, "Latte", 3)

	got, err := r.franchises.FindByID(ctx, f.ID())
	require.NoError(t, err)
	gb, ok := got.FindBranchByID(b.ID())
	require.True(t, ok)
	_, ok = gb.FindProductByID(p.ID())
	assert.True(t, ok, "franchise read after product write must not be stale")

	gotBranch, err := r.branches.FindByID(ctx, b.ID())
	require.NoError(t, err)
	assert.Len(t, gotBranch.Products(), 1)

	require.NoError(t, p.UpdateStock(intPtr(42)))
	_, err = r.products.Save(ctx, p)
	require.NoError(t, err)

	gotP, err := r.products.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 42, gotP.Stock())
}

func TestReadsAreServedFromCache(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	f := r.franchise(t, "Acme")

	_, err := r.franchises.FindByID(ctx, f.ID())
	require.NoError(t, err)

	// Bypass the repository: the cached entry is still served.
	require.NoError(t, r.db.Exec("UPDATE franchises SET name = ? WHERE id = ?", "Raw", f.ID().String()).Error)

	got, err := r.franchises.FindByID(ctx, f.ID())
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name())
}

// interleavedStore runs beforeSet once, between a read-through load and the
// cache fill that follows it.
type interleavedStore struct {
	*cache.MemoryStore
	beforeSet func()
}

func (s *interleavedStore) Set(ctx context.Context, key string, value any, ttl time.Duration, gen int64) (bool, error) {
	if fn := s.beforeSet; fn != nil {
		s.beforeSet = nil
		fn()
	}
	return s.MemoryStore.Set(ctx, key, value, ttl, gen)
}

func TestWriteDuringReadThroughIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	f := r.franchise(t, "Acme")
	b := r.branch(t, f, "North")
	p := r.product(t, b, "Latte", 1)

	store := &interleavedStore{MemoryStore: cache.NewMemoryStore()}
	products := repositories.NewProductRepository(r.db, store, time.Minute)
	store.beforeSet = func() {
		require.NoError(t, p.UpdateStock(intPtr(99)))
		_, err := products.Save(ctx, p)
		require.NoError(t, err)
	}

	stale, err := products.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, stale.Stock())

	got, err := products.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 99, got.Stock())
	assert.EqualValues(t, 2, got.Version())

	require.NoError(t, got.UpdateStock(intPtr(3)))
	_, err = products.Save(ctx, got)
	assert.NoError(t, err)
}

func TestConflictEvictsStaleEntries(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	f := r.franchise(t, "Acme")
	b := r.branch(t, f, "North")
	p := r.product(t, b, "Latte", 1)

	_, err := r.products.FindByID(ctx, p.ID())
	require.NoError(t, err)

	// A writer that never touched the cache.
	require.NoError(t, r.db.Exec("UPDATE products SET stock = ?, version = version + 1 WHERE id = ?", 5, p.ID().String()).Error)

	cached, err := r.products.FindByID(ctx, p.ID())
	require.NoError(t, err)
	require.EqualValues(t, 1, cached.Version())

	require.NoError(t, cached.UpdateStock(intPtr(8)))
	_, err = r.products.Save(ctx, cached)
	require.ErrorIs(t, err, domain.ErrConflict)

	fresh, err := r.products.FindByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, 5, fresh.Stock())
	assert.EqualValues(t, 2, fresh.Version())

	require.NoError(t, fresh.UpdateStock(intPtr(8)))
	_, err = r.products.Save(ctx, fresh)
	assert.NoError(t, err)
}

func TestProductRepository_SameNameInDifferentBranches(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	f := r.franchise(t, "Acme")
	north := r.branch(t, f, "North")
	south := r.branch(t, f, "South")

	r.product(t, north, "Latte", 1)
	r.product(t, south, "Latte", 2)

	for _, b := range []*domain.Branch{north, south} {
		ok, err := r.products.ExistsByNameAndBranchID(ctx, "Latte", b.ID())
		require.NoError(t, err)
		assert.True(t, ok)
	}

	dup, err := domain.NewProduct("Latte", intPtr(3))
	require.NoError(t, err)
	require.NoError(t, domain.RestoreBranch(north.ID(), north.Name(), f.ID(), north.Version()).AddProduct(dup))
	_, err = r.products.Save(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestInsertionOrderSurvivesTimestampTies(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	f := r.franchise(t, "Acme")
	b := r.branch(t, f, "North")

	names := []string{"E", "D", "C", "B", "A", "F", "G", "H"}
	for i, n := range names {
		r.product(t, b, n, i)
	}

	// Coarse clocks give rows created in the same tick equal timestamps.
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.db.Exec("UPDATE products SET created_at = ?", tick).Error)
	require.NoError(t, r.cache.Flush(ctx, repositories.PrefixProducts))
	require.NoError(t, r.cache.Flush(ctx, repositories.PrefixFranchises))

	list, err := r.products.FindByBranchID(ctx, b.ID())
	require.NoError(t, err)
	got := make([]string, 0, len(list))
	for _, p := range list {
		got = append(got, p.Name())
	}
	assert.Equal(t, names, got)

	hydrated, err := r.franchises.FindByID(ctx, f.ID())
	require.NoError(t, err)
	branch, ok := hydrated.FindBranchByID(b.ID())
	require.True(t, ok)
	got = got[:0]
	for _, p := range branch.Products() {
		got = append(got, p.Name())
	}
	assert.Equal(t, names, got)
}
