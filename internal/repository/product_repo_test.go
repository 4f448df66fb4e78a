package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"go-galon-gas/internal/model"
	"go-galon-gas/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductRepo() (ProductRepository, *kvstore.MemoryStore) {
	store := kvstore.NewMemoryStore()
	return NewProductRepo(store), store
}

func galonProduct() *model.Product {
	return &model.Product{
		Name:        "Galon 19L",
		Description: "Air mineral 19 liter",
		Price:       21000,
		Image:       "https://example.com/galon.jpg",
		Category:    model.CategoryGalon,
		InStock:     true,
	}
}

func TestProductCreateAssignsIDAndTimestamps(t *testing.T) {
	repo, _ := newProductRepo()
	ctx := context.Background()

	p := galonProduct()
	require.NoError(t, repo.Create(ctx, p))

	assert.True(t, strings.HasPrefix(p.ID, "product:"))
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Price, got.Price)
	assert.Equal(t, p.Category, got.Category)
}

func TestProductFindByIDAbsentIsNilNotError(t *testing.T) {
	repo, _ := newProductRepo()

	got, err := repo.FindByID(context.Background(), "product:does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductFindAllSortedByCreatedAtDesc(t *testing.T) {
	repo, _ := newProductRepo()
	ctx := context.Background()

	first := galonProduct()
	require.NoError(t, repo.Create(ctx, first))
	time.Sleep(2 * time.Millisecond)
	second := galonProduct()
	second.Name = "Galon Vit"
	require.NoError(t, repo.Create(ctx, second))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Galon Vit", all[0].Name)
	assert.Equal(t, "Galon 19L", all[1].Name)
}

func TestProductFindAllEmptyStore(t *testing.T) {
	repo, _ := newProductRepo()

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductUpdateMergesPartialFields(t *testing.T) {
	repo, _ := newProductRepo()
	ctx := context.Background()

	p := galonProduct()
	require.NoError(t, repo.Create(ctx, p))
	created := p.CreatedAt
	time.Sleep(2 * time.Millisecond)

	newPrice := int64(25000)
	updated, err := repo.Update(ctx, p.ID, &model.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)
	require.NotNil(t, updated)

	// Only price changed; createdAt immutable, updatedAt re-stamped
	assert.Equal(t, int64(25000), updated.Price)
	assert.Equal(t, "Galon 19L", updated.Name)
	assert.Equal(t, created, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created))
}

func TestProductUpdateAbsentNeverUpserts(t *testing.T) {
	repo, store := newProductRepo()

	name := "Ghost"
	updated, err := repo.Update(context.Background(), "product:ghost", &model.ProductUpdate{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.Equal(t, 0, store.Len())
}

func TestProductUpdateStock(t *testing.T) {
	repo, _ := newProductRepo()
	ctx := context.Background()

	p := galonProduct()
	require.NoError(t, repo.Create(ctx, p))

	updated, err := repo.UpdateStock(ctx, p.ID, false)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.False(t, updated.InStock)
	assert.Equal(t, int64(21000), updated.Price)
}

func TestProductDeleteIsIdempotent(t *testing.T) {
	repo, _ := newProductRepo()
	ctx := context.Background()

	p := galonProduct()
	require.NoError(t, repo.Create(ctx, p))

	assert.True(t, repo.Delete(ctx, p.ID))
	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is still a success
	assert.True(t, repo.Delete(ctx, p.ID))
}

func TestProductLifecycleScenario(t *testing.T) {
	repo, _ := newProductRepo()
	ctx := context.Background()

	p := galonProduct()
	require.NoError(t, repo.Create(ctx, p))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].InStock)

	_, err = repo.UpdateStock(ctx, p.ID, false)
	require.NoError(t, err)

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.False(t, all[0].InStock)
	assert.Equal(t, int64(21000), all[0].Price)

	assert.True(t, repo.Delete(ctx, p.ID))
	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductFilters(t *testing.T) {
	repo, _ := newProductRepo()
	ctx := context.Background()

	a := galonProduct()
	a.Popular = true
	require.NoError(t, repo.Create(ctx, a))

	b := galonProduct()
	b.Name = "Tabung Gas 3kg"
	b.Category = model.CategoryGas
	b.InStock = false
	require.NoError(t, repo.Create(ctx, b))

	galon, err := repo.FindByCategory(ctx, model.CategoryGalon)
	require.NoError(t, err)
	require.Len(t, galon, 1)
	assert.Equal(t, "Galon 19L", galon[0].Name)

	outOfStock, err := repo.FindByStock(ctx, false)
	require.NoError(t, err)
	require.Len(t, outOfStock, 1)
	assert.Equal(t, "Tabung Gas 3kg", outOfStock[0].Name)

	popular, err := repo.FindPopular(ctx)
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, "Galon 19L", popular[0].Name)
}
