package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apilab/rest-vs-graphql/internal/core/domain"
)

func TestSeedData(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 4)

	products, err := store.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 8)
	assert.Equal(t, "Laptop Pro 15", products[0].Name)
	assert.Equal(t, 1299.99, products[0].Price)
	assert.Equal(t, 1, products[0].CategoryID)

	reviews, err := store.ListReviewsForProduct(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	inventory, err := store.GetInventoryForProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 15, inventory.Quantity)
}

func TestCreateProduct_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	created, err := store.CreateProduct(ctx, domain.NewProduct{
		Name:        "Webcam",
		Description: "1080p webcam",
		Price:       59.99,
		CategoryID:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)
	assert.Equal(t, "", created.ImageURL)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := store.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	// Counter keeps climbing.
	second, err := store.CreateProduct(ctx, domain.NewProduct{Name: "Stand", Price: 12.5, CategoryID: 1})
	require.NoError(t, err)
	assert.Equal(t, 10, second.ID)
}

func TestCreateProduct_NoReferentialCheck(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	created, err := store.CreateProduct(ctx, domain.NewProduct{
		Name:       "X",
		Price:      10.0,
		CategoryID: 999,
	})
	require.NoError(t, err)
	assert.Equal(t, 999, created.CategoryID)

	_, err = store.GetCategory(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListProducts_FilterAndLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	categoryID := 1
	limit := 3

	filtered, err := store.ListProducts(ctx, domain.ProductFilter{CategoryID: &categoryID})
	require.NoError(t, err)
	ids := make([]int, 0, len(filtered))
	for _, p := range filtered {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, 2, 4, 7}, ids, "insertion order preserved")

	limited, err := store.ListProducts(ctx, domain.ProductFilter{Limit: &limit})
	require.NoError(t, err)
	require.Len(t, limited, 3)
	assert.Equal(t, 1, limited[0].ID)

	both, err := store.ListProducts(ctx, domain.ProductFilter{CategoryID: &categoryID, Limit: &limit})
	require.NoError(t, err)
	assert.Len(t, both, 3)

	big := 100
	all, err := store.ListProducts(ctx, domain.ProductFilter{Limit: &big})
	require.NoError(t, err)
	assert.Len(t, all, 8)
}

func TestListProducts_EdgeLimits(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	zero := 0
	empty, err := store.ListProducts(ctx, domain.ProductFilter{Limit: &zero})
	require.NoError(t, err)
	assert.Empty(t, empty)

	negative := -1
	all, err := store.ListProducts(ctx, domain.ProductFilter{Limit: &negative})
	require.NoError(t, err)
	assert.Len(t, all, 8, "negative limit does not truncate")
}

func TestUpdateProduct_PartialMerge(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	price := 999.99

	updated, err := store.UpdateProduct(ctx, 1, domain.ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 999.99, updated.Price)
	assert.Equal(t, "Laptop Pro 15", updated.Name, "omitted fields untouched")
	assert.Equal(t, 1, updated.CategoryID)

	_, err = store.UpdateProduct(ctx, 404, domain.ProductPatch{Price: &price})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProduct_Cascades(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.DeleteProduct(ctx, 1))

	_, err := store.GetProduct(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	reviews, err := store.ListReviewsForProduct(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	_, err = store.GetInventoryForProduct(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Ids are never reused after deletes.
	created, err := store.CreateProduct(ctx, domain.NewProduct{Name: "New", Price: 1, CategoryID: 1})
	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)
}

func TestDeleteProduct_Missing(t *testing.T) {
	store := NewMemoryStore()
	err := store.DeleteProduct(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateReview_OrphanAllowed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	review, err := store.CreateReview(ctx, domain.NewReview{
		ProductID: 12345,
		Rating:    5,
		Comment:   "ghost product",
		Author:    "nobody",
	})
	require.NoError(t, err)
	assert.Equal(t, 9, review.ID)

	reviews, err := store.ListReviewsForProduct(ctx, 12345)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "ghost product", reviews[0].Comment)

	// Separate counter from product ids.
	second, err := store.CreateReview(ctx, domain.NewReview{ProductID: 1, Rating: 3})
	require.NoError(t, err)
	assert.Equal(t, 10, second.ID)
}

func TestListReviews_UnknownProduct(t *testing.T) {
	store := NewMemoryStore()
	reviews, err := store.ListReviewsForProduct(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestUpsertInventory_CreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// No row for this product id yet; warehouse falls back to the default.
	first, err := store.UpsertInventory(ctx, domain.InventoryUpsert{ProductID: 77, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, DefaultWarehouse, first.Warehouse)
	assert.Equal(t, 5, first.Quantity)

	time.Sleep(5 * time.Millisecond)

	warehouse := "Warehouse B"
	second, err := store.UpsertInventory(ctx, domain.InventoryUpsert{ProductID: 77, Quantity: 9, Warehouse: &warehouse})
	require.NoError(t, err)
	assert.Equal(t, 9, second.Quantity)
	assert.Equal(t, "Warehouse B", second.Warehouse)
	assert.True(t, second.LastUpdated.After(first.LastUpdated), "timestamp refreshed on every upsert")

	// Still a single row keyed by the product id.
	got, err := store.GetInventoryForProduct(ctx, 77)
	require.NoError(t, err)
	assert.Equal(t, *second, *got)

	// Nil warehouse keeps the existing label on update.
	third, err := store.UpsertInventory(ctx, domain.InventoryUpsert{ProductID: 77, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "Warehouse B", third.Warehouse)
	assert.Equal(t, 2, third.Quantity)
}

func TestConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	workers := 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.CreateProduct(ctx, domain.NewProduct{Name: "bulk", Price: 1, CategoryID: 1})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			_, err = store.CreateReview(ctx, domain.NewReview{ProductID: 1, Rating: 4})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	products, err := store.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 8+workers)

	seen := make(map[int]bool)
	for _, p := range products {
		if seen[p.ID] {
			t.Fatalf("duplicate product id %d", p.ID)
		}
		seen[p.ID] = true
	}

	reviews, err := store.ListReviewsForProduct(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, reviews, 2+workers)
}

func TestGetProduct_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	got, err := store.GetProduct(ctx, 1)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := store.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro 15", again.Name)
}
