package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apilab/rest-vs-graphql/internal/adapter/storage"
	"github.com/apilab/rest-vs-graphql/internal/core/domain"
	"github.com/apilab/rest-vs-graphql/internal/core/service"
)

func newService() *service.CatalogService {
	return service.NewCatalogService(storage.NewMemoryStore())
}

func TestAverageRating(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	// Seed: product 1 has ratings 5 and 4.
	avg, err := svc.AverageRating(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 4.5, *avg)

	// Product 7 has no reviews: absent, never zero.
	avg, err = svc.AverageRating(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, avg)

	// Computed on read: a new review shifts the mean immediately.
	_, err = svc.CreateReview(ctx, domain.NewReview{ProductID: 7, Rating: 3, Comment: "ok", Author: "Zoe"})
	require.NoError(t, err)

	avg, err = svc.AverageRating(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.Equal(t, 3.0, *avg)
}

func TestSearchProducts(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	// Case-insensitive match on name.
	results, err := svc.SearchProducts(ctx, "LAPTOP")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Laptop Pro 15", results[0].Name)

	// Matches name or description.
	results, err = svc.SearchProducts(ctx, "usb")
	require.NoError(t, err)
	ids := make([]int, 0, len(results))
	for _, p := range results {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{2, 7}, ids)

	results, err = svc.SearchProducts(ctx, "no such thing")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDeleteProduct_ReviewsGone(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	require.NoError(t, svc.DeleteProduct(ctx, 1))

	reviews, err := svc.ListReviewsForProduct(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	avg, err := svc.AverageRating(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, avg)
}
