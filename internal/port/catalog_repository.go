package port

import (
	"context"

	"github.com/apilab/rest-vs-graphql/internal/core/domain"
)

// CatalogRepository is the shared data-store boundary consumed by both the
// REST and GraphQL presentation adapters. Lookups signal a missing record
// with domain.ErrNotFound. Referential integrity is deliberately not
// enforced: reviews and inventory rows may reference nonexistent products.
type CatalogRepository interface {
	// ListProducts returns products in insertion order, optionally filtered
	// by exact category id and truncated to the filter limit.
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)

	GetProduct(ctx context.Context, id int) (*domain.Product, error)

	// CreateProduct assigns the next product id (monotonic, never reused)
	// and stamps the creation time.
	CreateProduct(ctx context.Context, input domain.NewProduct) (*domain.Product, error)

	// UpdateProduct merges the patch into the product field by field.
	UpdateProduct(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error)

	// DeleteProduct removes the product and cascades deletion of all reviews
	// and inventory rows referencing it.
	DeleteProduct(ctx context.Context, id int) error

	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int) (*domain.Category, error)

	// ListReviewsForProduct returns an empty slice for unknown product ids.
	ListReviewsForProduct(ctx context.Context, productID int) ([]domain.Review, error)
	CreateReview(ctx context.Context, input domain.NewReview) (*domain.Review, error)

	GetInventoryForProduct(ctx context.Context, productID int) (*domain.Inventory, error)

	// UpsertInventory updates the row keyed by product id in place, or
	// creates it when absent.
	UpsertInventory(ctx context.Context, input domain.InventoryUpsert) (*domain.Inventory, error)
}
