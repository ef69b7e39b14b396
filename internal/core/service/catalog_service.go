package service

import (
	"context"
	"strings"

	"github.com/apilab/rest-vs-graphql/internal/core/domain"
	"github.com/apilab/rest-vs-graphql/internal/port"
)

// CatalogService fronts the catalog repository for both presentation
// adapters and adds the derived read operations (search, average rating)
// that neither belong in the store nor in a single adapter.
type CatalogService struct {
	repo port.CatalogRepository
}

func NewCatalogService(repo port.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx, filter)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, input domain.NewProduct) (*domain.Product, error) {
	return s.repo.CreateProduct(ctx, input)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error) {
	return s.repo.UpdateProduct(ctx, id, patch)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *CatalogService) ListReviewsForProduct(ctx context.Context, productID int) ([]domain.Review, error) {
	return s.repo.ListReviewsForProduct(ctx, productID)
}

func (s *CatalogService) CreateReview(ctx context.Context, input domain.NewReview) (*domain.Review, error) {
	return s.repo.CreateReview(ctx, input)
}

func (s *CatalogService) GetInventoryForProduct(ctx context.Context, productID int) (*domain.Inventory, error) {
	return s.repo.GetInventoryForProduct(ctx, productID)
}

func (s *CatalogService) UpsertInventory(ctx context.Context, input domain.InventoryUpsert) (*domain.Inventory, error) {
	return s.repo.UpsertInventory(ctx, input)
}

// SearchProducts matches the query case-insensitively against product name
// or description. No pagination, no ranking.
func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matches := make([]domain.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// AverageRating computes the arithmetic mean of a product's review ratings
// on every call. It returns nil, not zero, for a product without reviews.
func (s *CatalogService) AverageRating(ctx context.Context, productID int) (*float64, error) {
	reviews, err := s.repo.ListReviewsForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, nil
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return &avg, nil
}
