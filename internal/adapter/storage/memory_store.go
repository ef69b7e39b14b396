package storage

import (
	"context"
	"sync"
	"time"

	"github.com/apilab/rest-vs-graphql/internal/core/domain"
)

// DefaultWarehouse is assigned when an inventory row is created without an
// explicit warehouse label.
const DefaultWarehouse = "Warehouse A"

// MemoryStore holds the four catalog collections in process memory.
// All operations are guarded by a single mutex, so one instance can be
// shared by concurrently handled requests from both servers. Data lives
// for the process lifetime only.
type MemoryStore struct {
	mu         sync.RWMutex
	categories []domain.Category
	products   []domain.Product
	reviews    []domain.Review
	inventory  []domain.Inventory

	// Monotonic counters; ids are never reused, even after deletes.
	nextProductID int
	nextReviewID  int
}

// NewMemoryStore constructs a store populated with the fixed seed dataset.
func NewMemoryStore() *MemoryStore {
	now := time.Now()
	return &MemoryStore{
		categories: []domain.Category{
			{ID: 1, Name: "Electronics", Description: "Electronic devices and gadgets"},
			{ID: 2, Name: "Books", Description: "Physical and digital books"},
			{ID: 3, Name: "Clothing", Description: "Apparel and accessories"},
			{ID: 4, Name: "Home & Garden", Description: "Home improvement and garden supplies"},
		},
		products: []domain.Product{
			{ID: 1, Name: "Laptop Pro 15", Description: "High-performance laptop with 16GB RAM", Price: 1299.99, CategoryID: 1, ImageURL: "https://example.com/laptop.jpg", CreatedAt: now},
			{ID: 2, Name: "Wireless Mouse", Description: "Ergonomic wireless mouse with USB receiver", Price: 29.99, CategoryID: 1, ImageURL: "https://example.com/mouse.jpg", CreatedAt: now},
			{ID: 3, Name: "Python Programming", Description: "Comprehensive guide to Python programming", Price: 49.99, CategoryID: 2, ImageURL: "https://example.com/python-book.jpg", CreatedAt: now},
			{ID: 4, Name: "Mechanical Keyboard", Description: "RGB mechanical keyboard with blue switches", Price: 89.99, CategoryID: 1, ImageURL: "https://example.com/keyboard.jpg", CreatedAt: now},
			{ID: 5, Name: "Cotton T-Shirt", Description: "100% organic cotton t-shirt", Price: 19.99, CategoryID: 3, ImageURL: "https://example.com/tshirt.jpg", CreatedAt: now},
			{ID: 6, Name: "Garden Tools Set", Description: "Complete set of essential garden tools", Price: 79.99, CategoryID: 4, ImageURL: "https://example.com/tools.jpg", CreatedAt: now},
			{ID: 7, Name: "USB-C Hub", Description: "7-in-1 USB-C hub with HDMI and card reader", Price: 39.99, CategoryID: 1, ImageURL: "https://example.com/hub.jpg", CreatedAt: now},
			{ID: 8, Name: "Design Patterns Book", Description: "Classic software design patterns", Price: 54.99, CategoryID: 2, ImageURL: "https://example.com/design-book.jpg", CreatedAt: now},
		},
		reviews: []domain.Review{
			{ID: 1, ProductID: 1, Rating: 5, Comment: "Excellent laptop! Fast and reliable.", Author: "Alice", CreatedAt: now},
			{ID: 2, ProductID: 1, Rating: 4, Comment: "Great performance but a bit pricey.", Author: "Bob", CreatedAt: now},
			{ID: 3, ProductID: 2, Rating: 5, Comment: "Perfect mouse, very comfortable.", Author: "Charlie", CreatedAt: now},
			{ID: 4, ProductID: 3, Rating: 5, Comment: "Best Python book I've read!", Author: "Diana", CreatedAt: now},
			{ID: 5, ProductID: 3, Rating: 4, Comment: "Very comprehensive, good for beginners.", Author: "Eve", CreatedAt: now},
			{ID: 6, ProductID: 4, Rating: 5, Comment: "Love the tactile feedback!", Author: "Frank", CreatedAt: now},
			{ID: 7, ProductID: 5, Rating: 3, Comment: "Good quality but runs small.", Author: "Grace", CreatedAt: now},
			{ID: 8, ProductID: 6, Rating: 4, Comment: "Solid tools, good value.", Author: "Henry", CreatedAt: now},
		},
		inventory: []domain.Inventory{
			{ProductID: 1, Quantity: 15, Warehouse: "Warehouse A", LastUpdated: now},
			{ProductID: 2, Quantity: 50, Warehouse: "Warehouse B", LastUpdated: now},
			{ProductID: 3, Quantity: 30, Warehouse: "Warehouse A", LastUpdated: now},
			{ProductID: 4, Quantity: 25, Warehouse: "Warehouse B", LastUpdated: now},
			{ProductID: 5, Quantity: 100, Warehouse: "Warehouse C", LastUpdated: now},
			{ProductID: 6, Quantity: 20, Warehouse: "Warehouse A", LastUpdated: now},
			{ProductID: 7, Quantity: 40, Warehouse: "Warehouse B", LastUpdated: now},
			{ProductID: 8, Quantity: 35, Warehouse: "Warehouse A", LastUpdated: now},
		},
		nextProductID: 9,
		nextReviewID:  9,
	}
}

func (s *MemoryStore) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		out = append(out, p)
	}
	// Negative limits are ignored rather than panicking on the slice bound;
	// zero is honored literally and yields an empty result.
	if filter.Limit != nil && *filter.Limit >= 0 && *filter.Limit < len(out) {
		out = out[:*filter.Limit]
	}
	return out, nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) CreateProduct(ctx context.Context, input domain.NewProduct) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := domain.Product{
		ID:          s.nextProductID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		ImageURL:    input.ImageURL,
		CreatedAt:   time.Now(),
	}
	s.products = append(s.products, product)
	s.nextProductID++

	cp := product
	return &cp, nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, id int, patch domain.ProductPatch) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			patch.Apply(&s.products[i])
			cp := s.products[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	products := s.products[:0]
	for _, p := range s.products {
		if p.ID == id {
			found = true
			continue
		}
		products = append(products, p)
	}
	if !found {
		return domain.ErrNotFound
	}
	s.products = products

	// Cascade: drop reviews and inventory referencing the product.
	reviews := s.reviews[:0]
	for _, r := range s.reviews {
		if r.ProductID != id {
			reviews = append(reviews, r)
		}
	}
	s.reviews = reviews

	inventory := s.inventory[:0]
	for _, inv := range s.inventory {
		if inv.ProductID != id {
			inventory = append(inventory, inv)
		}
	}
	s.inventory = inventory

	return nil
}

func (s *MemoryStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *MemoryStore) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) ListReviewsForProduct(ctx context.Context, productID int) ([]domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Review, 0)
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateReview(ctx context.Context, input domain.NewReview) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// No existence check on the product id; orphan reviews are allowed.
	review := domain.Review{
		ID:        s.nextReviewID,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		Author:    input.Author,
		CreatedAt: time.Now(),
	}
	s.reviews = append(s.reviews, review)
	s.nextReviewID++

	cp := review
	return &cp, nil
}

func (s *MemoryStore) GetInventoryForProduct(ctx context.Context, productID int) (*domain.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.inventory {
		if inv.ProductID == productID {
			cp := inv
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) UpsertInventory(ctx context.Context, input domain.InventoryUpsert) (*domain.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.inventory {
		if s.inventory[i].ProductID == input.ProductID {
			s.inventory[i].Quantity = input.Quantity
			if input.Warehouse != nil {
				s.inventory[i].Warehouse = *input.Warehouse
			}
			s.inventory[i].LastUpdated = time.Now()
			cp := s.inventory[i]
			return &cp, nil
		}
	}

	warehouse := DefaultWarehouse
	if input.Warehouse != nil {
		warehouse = *input.Warehouse
	}
	inv := domain.Inventory{
		ProductID:   input.ProductID,
		Quantity:    input.Quantity,
		Warehouse:   warehouse,
		LastUpdated: time.Now(),
	}
	s.inventory = append(s.inventory, inv)

	cp := inv
	return &cp, nil
}
