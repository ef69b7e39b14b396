package domain

import "time"

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CategoryID  int       `json:"category_id"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Review struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	Rating    int       `json:"rating"` // 1-5 by convention, not validated
	Comment   string    `json:"comment"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// Inventory is keyed by ProductID; a product has at most one row.
type Inventory struct {
	ProductID   int       `json:"product_id"`
	Quantity    int       `json:"quantity"`
	Warehouse   string    `json:"warehouse"`
	LastUpdated time.Time `json:"last_updated"`
}

type NewProduct struct {
	Name        string
	Description string
	Price       float64
	CategoryID  int
	ImageURL    string
}

type NewReview struct {
	ProductID int
	Rating    int
	Comment   string
	Author    string
}

// InventoryUpsert describes an upsert keyed by ProductID. A nil Warehouse
// keeps the existing label on update and falls back to the default on insert.
type InventoryUpsert struct {
	ProductID int
	Quantity  int
	Warehouse *string
}

// ProductFilter narrows a product listing. Nil fields mean "no constraint".
type ProductFilter struct {
	CategoryID *int
	Limit      *int
}

// ProductPatch enumerates the optional field updates for a product.
// Nil fields are left untouched; there is no way to "unset" a field.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	CategoryID  *int
	ImageURL    *string
}

// Apply merges the patch into p field by field.
func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
}
