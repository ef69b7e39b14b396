package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductPatch_Apply(t *testing.T) {
	product := Product{ID: 1, Name: "old", Description: "desc", Price: 10, CategoryID: 2, ImageURL: "img"}

	name := "new"
	price := 20.0
	ProductPatch{Name: &name, Price: &price}.Apply(&product)

	assert.Equal(t, "new", product.Name)
	assert.Equal(t, 20.0, product.Price)
	assert.Equal(t, "desc", product.Description)
	assert.Equal(t, 2, product.CategoryID)
	assert.Equal(t, "img", product.ImageURL)
}

func TestProductPatch_Empty(t *testing.T) {
	product := Product{ID: 1, Name: "old", Price: 10}
	ProductPatch{}.Apply(&product)
	assert.Equal(t, Product{ID: 1, Name: "old", Price: 10}, product)
}

func TestMissingFieldError(t *testing.T) {
	err := &MissingFieldError{Field: "price"}
	assert.Equal(t, "Missing required field: price", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
