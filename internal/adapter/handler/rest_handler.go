package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/apilab/rest-vs-graphql/internal/core/domain"
	"github.com/apilab/rest-vs-graphql/internal/core/service"
)

// RESTHandler exposes the catalog as a resource-oriented API: one endpoint
// per resource, fixed response shapes. The `note` fields call out the REST
// characteristics (over-fetching, under-fetching, N+1) the demo contrasts
// with GraphQL.
type RESTHandler struct {
	catalog *service.CatalogService
}

func NewRESTHandler(catalog *service.CatalogService) *RESTHandler {
	return &RESTHandler{catalog: catalog}
}

// Routes builds the REST route table.
func (h *RESTHandler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api", h.APIInfo)

	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("POST /api/products", h.CreateProduct)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.HandleFunc("PUT /api/products/{id}", h.UpdateProduct)
	mux.HandleFunc("DELETE /api/products/{id}", h.DeleteProduct)

	mux.HandleFunc("GET /api/products/{id}/reviews", h.ListProductReviews)
	mux.HandleFunc("POST /api/products/{id}/reviews", h.CreateReview)
	mux.HandleFunc("GET /api/products/{id}/inventory", h.GetProductInventory)
	mux.HandleFunc("PUT /api/products/{id}/inventory", h.UpsertProductInventory)

	mux.HandleFunc("GET /api/categories", h.ListCategories)
	mux.HandleFunc("GET /api/categories/{id}", h.GetCategory)
	mux.HandleFunc("GET /api/categories/{id}/products", h.ListCategoryProducts)

	mux.HandleFunc("GET /health", h.HealthCheck)

	return mux
}

// restEnvelope is the `{data, count, note}` response convention. Error
// responses carry only the `error` field.
type restEnvelope struct {
	Data      any              `json:"data,omitempty"`
	Count     *int             `json:"count,omitempty"`
	Note      string           `json:"note,omitempty"`
	Message   string           `json:"message,omitempty"`
	DeletedID *int             `json:"deleted_id,omitempty"`
	Category  *domain.Category `json:"category,omitempty"`
	Error     string           `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, restEnvelope{Error: message})
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	return id, err == nil
}

func intPtr(v int) *int { return &v }

// GET /api/products?category_id=&limit=
//
// REST characteristic: every product field is returned whether the caller
// needs it or not (over-fetching).
func (h *RESTHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, ok := productFilterFromQuery(w, r)
	if !ok {
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, restEnvelope{
		Data:  products,
		Count: intPtr(len(products)),
		Note:  "REST: Returns all product fields even if you only need some",
	})
}

func productFilterFromQuery(w http.ResponseWriter, r *http.Request) (domain.ProductFilter, bool) {
	var filter domain.ProductFilter
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid category_id")
			return filter, false
		}
		filter.CategoryID = &categoryID
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return filter, false
		}
		filter.Limit = &limit
	}
	return filter, true
}

// GET /api/products/{id}
func (h *RESTHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, restEnvelope{
		Data: product,
		Note: "REST: All fields returned, no field selection",
	})
}

type productRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *int     `json:"category_id"`
	ImageURL    *string  `json:"image_url"`
}

// validate reports the first absent required field.
func (req *productRequest) validate() error {
	switch {
	case req.Name == nil:
		return &domain.MissingFieldError{Field: "name"}
	case req.Description == nil:
		return &domain.MissingFieldError{Field: "description"}
	case req.Price == nil:
		return &domain.MissingFieldError{Field: "price"}
	case req.CategoryID == nil:
		return &domain.MissingFieldError{Field: "category_id"}
	}
	return nil
}

// POST /api/products
func (h *RESTHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := domain.NewProduct{
		Name:        *req.Name,
		Description: *req.Description,
		Price:       *req.Price,
		CategoryID:  *req.CategoryID,
	}
	if req.ImageURL != nil {
		input.ImageURL = *req.ImageURL
	}

	product, err := h.catalog.CreateProduct(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, restEnvelope{
		Data:    product,
		Message: "Product created successfully",
	})
}

// PUT /api/products/{id}
//
// Declared as PUT but merges only the provided fields; omitted fields keep
// their values. Callers expecting full-replacement semantics should send
// every field.
func (h *RESTHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := domain.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, restEnvelope{
		Data:    product,
		Message: "Product updated successfully",
		Note:    "REST: PUT here applies a partial merge, not a full replacement",
	})
}

// DELETE /api/products/{id}
func (h *RESTHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, restEnvelope{
		Message:   "Product deleted successfully",
		DeletedID: intPtr(id),
	})
}

// GET /api/products/{id}/reviews
//
// REST characteristic: related data lives behind its own endpoint, so a
// product page costs one extra request per relation (under-fetching).
func (h *RESTHandler) ListProductReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireProduct(w, r)
	if !ok {
		return
	}

	reviews, err := h.catalog.ListReviewsForProduct(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, restEnvelope{
		Data:  reviews,
		Count: intPtr(len(reviews)),
		Note:  "REST: Separate request needed for reviews (N+1 problem)",
	})
}

type reviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
	Author  *string `json:"author"`
}

func (req *reviewRequest) validate() error {
	switch {
	case req.Rating == nil:
		return &domain.MissingFieldError{Field: "rating"}
	case req.Comment == nil:
		return &domain.MissingFieldError{Field: "comment"}
	case req.Author == nil:
		return &domain.MissingFieldError{Field: "author"}
	}
	return nil
}

// POST /api/products/{id}/reviews
func (h *RESTHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireProduct(w, r)
	if !ok {
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	review, err := h.catalog.CreateReview(r.Context(), domain.NewReview{
		ProductID: id,
		Rating:    *req.Rating,
		Comment:   *req.Comment,
		Author:    *req.Author,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, restEnvelope{
		Data:    review,
		Message: "Review created successfully",
	})
}

// GET /api/products/{id}/inventory
func (h *RESTHandler) GetProductInventory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireProduct(w, r)
	if !ok {
		return
	}

	inventory, err := h.catalog.GetInventoryForProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Inventory not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, restEnvelope{
		Data: inventory,
		Note: "REST: Third request needed for inventory (under-fetching)",
	})
}

type inventoryRequest struct {
	Quantity  *int    `json:"quantity"`
	Warehouse *string `json:"warehouse"`
}

// PUT /api/products/{id}/inventory
//
// True upsert keyed by product id: repeated calls update the single
// existing row.
func (h *RESTHandler) UpsertProductInventory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireProduct(w, r)
	if !ok {
		return
	}

	var req inventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quantity == nil {
		err := &domain.MissingFieldError{Field: "quantity"}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	inventory, err := h.catalog.UpsertInventory(r.Context(), domain.InventoryUpsert{
		ProductID: id,
		Quantity:  *req.Quantity,
		Warehouse: req.Warehouse,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, restEnvelope{
		Data:    inventory,
		Message: "Inventory updated successfully",
	})
}

// GET /api/categories
func (h *RESTHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, restEnvelope{
		Data:  categories,
		Count: intPtr(len(categories)),
	})
}

// GET /api/categories/{id}
func (h *RESTHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	category, err := h.catalog.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, restEnvelope{Data: category})
}

// GET /api/categories/{id}/products
func (h *RESTHandler) ListCategoryProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	category, err := h.catalog.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), domain.ProductFilter{CategoryID: &id})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, restEnvelope{
		Data:     products,
		Count:    intPtr(len(products)),
		Category: category,
	})
}

func (h *RESTHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireProduct resolves the {id} path segment and 404s when the parent
// product does not exist. The store itself never checks existence; the
// check is a wire-level convention of the nested REST routes.
func (h *RESTHandler) requireProduct(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return 0, false
	}

	if _, err := h.catalog.GetProduct(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return 0, false
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return 0, false
	}
	return id, true
}

// GET /api — endpoint index and a summary of the REST characteristics the
// demo is built around.
func (h *RESTHandler) APIInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"api":     "REST API Demo",
		"version": "1.0",
		"characteristics": []string{
			"Multiple endpoints for different resources",
			"Fixed response structure (over-fetching)",
			"Multiple requests for nested data (under-fetching)",
			"HTTP verbs for operations (GET, POST, PUT, DELETE)",
			"Resource-based URLs",
		},
		"endpoints": map[string]map[string]string{
			"products": {
				"GET /api/products":                "List all products (query: category_id, limit)",
				"GET /api/products/{id}":           "Get single product",
				"POST /api/products":               "Create product",
				"PUT /api/products/{id}":           "Update product (partial merge)",
				"DELETE /api/products/{id}":        "Delete product",
				"GET /api/products/{id}/reviews":   "Get product reviews",
				"POST /api/products/{id}/reviews":  "Create review",
				"GET /api/products/{id}/inventory": "Get product inventory",
				"PUT /api/products/{id}/inventory": "Upsert product inventory",
			},
			"categories": {
				"GET /api/categories":               "List all categories",
				"GET /api/categories/{id}":          "Get single category",
				"GET /api/categories/{id}/products": "Get products in category",
			},
		},
		"examples": map[string]string{
			"over_fetching":  "GET /api/products/1 returns ALL fields even if you only need name",
			"under_fetching": "Need 3 requests: product + reviews + inventory",
			"n_plus_1":       "Get 10 products + their reviews = 11 requests",
		},
	})
}
