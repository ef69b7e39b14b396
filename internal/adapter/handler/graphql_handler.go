package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/graphql-go/graphql"
	gqlhandler "github.com/graphql-go/handler"

	"github.com/apilab/rest-vs-graphql/internal/core/domain"
	"github.com/apilab/rest-vs-graphql/internal/core/service"
)

// Wire types for the GraphQL schema. The json tags double as GraphQL field
// names for the default resolver, so scalar fields need no resolve funcs.
type gqlCategory struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type gqlProduct struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  int     `json:"categoryId"`
	ImageURL    string  `json:"imageUrl"`
	CreatedAt   string  `json:"createdAt"`
}

type gqlReview struct {
	ID        int    `json:"id"`
	ProductID int    `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
}

type gqlInventory struct {
	ProductID   int    `json:"productId"`
	Quantity    int    `json:"quantity"`
	Warehouse   string `json:"warehouse"`
	LastUpdated string `json:"lastUpdated"`
}

func gqlCategoryFrom(c domain.Category) gqlCategory {
	return gqlCategory{ID: c.ID, Name: c.Name, Description: c.Description}
}

func gqlProductFrom(p domain.Product) gqlProduct {
	return gqlProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func gqlProductsFrom(products []domain.Product) []gqlProduct {
	out := make([]gqlProduct, 0, len(products))
	for _, p := range products {
		out = append(out, gqlProductFrom(p))
	}
	return out
}

func gqlReviewFrom(r domain.Review) gqlReview {
	return gqlReview{
		ID:        r.ID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Author:    r.Author,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}

func gqlInventoryFrom(inv domain.Inventory) gqlInventory {
	return gqlInventory{
		ProductID:   inv.ProductID,
		Quantity:    inv.Quantity,
		Warehouse:   inv.Warehouse,
		LastUpdated: inv.LastUpdated.Format(time.RFC3339),
	}
}

// NewGraphQLSchema builds the schema over the shared catalog service.
// Relationship fields (category, reviews, inventory, averageRating,
// Category.products) resolve lazily: the store is only consulted when the
// incoming query names the field, and once per parent record.
func NewGraphQLSchema(catalog *service.CatalogService) (graphql.Schema, error) {
	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	reviewType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Review",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"productId": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"rating":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"comment":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"author":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	inventoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Inventory",
		Fields: graphql.Fields{
			"productId":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"quantity":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"warehouse":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lastUpdated": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"price":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"categoryId":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"imageUrl":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	productType.AddFieldConfig("category", &graphql.Field{
		Type: categoryType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			src := p.Source.(gqlProduct)
			category, err := catalog.GetCategory(p.Context, src.CategoryID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, nil
				}
				return nil, err
			}
			return gqlCategoryFrom(*category), nil
		},
	})

	productType.AddFieldConfig("reviews", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(reviewType))),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			src := p.Source.(gqlProduct)
			reviews, err := catalog.ListReviewsForProduct(p.Context, src.ID)
			if err != nil {
				return nil, err
			}
			out := make([]gqlReview, 0, len(reviews))
			for _, r := range reviews {
				out = append(out, gqlReviewFrom(r))
			}
			return out, nil
		},
	})

	productType.AddFieldConfig("inventory", &graphql.Field{
		Type: inventoryType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			src := p.Source.(gqlProduct)
			inventory, err := catalog.GetInventoryForProduct(p.Context, src.ID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, nil
				}
				return nil, err
			}
			return gqlInventoryFrom(*inventory), nil
		},
	})

	// Computed on read; null, never zero, for a product without reviews.
	productType.AddFieldConfig("averageRating", &graphql.Field{
		Type: graphql.Float,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			src := p.Source.(gqlProduct)
			avg, err := catalog.AverageRating(p.Context, src.ID)
			if err != nil {
				return nil, err
			}
			if avg == nil {
				return nil, nil
			}
			return *avg, nil
		},
	})

	categoryType.AddFieldConfig("products", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			src := p.Source.(gqlCategory)
			products, err := catalog.ListProducts(p.Context, domain.ProductFilter{CategoryID: &src.ID})
			if err != nil {
				return nil, err
			}
			return gqlProductsFrom(products), nil
		},
	})

	productInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"price":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"categoryId":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"imageUrl":    &graphql.InputObjectFieldConfig{Type: graphql.String, DefaultValue: ""},
		},
	})

	reviewInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ReviewInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"productId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"rating":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"comment":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"author":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Args: graphql.FieldConfigArgument{
					"categoryId": &graphql.ArgumentConfig{Type: graphql.Int},
					"limit":      &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var filter domain.ProductFilter
					if v, ok := p.Args["categoryId"].(int); ok {
						filter.CategoryID = &v
					}
					if v, ok := p.Args["limit"].(int); ok {
						filter.Limit = &v
					}
					products, err := catalog.ListProducts(p.Context, filter)
					if err != nil {
						return nil, err
					}
					return gqlProductsFrom(products), nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, err := catalog.GetProduct(p.Context, p.Args["id"].(int))
					if err != nil {
						if errors.Is(err, domain.ErrNotFound) {
							return nil, nil
						}
						return nil, err
					}
					return gqlProductFrom(*product), nil
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(categoryType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					categories, err := catalog.ListCategories(p.Context)
					if err != nil {
						return nil, err
					}
					out := make([]gqlCategory, 0, len(categories))
					for _, c := range categories {
						out = append(out, gqlCategoryFrom(c))
					}
					return out, nil
				},
			},
			"category": &graphql.Field{
				Type: categoryType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					category, err := catalog.GetCategory(p.Context, p.Args["id"].(int))
					if err != nil {
						if errors.Is(err, domain.ErrNotFound) {
							return nil, nil
						}
						return nil, err
					}
					return gqlCategoryFrom(*category), nil
				},
			},
			"searchProducts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products, err := catalog.SearchProducts(p.Context, p.Args["query"].(string))
					if err != nil {
						return nil, err
					}
					return gqlProductsFrom(products), nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createProduct": &graphql.Field{
				Type: graphql.NewNonNull(productType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := p.Args["input"].(map[string]interface{})
					imageURL, _ := in["imageUrl"].(string)
					product, err := catalog.CreateProduct(p.Context, domain.NewProduct{
						Name:        in["name"].(string),
						Description: in["description"].(string),
						Price:       in["price"].(float64),
						CategoryID:  in["categoryId"].(int),
						ImageURL:    imageURL,
					})
					if err != nil {
						return nil, err
					}
					return gqlProductFrom(*product), nil
				},
			},
			"updateProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := p.Args["input"].(map[string]interface{})
					name := in["name"].(string)
					description := in["description"].(string)
					price := in["price"].(float64)
					categoryID := in["categoryId"].(int)
					imageURL, _ := in["imageUrl"].(string)

					// The input is complete, so the merge overwrites every
					// field; the store-side semantics stay a per-field patch.
					patch := domain.ProductPatch{
						Name:        &name,
						Description: &description,
						Price:       &price,
						CategoryID:  &categoryID,
						ImageURL:    &imageURL,
					}
					product, err := catalog.UpdateProduct(p.Context, p.Args["id"].(int), patch)
					if err != nil {
						if errors.Is(err, domain.ErrNotFound) {
							return nil, nil
						}
						return nil, err
					}
					return gqlProductFrom(*product), nil
				},
			},
			"deleteProduct": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					err := catalog.DeleteProduct(p.Context, p.Args["id"].(int))
					if err != nil {
						if errors.Is(err, domain.ErrNotFound) {
							return false, nil
						}
						return nil, err
					}
					return true, nil
				},
			},
			"createReview": &graphql.Field{
				Type: graphql.NewNonNull(reviewType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(reviewInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := p.Args["input"].(map[string]interface{})
					review, err := catalog.CreateReview(p.Context, domain.NewReview{
						ProductID: in["productId"].(int),
						Rating:    in["rating"].(int),
						Comment:   in["comment"].(string),
						Author:    in["author"].(string),
					})
					if err != nil {
						return nil, err
					}
					return gqlReviewFrom(*review), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// NewGraphQLHandler serves the schema at /graphql and the GraphiQL IDE at
// the root, mirroring the REST server's single-purpose siblings.
func NewGraphQLHandler(catalog *service.CatalogService) (http.Handler, error) {
	schema, err := NewGraphQLSchema(catalog)
	if err != nil {
		return nil, err
	}

	h := gqlhandler.New(&gqlhandler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/graphql", h)
	mux.Handle("/", h)
	return mux, nil
}
