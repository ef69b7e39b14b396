package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Side-by-side demonstration client. It issues equivalent requests against
// the REST and GraphQL servers and prints what each style costs in requests
// and payload bytes (over-fetching, under-fetching, N+1).

var (
	restBase   = flag.String("rest", "http://localhost:3000", "REST server base URL")
	graphqlURL = flag.String("graphql", "http://localhost:4000/graphql", "GraphQL endpoint URL")
	suite      = flag.String("suite", "both", "which suite to run: rest, graphql, or both")
)

var client = &http.Client{Timeout: 10 * time.Second}

func main() {
	flag.Parse()

	switch *suite {
	case "rest":
		runRESTSuite()
	case "graphql":
		runGraphQLSuite()
	case "both":
		runRESTSuite()
		runGraphQLSuite()
		printSummary()
	default:
		log.Fatalf("unknown suite %q (want rest, graphql, or both)", *suite)
	}
}

func banner(title string) {
	fmt.Println()
	fmt.Println("==========================================")
	fmt.Println("  " + title)
	fmt.Println("==========================================")
}

func restGet(path string) (int, []byte) {
	resp, err := client.Get(*restBase + path)
	if err != nil {
		log.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("read %s response: %v", path, err)
	}
	return resp.StatusCode, body
}

func restSend(method, path string, payload any) (int, []byte) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("marshal %s body: %v", path, err)
	}

	req, err := http.NewRequest(method, *restBase+path, bytes.NewReader(raw))
	if err != nil {
		log.Fatalf("build %s %s: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("read %s response: %v", path, err)
	}
	return resp.StatusCode, body
}

func graphqlQuery(query string, variables map[string]any) []byte {
	raw, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		log.Fatalf("marshal graphql request: %v", err)
	}

	resp, err := client.Post(*graphqlURL, "application/json", bytes.NewReader(raw))
	if err != nil {
		log.Fatalf("graphql request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("read graphql response: %v", err)
	}
	return body
}

func productIDs(listBody []byte) []int {
	var envelope struct {
		Data []struct {
			ID int `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(listBody, &envelope); err != nil {
		log.Fatalf("decode product list: %v", err)
	}

	ids := make([]int, 0, len(envelope.Data))
	for _, p := range envelope.Data {
		ids = append(ids, p.ID)
	}
	return ids
}

func runRESTSuite() {
	banner("REST API EXAMPLES")

	// Over-fetching: the full payload arrives even when only the name is needed.
	_, body := restGet("/api/products/1")
	fmt.Println("\n[1] Over-fetching")
	fmt.Println("    GET /api/products/1")
	fmt.Printf("    Wanted: just the product name. Received: %d bytes, every field.\n", len(body))

	// Under-fetching: a product page needs three round trips.
	fmt.Println("\n[2] Under-fetching")
	requests := 0
	for _, path := range []string{"/api/products/1", "/api/products/1/reviews", "/api/products/1/inventory"} {
		status, _ := restGet(path)
		requests++
		fmt.Printf("    GET %-32s -> %d\n", path, status)
	}
	fmt.Printf("    Product page (product + reviews + inventory): %d requests\n", requests)

	// N+1: one request for the list, one more per product for its reviews.
	fmt.Println("\n[3] N+1 problem")
	_, listBody := restGet("/api/products")
	ids := productIDs(listBody)
	for _, id := range ids {
		restGet(fmt.Sprintf("/api/products/%d/reviews", id))
	}
	fmt.Printf("    %d products + %d review requests = %d total requests\n", len(ids), len(ids), len(ids)+1)

	// Mutations: create, partial update over PUT, then delete.
	fmt.Println("\n[4] Mutations")
	status, createBody := restSend(http.MethodPost, "/api/products", map[string]any{
		"name":        "Comparison Widget",
		"description": "Created by the comparison client",
		"price":       9.99,
		"category_id": 1,
	})
	fmt.Printf("    POST /api/products -> %d\n", status)

	var created struct {
		Data struct {
			ID int `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(createBody, &created); err != nil {
		log.Fatalf("decode create response: %v", err)
	}

	id := created.Data.ID
	status, _ = restSend(http.MethodPut, fmt.Sprintf("/api/products/%d", id), map[string]any{"price": 7.99})
	fmt.Printf("    PUT /api/products/%d (price only; other fields untouched) -> %d\n", id, status)

	status, _ = restSend(http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil)
	fmt.Printf("    DELETE /api/products/%d -> %d\n", id, status)
}

func runGraphQLSuite() {
	banner("GRAPHQL API EXAMPLES")

	// Precise field selection: ask for two fields, get two fields.
	body := graphqlQuery(`query { product(id: 1) { name price } }`, nil)
	fmt.Println("\n[1] Precise selection (no over-fetching)")
	fmt.Println("    query { product(id: 1) { name price } }")
	fmt.Printf("    Received: %d bytes, exactly the requested fields.\n", len(body))

	// The whole product page in one request.
	fmt.Println("\n[2] Nested data in one request (no under-fetching)")
	graphqlQuery(`query {
	  product(id: 1) {
	    name
	    price
	    category { name }
	    reviews { rating comment author }
	    inventory { quantity warehouse }
	    averageRating
	  }
	}`, nil)
	fmt.Println("    Product + category + reviews + inventory + averageRating: 1 request")

	// N products with their reviews, still one request.
	fmt.Println("\n[3] No N+1")
	graphqlQuery(`query { products { id name reviews { rating } } }`, nil)
	fmt.Println("    All products with all their reviews: 1 request")

	// Search is just another query field, no new endpoint.
	body = graphqlQuery(`query { searchProducts(query: "laptop") { id name } }`, nil)
	fmt.Println("\n[4] Search")
	fmt.Printf("    searchProducts(query: \"laptop\") -> %d bytes\n", len(body))

	// Mutations mirror the REST create/update/delete flow.
	fmt.Println("\n[5] Mutations")
	body = graphqlQuery(`mutation($input: ProductInput!) {
	  createProduct(input: $input) { id name }
	}`, map[string]any{
		"input": map[string]any{
			"name":        "GraphQL Widget",
			"description": "Created by the comparison client",
			"price":       9.99,
			"categoryId":  1,
		},
	})

	var created struct {
		Data struct {
			CreateProduct struct {
				ID int `json:"id"`
			} `json:"createProduct"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		log.Fatalf("decode createProduct response: %v", err)
	}

	id := created.Data.CreateProduct.ID
	fmt.Printf("    createProduct -> id %d\n", id)

	graphqlQuery(`mutation($id: Int!) { deleteProduct(id: $id) }`, map[string]any{"id": id})
	fmt.Printf("    deleteProduct(id: %d) -> done\n", id)
}

func printSummary() {
	banner("COMPARISON SUMMARY")
	fmt.Println(`
REST:
  - Multiple endpoints, one per resource
  - Over-fetching: every field returned, always
  - Under-fetching: product page costs 3 requests
  - N+1: listing N products with reviews costs N+1 requests

GraphQL:
  - Single endpoint
  - Precise field selection
  - Nested data in one request
  - New queries (search, computed fields) without new endpoints`)
}
