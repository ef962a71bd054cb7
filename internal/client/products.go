package client

import (
	"context"
	"encoding/json"
	"net/http"
)

func (c *Client) ListProducts(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "list_products", http.MethodGet, "/api/products", nil)
}

// CreateProduct posts data unchanged, e.g. {"name": "mug", "price": 9.5, "stock": 10}
func (c *Client) CreateProduct(ctx context.Context, data any) (json.RawMessage, error) {
	body, err := jsonBody(data, "marshaling create product request")
	if err != nil {
		return nil, err
	}
	return c.do(ctx, "create_product", http.MethodPost, "/api/products", body)
}

// UpdateProduct sends data as the body of PUT /api/products/{id}. The id is inserted in the path without escaping.
func (c *Client) UpdateProduct(ctx context.Context, id string, data any) (json.RawMessage, error) {
	body, err := jsonBody(data, "marshaling update product request")
	if err != nil {
		return nil, err
	}
	return c.do(ctx, "update_product", http.MethodPut, "/api/products/"+id, body)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, "delete_product", http.MethodDelete, "/api/products/"+id, nil)
}
