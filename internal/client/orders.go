package client

import (
	"context"
	"encoding/json"
	"net/http"
)

// Checkout turns the session's cart into an order. The request has no body.
func (c *Client) Checkout(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "checkout", http.MethodPost, "/api/checkout", nil)
}

func (c *Client) ListOrders(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "list_orders", http.MethodGet, "/api/orders", nil)
}
