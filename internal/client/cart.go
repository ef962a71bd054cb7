package client

import (
	"context"
	"encoding/json"
	"net/http"
)

// DefaultQuantity is sent by AddToCart when no quantity is given
const DefaultQuantity = 1

// AddToCartRequest is the body sent to POST /api/cart
type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

func (c *Client) ListCart(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, "list_cart", http.MethodGet, "/api/cart", nil)
}

// AddToCart adds a product to the session's cart.
// qty is optional: when omitted DefaultQuantity is sent, otherwise the first value is sent as is (including 0).
func (c *Client) AddToCart(ctx context.Context, productID string, qty ...int) (json.RawMessage, error) {
	q := DefaultQuantity
	if len(qty) > 0 {
		q = qty[0]
	}

	body, err := jsonBody(AddToCartRequest{ProductID: productID, Qty: q}, "marshaling add to cart request")
	if err != nil {
		return nil, err
	}
	return c.do(ctx, "add_to_cart", http.MethodPost, "/api/cart", body)
}

// RemoveFromCart deletes a cart line. Unlike the other id parameters, productID is percent-encoded.
func (c *Client) RemoveFromCart(ctx context.Context, productID string) (json.RawMessage, error) {
	return c.do(ctx, "remove_from_cart", http.MethodDelete, "/api/cart/"+EncodeURIComponent(productID), nil)
}
