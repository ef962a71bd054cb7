package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func (h *HandlerService) HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	productID := r.FormValue("product_id")
	if productID == "" {
		h.notifyInvalid(w, r, s, "You must enter a product id.")
		return
	}

	var (
		payload json.RawMessage
		err     error
	)
	// an empty quantity field means the backend default
	if qtyStr := r.FormValue("qty"); qtyStr != "" {
		qty, convErr := strconv.Atoi(qtyStr)
		if convErr != nil {
			h.notifyInvalid(w, r, s, "Quantity must be a whole number.")
			return
		}
		payload, err = s.Client.AddToCart(r.Context(), productID, qty)
	} else {
		payload, err = s.Client.AddToCart(r.Context(), productID)
	}

	h.notifyResult(w, r, s, "add_to_cart", payload, err, "Added to cart")
}

func (h *HandlerService) HandleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	productID := r.FormValue("product_id")
	if productID == "" {
		h.notifyInvalid(w, r, s, "You must enter a product id.")
		return
	}

	payload, err := s.Client.RemoveFromCart(r.Context(), productID)
	h.notifyResult(w, r, s, "remove_from_cart", payload, err, "Removed from cart")
}

func (h *HandlerService) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	payload, err := s.Client.Checkout(r.Context())
	h.notifyResult(w, r, s, "checkout", payload, err, "Order placed")
}
