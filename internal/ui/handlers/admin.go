package handlers

import (
	"net/http"
	"strconv"
)

// HandleCreateProduct builds the product body from the form: {"name", "price", "stock"}
func (h *HandlerService) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	name := r.FormValue("name")
	price, priceErr := strconv.ParseFloat(r.FormValue("price"), 64)
	stock, stockErr := strconv.Atoi(r.FormValue("stock"))
	switch {
	case name == "":
		h.notifyInvalid(w, r, s, "You must enter a product name.")
		return
	case priceErr != nil:
		h.notifyInvalid(w, r, s, "Price must be a number.")
		return
	case stockErr != nil:
		h.notifyInvalid(w, r, s, "Stock must be a whole number.")
		return
	}

	data := map[string]any{
		"name":  name,
		"price": price,
		"stock": stock,
	}
	payload, err := s.Client.CreateProduct(r.Context(), data)
	h.notifyResult(w, r, s, "create_product", payload, err, "Product created")
}

func (h *HandlerService) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	productID := r.FormValue("product_id")
	if productID == "" {
		h.notifyInvalid(w, r, s, "You must enter a product id.")
		return
	}

	payload, err := s.Client.DeleteProduct(r.Context(), productID)
	h.notifyResult(w, r, s, "delete_product", payload, err, "Product deleted")
}

func (h *HandlerService) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		h.notifyInvalid(w, r, s, "You must enter a user id.")
		return
	}

	payload, err := s.Client.DeleteUser(r.Context(), userID)
	h.notifyResult(w, r, s, "delete_user", payload, err, "User deleted")
}
