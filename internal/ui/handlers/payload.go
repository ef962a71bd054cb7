package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tienda-online/storefront/internal/client"
	"github.com/tienda-online/storefront/internal/logger"
	"github.com/tienda-online/storefront/internal/ui/templates"
)

// HandlePayload shows the backend response for one of the list/read operations
func (h *HandlerService) HandlePayload(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	reqLogger := logger.ContextRequestLogger(r.Context())

	resource := chi.URLParam(r, "resource")

	var fetch func(ctx context.Context) (json.RawMessage, error)
	switch resource {
	case "me":
		fetch = s.Client.Me
	case "users":
		fetch = s.Client.ListUsers
	case "products":
		fetch = s.Client.ListProducts
	case "cart":
		fetch = s.Client.ListCart
	case "orders":
		fetch = s.Client.ListOrders
	default:
		http.Error(w, "unknown resource", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	payload, err := fetch(r.Context())
	if err != nil {
		reqLogger.Error("backend call failed", slog.String("resource", resource), slog.String("error", err.Error()))

		msg := genericErrorMessage
		var ce *client.ClientError
		if errors.As(err, &ce) {
			msg = ce.UserError()
		}
		if err := templates.PayloadError(resource, msg).Render(r.Context(), w); err != nil {
			reqLogger.Error("Failed to render payload error", slog.String("error", err.Error()))
		}
		return
	}

	if err := templates.Payload(resource, payload).Render(r.Context(), w); err != nil {
		reqLogger.Error("Failed to render payload", slog.String("error", err.Error()))
	}
}
