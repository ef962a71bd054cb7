package handlers

import (
	"log/slog"
	"net/http"

	"github.com/tienda-online/storefront/internal/logger"
	"github.com/tienda-online/storefront/internal/ui/templates"
)

// HandleHome renders the storefront page. From now on this session's notifications go to its toast box.
func (h *HandlerService) HandleHome(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	s.MarkRendered()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Layout(h.Environment, h.APIBaseURL).Render(r.Context(), w); err != nil {
		logger.ContextRequestLogger(r.Context()).Error("Failed to render layout", slog.String("error", err.Error()))
	}
}

// HandleToasts renders the current contents of the session's toast box
func (h *HandlerService) HandleToasts(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Toasts(s.Box.Elements()).Render(r.Context(), w); err != nil {
		logger.ContextRequestLogger(r.Context()).Error("Failed to render toasts", slog.String("error", err.Error()))
	}
}

func (h *HandlerService) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}
