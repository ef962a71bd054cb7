package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/tienda-online/storefront/internal/client"
	"github.com/tienda-online/storefront/internal/logger"
	"github.com/tienda-online/storefront/internal/metrics"
	"github.com/tienda-online/storefront/internal/notify"
	"github.com/tienda-online/storefront/internal/ui/sessions"
	"github.com/tienda-online/storefront/internal/ui/templates"
)

const genericErrorMessage = "An error occurred. Please try again."

type HandlerService struct {
	Environment string
	APIBaseURL  string
	Clock       clockwork.Clock
	Metrics     *metrics.Metrics
}

// requestPage is the notification target for one request: the session's toast box once the layout has been
// rendered in the browser, otherwise alerts collected and written back in the response.
type requestPage struct {
	session *sessions.Session
	alerts  []string
}

func (p *requestPage) Container(id string) (notify.Container, bool) {
	if id != notify.ContainerID || !p.session.HasContainer() {
		return nil, false
	}
	return p.session.Box, true
}

func (p *requestPage) Alert(text string) {
	p.alerts = append(p.alerts, text)
}

func (h *HandlerService) notifier(r *http.Request, page notify.Page) *notify.Notifier {
	return notify.New(page,
		notify.WithClock(h.Clock),
		notify.WithLogger(logger.ContextRequestLogger(r.Context())),
		notify.WithMetrics(h.Metrics),
	)
}

// session returns the browser session set by sessions.Middleware
func session(w http.ResponseWriter, r *http.Request) (*sessions.Session, bool) {
	s, ok := sessions.FromContext(r.Context())
	if !ok {
		logger.ContextRequestLogger(r.Context()).Error("no session in request context - is sessions.Middleware installed?")
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}

// notifyResult turns the outcome of a backend call into a toast.
//
// Call errors show the ClientError's user message. Otherwise the payload's own message is shown, flagged as an error
// when the payload carries one. fallback is used for payloads without a message.
func (h *HandlerService) notifyResult(w http.ResponseWriter, r *http.Request, s *sessions.Session, operation string, payload json.RawMessage, err error, fallback string) {
	reqLogger := logger.ContextRequestLogger(r.Context())
	page := &requestPage{session: s}
	n := h.notifier(r, page)

	if err != nil {
		reqLogger.Error("backend call failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)

		var ce *client.ClientError
		if errors.As(err, &ce) {
			n.Error(ce.UserError())
		} else {
			n.Error(genericErrorMessage)
		}
	} else {
		msg, isError := client.PayloadMessage(payload)
		if msg == "" {
			msg = fallback
		}
		if isError {
			logger.ContextWithLogAttrs(r.Context(), slog.String("backend_error", msg))
		}
		n.Toast(msg, isError)
	}

	h.writeAlerts(w, r, page)
}

// notifyInvalid reports a form problem without calling the backend
func (h *HandlerService) notifyInvalid(w http.ResponseWriter, r *http.Request, s *sessions.Session, msg string) {
	page := &requestPage{session: s}
	h.notifier(r, page).Error(msg)
	h.writeAlerts(w, r, page)
}

// writeAlerts asks htmx to refresh the toast box and writes any alert fallbacks into the response
func (h *HandlerService) writeAlerts(w http.ResponseWriter, r *http.Request, page *requestPage) {
	w.Header().Set("HX-Trigger", "toast")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	for _, text := range page.alerts {
		if err := templates.Alert(text).Render(r.Context(), w); err != nil {
			logger.ContextRequestLogger(r.Context()).Error("Failed to render alert", slog.String("error", err.Error()))
		}
	}
}
