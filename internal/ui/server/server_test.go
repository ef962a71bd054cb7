package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tienda-online/storefront/internal/config"
	"github.com/tienda-online/storefront/internal/logger"
	"github.com/tienda-online/storefront/internal/metrics"
	"github.com/tienda-online/storefront/internal/notify"
)

// fakeBackend answers like the storefront API and records the escaped paths it was called with
type fakeBackend struct {
	mu    sync.Mutex
	paths []string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.paths = append(b.paths, r.Method+" "+r.URL.EscapedPath())
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/api/login":
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "backend-session", Path: "/"})
		_, _ = io.WriteString(w, `{"msg":"login ok"}`)
	case r.URL.Path == "/api/checkout":
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"Carrito vacío"}`)
	case r.URL.Path == "/api/products":
		_, _ = io.WriteString(w, `[{"id":"p1","name":"mug","price":9.5,"stock":3}]`)
	case r.URL.Path == "/api/orders":
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `<h1>Unauthorized</h1>`)
	case strings.HasPrefix(r.URL.Path, "/api/cart"):
		_, _ = io.WriteString(w, `{"product_id":"x","quantity":1}`)
	default:
		_, _ = io.WriteString(w, `{}`)
	}
}

func (b *fakeBackend) calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.paths...)
}

func (b *fakeBackend) called(want string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.paths {
		if p == want {
			return true
		}
	}
	return false
}

type testUI struct {
	t       *testing.T
	srv     *httptest.Server
	backend *fakeBackend
	clock   *clockwork.FakeClock
	cookie  *http.Cookie
}

func newTestUI(t *testing.T, configure ...func(cfg *config.Config)) *testUI {
	t.Helper()

	backend := &fakeBackend{}
	backendSrv := httptest.NewServer(backend)
	t.Cleanup(backendSrv.Close)

	cfg := &config.Config{
		Environment:        "test",
		APIBaseURL:         backendSrv.URL,
		APITimeout:         5 * time.Second,
		AllowedOrigins:     []string{"*"},
		SessionIdleTimeout: time.Hour,
	}
	for _, fn := range configure {
		fn(cfg)
	}
	clock := clockwork.NewFakeClock()

	s, err := NewServer(cfg, logger.Discard(), metrics.New(), clock)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	return &testUI{t: t, srv: srv, backend: backend, clock: clock}
}

// do sends a request as the browser, keeping the session cookie between calls
func (u *testUI) do(method, path string, form url.Values) (int, string) {
	u.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, u.srv.URL+path, body)
	if err != nil {
		u.t.Fatalf("NewRequest: %v", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if u.cookie != nil {
		req.AddCookie(u.cookie)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		u.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()

	for _, c := range res.Cookies() {
		if c.Name == config.SessionCookieName {
			u.cookie = c
		}
	}

	data, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(data)
}

func (u *testUI) toasts() string {
	u.t.Helper()
	_, body := u.do(http.MethodGet, "/ui-api/toasts", nil)
	return body
}

func TestLoginShowsToast(t *testing.T) {
	ui := newTestUI(t)

	status, page := ui.do(http.MethodGet, "/", nil)
	if status != http.StatusOK || !strings.Contains(page, `id="toast-box"`) {
		t.Fatalf("GET / = %d, toast container present: %v", status, strings.Contains(page, `id="toast-box"`))
	}

	_, body := ui.do(http.MethodPost, "/ui-api/login", url.Values{"email": {"a@b.com"}, "password": {"pw"}})
	if strings.Contains(body, "<script>") {
		t.Errorf("expected no alert once the page is rendered, got %q", body)
	}

	toasts := ui.toasts()
	if !strings.Contains(toasts, `class="toast">login ok</div>`) {
		t.Errorf("toast box = %q, want a login ok toast", toasts)
	}

	// the toast disappears after its lifetime
	ui.clock.Advance(notify.Lifetime)
	deadline := time.Now().Add(2 * time.Second)
	for strings.Contains(ui.toasts(), "login ok") {
		if time.Now().After(deadline) {
			t.Fatal("toast still present after its lifetime")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBackendErrorPayloadShowsErrorToast(t *testing.T) {
	ui := newTestUI(t)
	ui.do(http.MethodGet, "/", nil)

	ui.do(http.MethodPost, "/ui-api/checkout", url.Values{})

	if toasts := ui.toasts(); !strings.Contains(toasts, `class="toast error">Carrito vacío</div>`) {
		t.Errorf("toast box = %q, want an error toast", toasts)
	}
}

func TestNoContainerFallsBackToAlert(t *testing.T) {
	ui := newTestUI(t)

	// the layout was never rendered for this session
	_, body := ui.do(http.MethodPost, "/ui-api/checkout", url.Values{})

	if !strings.Contains(body, `<script>alert("Carrito vacío");</script>`) {
		t.Errorf("response = %q, want an alert", body)
	}
	if toasts := ui.toasts(); toasts != "" {
		t.Errorf("toast box = %q, want it empty", toasts)
	}
}

func TestRemoveFromCartEncodesID(t *testing.T) {
	ui := newTestUI(t)
	ui.do(http.MethodGet, "/", nil)

	ui.do(http.MethodPost, "/ui-api/cart/remove", url.Values{"product_id": {"a/b"}})
	if !ui.backend.called("DELETE /api/cart/a%2Fb") {
		t.Errorf("backend calls = %v, want DELETE /api/cart/a%%2Fb", ui.backend.calls())
	}

	ui.do(http.MethodPost, "/ui-api/cart", url.Values{"product_id": {"p1"}})
	if !ui.backend.called("POST /api/cart") {
		t.Errorf("backend calls = %v, want POST /api/cart", ui.backend.calls())
	}
}

func TestInvalidQuantity(t *testing.T) {
	ui := newTestUI(t)
	ui.do(http.MethodGet, "/", nil)

	ui.do(http.MethodPost, "/ui-api/cart", url.Values{"product_id": {"p1"}, "qty": {"two"}})

	if ui.backend.called("POST /api/cart") {
		t.Error("backend should not be called with an invalid quantity")
	}
	if toasts := ui.toasts(); !strings.Contains(toasts, "Quantity must be a whole number.") {
		t.Errorf("toast box = %q, want a validation error", toasts)
	}
}

func TestPayload(t *testing.T) {
	ui := newTestUI(t)

	status, body := ui.do(http.MethodGet, "/ui-api/payload/products", nil)
	if status != http.StatusOK || !strings.Contains(body, "<pre") || !strings.Contains(body, "mug") {
		t.Errorf("GET /ui-api/payload/products = %d %q", status, body)
	}

	_, body = ui.do(http.MethodGet, "/ui-api/payload/orders", nil)
	if !strings.Contains(body, "Your session has expired") {
		t.Errorf("expected the non-JSON 401 to be reported, got %q", body)
	}

	status, _ = ui.do(http.MethodGet, "/ui-api/payload/secrets", nil)
	if status != http.StatusNotFound {
		t.Errorf("unknown resource status = %d, want 404", status)
	}
}

func TestBackendSessionIsPerBrowser(t *testing.T) {
	ui := newTestUI(t)
	ui.do(http.MethodGet, "/", nil)
	ui.do(http.MethodPost, "/ui-api/login", url.Values{"email": {"a@b.com"}, "password": {"pw"}})

	other := &testUI{t: t, srv: ui.srv, backend: ui.backend, clock: ui.clock}
	other.do(http.MethodGet, "/", nil)

	if ui.cookie == nil || other.cookie == nil || ui.cookie.Value == other.cookie.Value {
		t.Fatal("expected two distinct browser sessions")
	}
}

func TestHealthAndMetrics(t *testing.T) {
	ui := newTestUI(t)

	if status, body := ui.do(http.MethodGet, "/health/live", nil); status != http.StatusOK || body != "OK" {
		t.Errorf("GET /health/live = %d %q", status, body)
	}

	ui.do(http.MethodGet, "/", nil)
	ui.do(http.MethodPost, "/ui-api/login", url.Values{"email": {"a@b.com"}, "password": {"pw"}})

	_, body := ui.do(http.MethodGet, "/metrics", nil)
	for _, want := range []string{
		`storefront_client_requests_total{operation="login",status="200"} 1`,
		`storefront_notify_notifications_total{kind="toast"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestToastPollingIsNotRateLimited(t *testing.T) {
	ui := newTestUI(t, func(cfg *config.Config) {
		cfg.RateLimitRPS = 1
		cfg.RateLimitBurst = 1
	})

	if status, _ := ui.do(http.MethodGet, "/", nil); status != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", status)
	}

	for i := 0; i < 5; i++ {
		if status, _ := ui.do(http.MethodGet, "/ui-api/toasts", nil); status != http.StatusOK {
			t.Fatalf("poll %d = %d, want 200", i, status)
		}
	}

	// the burst was used by GET /
	if status, _ := ui.do(http.MethodPost, "/ui-api/checkout", url.Values{}); status != http.StatusTooManyRequests {
		t.Errorf("POST /ui-api/checkout = %d, want 429", status)
	}
}
