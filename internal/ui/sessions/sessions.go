// Package sessions keeps one backend client and one toast box per browser.
//
// The backend authenticates with a session cookie, so the ui server cannot share a client between browsers:
// each browser session gets its own client (and cookie jar).
package sessions

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/tienda-online/storefront/internal/client"
	"github.com/tienda-online/storefront/internal/config"
	"github.com/tienda-online/storefront/internal/logger"
	"github.com/tienda-online/storefront/internal/notify"
)

type Session struct {
	ID     string
	Client *client.Client
	Box    *notify.Box

	mu           sync.Mutex
	hasContainer bool
	lastSeen     time.Time
}

// MarkRendered records that the page holding the toast container has been rendered for this session
func (s *Session) MarkRendered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasContainer = true
}

// HasContainer reports whether the browser has a toast container to show notifications in
func (s *Session) HasContainer() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasContainer
}

type Store struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	newClient func() *client.Client
	idle      time.Duration
	clock     clockwork.Clock
}

// NewStore creates a session store. newClient is called once per new session.
func NewStore(newClient func() *client.Client, idle time.Duration, clock clockwork.Clock) *Store {
	return &Store{
		sessions:  make(map[string]*Session),
		newClient: newClient,
		idle:      idle,
		clock:     clock,
	}
}

// Get returns the session and marks it as used
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	s.lastSeen = st.clock.Now()
	s.mu.Unlock()
	return s, true
}

func (st *Store) Create() *Session {
	s := &Session{
		ID:       uuid.NewString(),
		Client:   st.newClient(),
		Box:      notify.NewBox(),
		lastSeen: st.clock.Now(),
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return s
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes sessions idle for longer than the store's idle timeout and returns how many were removed
func (st *Store) Sweep() int {
	cutoff := st.clock.Now().Add(-st.idle)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		expired := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if expired {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps idle sessions until ctx is cancelled
func (st *Store) Run(ctx context.Context, log *slog.Logger) {
	interval := st.idle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := st.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if n := st.Sweep(); n > 0 {
				log.Debug("idle sessions removed", slog.Int("count", n), slog.Int("remaining", st.Len()))
			}
		}
	}
}

type contextKey struct {
	name string
}

var sessionKey = contextKey{"session"}

// FromContext returns the session attached by Middleware
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok
}

// ContextWithSession is used by Middleware and by handler tests
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// Middleware attaches the browser's session to the request context, creating one (and its cookie) when needed
func (st *Store) Middleware(environment string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var s *Session
			if cookie, err := r.Cookie(config.SessionCookieName); err == nil {
				s, _ = st.Get(cookie.Value)
			}

			if s == nil {
				s = st.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     config.SessionCookieName,
					Value:    s.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   environment == "prod" || environment == "staging",
					SameSite: http.SameSiteLaxMode,
				})
				logger.ContextRequestLogger(r.Context()).Debug("session created",
					slog.String("component", "sessions.Middleware"),
					slog.String("session_id", s.ID),
				)
			}

			logger.ContextWithLogAttrs(r.Context(), slog.String("session_id", s.ID))

			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), s)))
		})
	}
}
