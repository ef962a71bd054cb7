package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"

	"github.com/tienda-online/storefront/internal/client"
	"github.com/tienda-online/storefront/internal/config"
	"github.com/tienda-online/storefront/internal/logger"
	"github.com/tienda-online/storefront/internal/metrics"
	"github.com/tienda-online/storefront/internal/ui/handlers"
	"github.com/tienda-online/storefront/internal/ui/middleware"
	"github.com/tienda-online/storefront/internal/ui/sessions"
)

type Server struct {
	router   *chi.Mux
	config   *config.Config
	logger   *slog.Logger
	metrics  *metrics.Metrics
	sessions *sessions.Store
	clock    clockwork.Clock
}

// NewServer creates the ui server. Each browser session gets its own api client pointed at cfg.APIBaseURL.
func NewServer(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics, clock clockwork.Clock) (*Server, error) {
	newClient := func() *client.Client {
		return client.NewClient(cfg.APIBaseURL,
			client.WithTimeout(cfg.APITimeout),
			client.WithLogger(logger),
			client.WithMetrics(m),
		)
	}

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		metrics:  m,
		sessions: sessions.NewStore(newClient, cfg.SessionIdleTimeout, clock),
		clock:    clock,
	}

	s.setupMiddleware()
	if err := s.registerRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler exposes the router (used by tests)
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(s.metrics.Middleware)
	s.router.Use(middleware.SecurityHeaders(s.config.Environment))
	s.router.Use(chimiddleware.Timeout(60 * time.Second))
}

func (s *Server) registerRoutes() error {
	handlerService := &handlers.HandlerService{
		Environment: s.config.Environment,
		APIBaseURL:  s.config.APIBaseURL,
		Clock:       s.clock,
		Metrics:     s.metrics,
	}

	corsMiddleware, err := middleware.CORS(s.config.AllowedOrigins)
	if err != nil {
		return err
	}

	// no session required
	s.router.Get("/health/live", handlerService.HandleLiveness)
	s.router.Handle("/metrics", s.metrics.Handler())

	sessionMiddleware := s.sessions.Middleware(s.config.Environment)

	// polled every second by each open page, so it is kept out of the rate limit
	s.router.With(sessionMiddleware, corsMiddleware).Get("/ui-api/toasts", handlerService.HandleToasts)

	s.router.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))
		r.Use(sessionMiddleware)

		r.Get("/", handlerService.HandleHome)

		r.Group(func(r chi.Router) {
			r.Use(corsMiddleware)

			r.Get("/ui-api/payload/{resource}", handlerService.HandlePayload)

			r.Post("/ui-api/login", handlerService.HandleLogin)
			r.Post("/ui-api/register", handlerService.HandleRegister)
			r.Post("/ui-api/logout", handlerService.HandleLogout)

			r.Post("/ui-api/cart", handlerService.HandleAddToCart)
			r.Post("/ui-api/cart/remove", handlerService.HandleRemoveFromCart)
			r.Post("/ui-api/checkout", handlerService.HandleCheckout)

			r.Post("/ui-api/products", handlerService.HandleCreateProduct)
			r.Post("/ui-api/products/delete", handlerService.HandleDeleteProduct)
			r.Post("/ui-api/users/delete", handlerService.HandleDeleteUser)
		})
	})

	return nil
}

// Start runs the ui server until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	go s.sessions.Run(ctx, s.logger)

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("UI server listening", slog.String("address", addr), slog.String("api_base_url", s.config.APIBaseURL))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutting down UI server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}
