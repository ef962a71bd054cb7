package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jub0bs/cors"
	"golang.org/x/time/rate"

	"github.com/tienda-online/storefront/internal/config"
	"github.com/tienda-online/storefront/internal/logger"
)

// CORS builds the middleware for the /ui-api routes
func CORS(allowedOrigins []string) (func(http.Handler) http.Handler, error) {
	corsMiddleware, err := cors.NewMiddleware(cors.Config{
		Origins: allowedOrigins,
		Methods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		RequestHeaders: []string{
			"Content-Type",
			"HX-Request",
			"HX-Target",
			"HX-Current-URL",
			"HX-Trigger",
		},
		Credentialed:    len(allowedOrigins) > 0 && allowedOrigins[0] != "*",
		MaxAgeInSeconds: config.CORSMaxAgeInSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create CORS middleware: %w", err)
	}

	return func(next http.Handler) http.Handler {
		return corsMiddleware.Wrap(next)
	}, nil
}

func SecurityHeaders(environment string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")

			// htmx is loaded from unpkg; alert fallbacks are inline scripts
			w.Header().Set("Content-Security-Policy",
				"default-src 'self'; script-src 'self' 'unsafe-inline' https://unpkg.com; style-src 'self' 'unsafe-inline'; frame-ancestors 'none';")

			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if environment == "prod" || environment == "staging" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit limits requests per second. If requestsPerSecond <= 0, rate limiting is disabled.
func RateLimit(requestsPerSecond int32, burst int32) func(http.Handler) http.Handler {
	if requestsPerSecond <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), int(burst))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.ContextRequestLogger(r.Context()).Warn("Rate limit exceeded",
					slog.String("component", "RateLimit"),
					slog.String("remote_addr", r.RemoteAddr),
				)

				http.Error(w, "Too many requests. Please try again in a few moments.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
