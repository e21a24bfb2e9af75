package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/time/rate"

	"github.com/datadrop/datadrop/internal/config"
	"github.com/datadrop/datadrop/internal/db"
	_ "github.com/datadrop/datadrop/internal/docs"
	"github.com/datadrop/datadrop/internal/storage"
)

// SecurityHeaders middleware adds essential security headers to all responses.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// recoverJSON converts panics anywhere below it into the generic error
// envelope instead of an empty 500.
func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				writeError(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// NewRouter builds the HTTP router for the ingestion service.
func NewRouter(persister *storage.Persister, store *db.Store, cfg *config.Config, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(recoverJSON)

	// Only trust X-Forwarded-For when behind a reverse proxy; otherwise the
	// direct connection IP feeds the rate limiter and cannot be spoofed.
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}

	r.Use(SecurityHeaders)

	// 100 requests/second with burst of 200 per client IP. High enough for
	// normal producers, low enough to keep a misbehaving one from filling
	// the disk.
	apiLimiter := NewIPRateLimiter(rate.Limit(100), 200)

	ingestH := NewIngestHandler(persister, store, logger)

	// Kubernetes health probes (no rate limiting)
	r.Get("/healthz", Healthz)
	r.Get("/readyz", Readyz(store))

	// API Documentation (Swagger UI)
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Group(func(api chi.Router) {
		api.Use(RateLimitMiddleware(apiLimiter))
		api.Get("/", ingestH.Root)
		api.Get("/healthcheck", Healthcheck)
		api.Post("/process", ingestH.Process)
		api.Get("/artifacts", ingestH.ListArtifacts)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
