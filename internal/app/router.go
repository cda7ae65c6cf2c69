package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	carthandler "github.com/marves/pcpartstore/internal/cart/handler/http"
	"github.com/marves/pcpartstore/internal/cart/store"
	cataloghandler "github.com/marves/pcpartstore/internal/catalog/handler/http"
	"github.com/marves/pcpartstore/internal/catalog/service"
	"github.com/marves/pcpartstore/pkg/health"
	"github.com/marves/pcpartstore/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	catalogService *service.Service,
	carts *store.Manager,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	productHandler := cataloghandler.NewProductHandler(catalogService, logger)
	cartHandler := carthandler.NewCartHandler(carts, catalogService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		productHandler.Routes(r)
		r.Route("/cart", cartHandler.Routes)
	})

	return r
}
