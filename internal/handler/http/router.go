package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jaumet/avook-catalog/pkg/health"
	"github.com/jaumet/avook-catalog/pkg/middleware"
)

// payloadMaxAge matches how long the storefront caches the catalog document.
const payloadMaxAge = 60

// Handlers collects the endpoint handlers the router wires up.
type Handlers struct {
	Catalog   *CatalogHandler
	Checkout  *CheckoutHandler
	Chat      *ChatHandler
	Translate *TranslateHandler
}

// NewRouter creates a chi router with all catalog service routes registered.
func NewRouter(h Handlers, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Metrics("catalog"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// The raw catalog document, same shape the storefront template embeds.
	r.With(middleware.CacheControl(payloadMaxAge)).Get("/catalog/json", h.Catalog.Payload)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", h.Catalog.Catalog)
		r.Get("/catalog/visibility", h.Catalog.Visibility)

		r.Get("/translations", h.Translate.Languages)
		r.Get("/translations/{lang}", h.Translate.Catalog)

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON(logger))
			r.Post("/catalog/reload", h.Catalog.Reload)
			r.Post("/checkout/link", h.Checkout.Link)
			r.Post("/chat", h.Chat.Send)
		})
	})

	return r
}
