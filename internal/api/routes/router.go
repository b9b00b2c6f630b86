package routes

import (
	"net/http"

	"github.com/zatekoja/physiciansearch/backend/internal/api/handlers"
	"github.com/zatekoja/physiciansearch/backend/internal/api/middleware"
	"github.com/zatekoja/physiciansearch/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	physicianHandler  *handlers.PhysicianHandler
	indicationHandler *handlers.IndicationHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	physicianHandler *handlers.PhysicianHandler,
	indicationHandler *handlers.IndicationHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		physicianHandler:  physicianHandler,
		indicationHandler: indicationHandler,
		metrics:           metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Dataset search endpoints
	r.mux.HandleFunc("GET /api/providers", r.physicianHandler.SearchProviders)
	r.mux.HandleFunc("GET /api/providers/{npi}", r.physicianHandler.GetProvider)
	r.mux.HandleFunc("GET /api/providers/{npi}/services", r.physicianHandler.GetProviderServices)
	r.mux.HandleFunc("GET /api/services", r.physicianHandler.SearchServices)
	r.mux.HandleFunc("GET /api/geography", r.physicianHandler.SearchGeography)

	// Indication endpoints
	r.mux.HandleFunc("GET /api/indications", r.indicationHandler.ListIndications)
	r.mux.HandleFunc("GET /api/indications/{id}/physicians", r.indicationHandler.SearchPhysicians)

	// Apply middleware in reverse order (last middleware wraps first).
	// Observability sits directly on the mux so it sees the matched pattern.
	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
