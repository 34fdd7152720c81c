package routes

import (
	"net/http"

	"github.com/medassist/docfinder/internal/api/handlers"
	"github.com/medassist/docfinder/internal/api/middleware"
	"github.com/medassist/docfinder/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	chatHandler   *handlers.ChatHandler
	doctorHandler *handlers.DoctorHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	chatHandler *handlers.ChatHandler,
	doctorHandler *handlers.DoctorHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		chatHandler:     chatHandler,
		doctorHandler:   doctorHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
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

	// Conversation endpoints
	r.mux.HandleFunc("POST /api/sessions", r.chatHandler.CreateSession)
	r.mux.HandleFunc("POST /api/chat", r.chatHandler.Chat)

	// Dataset endpoints
	r.mux.HandleFunc("GET /api/doctors", r.doctorHandler.SearchDoctors)
	r.mux.HandleFunc("GET /api/doctors/{id}", r.doctorHandler.GetDoctor)
	r.mux.HandleFunc("GET /api/specialties", r.doctorHandler.ListSpecialties)
	r.mux.HandleFunc("GET /api/stats", r.doctorHandler.GetStats)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// HTTP response cache applies to dataset reads only
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Compression, ETag, and cache headers
	handler = middleware.ResponseOptimization(handler)

	handler = middleware.CORSMiddleware(handler)

	return handler
}
