package routes

import (
	"net/http"

	"github.com/zatekoja/coachplan/internal/api/handlers"
	"github.com/zatekoja/coachplan/internal/api/middleware"
	"github.com/zatekoja/coachplan/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	planHandler    *handlers.PlanHandler
	catalogHandler *handlers.CatalogHandler
	healthHandler  *handlers.HealthHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	planHandler *handlers.PlanHandler,
	catalogHandler *handlers.CatalogHandler,
	healthHandler *handlers.HealthHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		planHandler:    planHandler,
		catalogHandler: catalogHandler,
		healthHandler:  healthHandler,
		allowedOrigins: allowedOrigins,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", r.healthHandler.Live)
	r.mux.HandleFunc("GET /health/ready", r.healthHandler.Ready)

	// Generated plans
	r.mux.HandleFunc("POST /api/plans/workout/ai", r.planHandler.GenerateWorkout)
	r.mux.HandleFunc("POST /api/plans/diet/ai", r.planHandler.GenerateDiet)

	// Manual plans
	r.mux.HandleFunc("POST /api/plans/workout", r.planHandler.CreateWorkout)
	r.mux.HandleFunc("POST /api/plans/diet", r.planHandler.CreateDiet)

	r.mux.HandleFunc("GET /api/plans/status", r.planHandler.GetStatus)

	r.mux.HandleFunc("GET /api/catalog", r.catalogHandler.ListCatalog)

	// Last wrap is outermost. CORS wraps everything so preflight never reaches the mux.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORS(r.allowedOrigins)(handler)

	return handler
}
