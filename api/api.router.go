package api

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/itsatony/airsense/api/middleware"
	"github.com/itsatony/airsense/api/resources"
	_ "github.com/itsatony/airsense/docs"
	"github.com/itsatony/airsense/internal/auth"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.AuthMiddleware
	limiter   *middleware.RateLimiter
	resources *resources.Resources
	handler   http.Handler
}

// RouterConfig carries the optional parts of the router
type RouterConfig struct {
	// Limiter is skipped when nil
	Limiter        *middleware.RateLimiter
	AllowedOrigins []string
}

func NewRouter(res *resources.Resources, verifier auth.Verifier, cfg RouterConfig) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      middleware.NewAuthMiddleware(verifier),
		limiter:   cfg.Limiter,
		resources: res,
	}

	r.setupRoutes()

	var h http.Handler = r.router
	if len(cfg.AllowedOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(cfg.AllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		)(h)
	}
	h = handlers.CombinedLoggingHandler(os.Stdout, h)
	r.handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	return r
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()
	if r.limiter != nil {
		api.Use(r.limiter.Limit)
	}

	// Public routes
	api.HandleFunc("/health", r.resources.Health.HealthCheck).Methods(http.MethodGet)
	api.HandleFunc("/swagger.json", r.resources.Health.OpenAPI).Methods(http.MethodGet)

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.auth.Authenticate)

	// Sensors
	sensors := protected.PathPrefix("/sensors").Subrouter()
	sensors.HandleFunc("/hourly", r.resources.Sensors.GetHourly).Methods(http.MethodGet)
	sensors.HandleFunc("/latest", r.resources.Sensors.GetLatest).Methods(http.MethodGet)

	// Data points from devices
	data := protected.PathPrefix("/data").Subrouter()
	data.Use(r.auth.RequireDeviceRight(auth.RightCreateDataPoint))
	data.HandleFunc("", r.resources.Data.CreateDataPoint).Methods(http.MethodPost)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}
