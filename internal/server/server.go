// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itsatony/airsense/api"
	"github.com/itsatony/airsense/api/middleware"
	"github.com/itsatony/airsense/api/resources"
	"github.com/itsatony/airsense/internal/auth"
	"github.com/itsatony/airsense/internal/config"
	"github.com/itsatony/airsense/internal/database"
	"github.com/itsatony/airsense/internal/monitoring"
	"github.com/itsatony/airsense/internal/repository"
	"github.com/itsatony/airsense/internal/repository/cache"
	"github.com/itsatony/airsense/internal/repository/sqlrepo"
	"github.com/itsatony/airsense/internal/service"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	db         database.DB
	redis      *redis.Client
	service    *service.Service
	monitoring *monitoring.Service
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config: cfg,
		srv:    srv,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	if err := s.initialize(context.Background()); err != nil {
		return err
	}

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// initialize connects the stores and builds the handler chain
func (s *Server) initialize(ctx context.Context) error {
	db, err := initDB(ctx, s.config.Database)
	if err != nil {
		return err
	}
	s.db = db

	if err := sqlrepo.Migrate(ctx, db); err != nil {
		return fmt.Errorf("error migrating schema: %w", err)
	}

	readings := sqlrepo.NewReadingRepository(db)
	var devices repository.DeviceRepository = sqlrepo.NewDeviceRepository(db)
	if s.config.Redis.Enabled {
		s.redis = cache.NewRedisClient(s.config.Redis)
		devices = cache.NewDeviceCache(devices, s.redis, s.config.Redis.DeviceTTL)
		nuts.L.Infof("[Server] Device names cached in Redis at %s:%d", s.config.Redis.Host, s.config.Redis.Port)
	}

	s.service = service.New(readings, devices, service.WithWindow(s.config.Aggregation.Window))
	if err := s.service.Validate(); err != nil {
		return err
	}

	s.monitoring = monitoring.NewService(monitoring.Config{
		LogLevel: s.config.Monitoring.LogLevel,
	})
	s.monitoring.Subscribe(s.service, service.EventReadingRecorded, service.EventQueryFailed)

	verifier, err := NewVerifier(s.config.Auth)
	if err != nil {
		return err
	}

	routerCfg := api.RouterConfig{AllowedOrigins: s.config.Server.AllowedOrigins}
	if s.config.RateLimit.Enabled {
		routerCfg.Limiter = middleware.NewRateLimiter(s.config.RateLimit.RPS, s.config.RateLimit.Burst)
	}
	router := api.NewRouter(resources.NewResources(s.service, s.service, readings), verifier, routerCfg)

	s.srv.Handler = withRequestTimeout(router, s.config.Server.RequestTimeout)
	return nil
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	s.close()

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing Redis client: %v", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing database: %v", err)
		}
	}
}

// NewVerifier returns the identity verifier selected by cfg.Mode
func NewVerifier(cfg config.AuthConfig) (auth.Verifier, error) {
	switch cfg.Mode {
	case config.AuthModeJWT:
		return auth.NewJWTVerifier(cfg.Secret), nil
	case config.AuthModeKeycloak:
		return auth.NewKeycloakVerifier(cfg.Keycloak), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}

func initDB(ctx context.Context, cfg config.DatabaseConfig) (database.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}

	// Set up connection timeout
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// withRequestTimeout bounds the context of every request, cancelling store queries
// that outlive it.
func withRequestTimeout(next http.Handler, timeout time.Duration) http.Handler {
	if timeout <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
