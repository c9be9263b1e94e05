// Package api serves the simpledex ledger over HTTP for wallets, frontends
// and the dexd client commands.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"

	"github.com/simpledex/simpledex/app"
	"github.com/simpledex/simpledex/app/health"
	"github.com/simpledex/simpledex/config"
)

// Server represents the main API server
type Server struct {
	router  *gin.Engine
	handler http.Handler
	app     *app.DexApp
	health  *health.Checker
	logger  log.Logger
	config  config.APIConfig
	limiter *ipRateLimiter
}

// NewServer creates a new API server over dexApp.
func NewServer(logger log.Logger, dexApp *app.DexApp, checker *health.Checker, cfg config.APIConfig) (*Server, error) {
	if dexApp == nil {
		return nil, errors.New("api: app is required")
	}
	if checker == nil {
		return nil, errors.New("api: health checker is required")
	}

	s := &Server{
		app:    dexApp,
		health: checker,
		logger: logger.With("module", "api"),
		config: cfg,
	}
	if cfg.RateLimitRPS > 0 {
		s.limiter = newIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	s.setupRouter()
	return s, nil
}

// setupRouter configures the Gin router with all routes and middleware
func (s *Server) setupRouter() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	// order matters: recovery first, timeout last
	s.router.Use(RecoveryMiddleware(s.logger))
	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))
	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter))
	}
	s.router.Use(BodyLimitMiddleware(s.config.MaxBodyBytes))
	s.router.Use(TimeoutMiddleware(s.config.RequestTimeout))

	s.registerRoutes()
	s.handler = corsHandler(s.config.CORSOrigins, s.router)
}

// Handler returns the full HTTP handler, CORS included.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on l until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:        s.handler,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	if s.limiter != nil {
		go s.limiter.cleanupRoutine(ctx, limiterCleanupInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", "address", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return <-errCh
}

// ListenAndServe listens on the configured address.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Address, err)
	}
	return s.Serve(ctx, l)
}
