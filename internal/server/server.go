package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alkime/blogsmith/internal/archive"
	"github.com/alkime/blogsmith/internal/clipboard"
	"github.com/alkime/blogsmith/internal/config"
	"github.com/alkime/blogsmith/internal/session"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// Deps are the collaborators a Server shares across sessions.
type Deps struct {
	// Archive backs /api/v1/history. Nil disables it.
	Archive *archive.Store
	// Clock drives session timers and reaping. Nil uses the wall clock.
	Clock session.Clock
	// Events receives every session event.
	Events chan<- session.Event
}

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	router   *gin.Engine
	sessions *sessionStore
	archive  *archive.Store
}

// New creates a new Server instance
func New(cfg *config.Config, logger *slog.Logger, deps Deps) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Configure proxy trust for production (Fly.io)
	if cfg.IsProduction() {
		router.TrustedPlatform = gin.PlatformFlyIO
		logger.Debug("Configured trusted platform", "platform", "fly.io")
	}

	clock := deps.Clock
	if clock == nil {
		clock = session.SystemClock{}
	}

	server := &Server{
		config:  cfg,
		logger:  logger,
		router:  router,
		archive: deps.Archive,
	}

	server.sessions = newSessionStore(cfg.SessionTTL, clock.Now, func() *session.Session {
		return session.New(session.Config{
			Latency:         cfg.GenerationLatency,
			ClipboardWindow: cfg.ClipboardWindow,
			Clock:           clock,
			Clipboard:       &clipboard.Memory{},
			Events:          deps.Events,
			Logger:          logger,
		})
	})

	router.Use(requestID(), requestLogger(logger), instrument())
	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Reap drops sessions idle for longer than SESSION_TTL.
func (s *Server) Reap() int {
	n := s.sessions.Reap()
	if n > 0 {
		s.logger.Info("Reaped idle sessions", "count", n)
	}
	return n
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, s *Server) error {
	srv := &http.Server{
		Addr:              ":" + s.config.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.reapLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "port", s.config.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.sessions.CloseAll()
	if err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

func (s *Server) reapLoop(ctx context.Context) {
	interval := s.config.SessionTTL / 2
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Reap()
		}
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api/v1")
	{
		api.GET("/tones", s.handleTones)
		api.GET("/history", s.handleHistory)

		sessions := api.Group("/sessions")
		sessions.POST("", s.handleCreateSession)
		sessions.GET("/:id", s.handleGetSession)
		sessions.DELETE("/:id", s.handleDeleteSession)
		sessions.POST("/:id/generate", s.handleGenerate)
		sessions.POST("/:id/copy", s.handleCopy)
		sessions.GET("/:id/download", s.handleDownload)
		sessions.GET("/:id/preview", s.handlePreview)
		sessions.POST("/:id/reset", s.handleReset)
	}

	// Static front-end as the fallback; NoRoute only fires when nothing
	// above matched.
	s.router.NoRoute(static.Serve("/", static.LocalFile(s.config.PublicDir, false)), s.handleNotFound)
}
