// Package http implements the REST API for Apex Campus Hub: auth,
// profile, the focus engine, the community board and health endpoints.
package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/application/command"
	"github.com/apex-hub/apex-campus-hub/internal/application/query"
	"github.com/apex-hub/apex-campus-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SERVER CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config contains HTTP server configuration.
type Config struct {
	// Host - address to bind (default: "0.0.0.0").
	Host string

	// Port - port to listen on (default: 8080).
	Port int

	// ReadTimeout - maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout - maximum duration for writing the response.
	WriteTimeout time.Duration

	// IdleTimeout - maximum duration for idle connections.
	IdleTimeout time.Duration

	// MaxHeaderBytes - maximum size of request headers.
	MaxHeaderBytes int

	// EnableCORS - enable CORS headers.
	EnableCORS bool

	// AllowedOrigins - allowed origins for CORS.
	AllowedOrigins []string

	// RateLimitPerMinute - requests per minute per IP (0 = disabled).
	RateLimitPerMinute int

	// SecureCookies marks session cookies Secure; off for local dev.
	SecureCookies bool
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:               "0.0.0.0",
		Port:               8080,
		ReadTimeout:        15 * time.Second,
		WriteTimeout:       15 * time.Second,
		IdleTimeout:        60 * time.Second,
		MaxHeaderBytes:     1 << 20, // 1 MB
		EnableCORS:         true,
		AllowedOrigins:     []string{"*"},
		RateLimitPerMinute: 100,
	}
}

// Address returns the server address string.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// DEPENDENCIES
// ══════════════════════════════════════════════════════════════════════════════

// SessionResolver manages opaque session tokens. Implemented by the
// Redis session store.
type SessionResolver interface {
	Issue(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
	TTL() time.Duration
}

// RateLimiter limits requests per client. Implemented by the Redis
// fixed-window limiter.
type RateLimiter interface {
	Allow(ctx context.Context, identifier, action string) bool
}

// Pinger is a liveness probe for a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies contains everything the HTTP handlers call into.
type Dependencies struct {
	// Commands (CQRS write side)
	RegisterUser   *command.RegisterUserHandler
	LoginUser      *command.LoginUserHandler
	UpdateProfile  *command.UpdateProfileHandler
	AddTask        *command.AddTaskHandler
	StartTask      *command.StartTaskHandler
	CompleteTask   *command.CompleteTaskHandler
	RecordSession  *command.RecordSessionHandler
	PublishEvent   *command.PublishEventHandler
	PublishArticle *command.PublishArticleHandler
	PostListing    *command.PostListingHandler
	ResolveListing *command.ResolveListingHandler

	// Queries (CQRS read side)
	GetHome           *query.GetHomeHandler
	GetProfile        *query.GetProfileHandler
	GetDashboardStats *query.GetDashboardStatsHandler
	GetTaskBoard      *query.GetTaskBoardHandler
	GetAnalytics      *query.GetAnalyticsHandler
	GetLeaderboard    *query.GetLeaderboardHandler
	ListEvents        *query.ListEventsHandler
	GetEvent          *query.GetEventHandler
	ListArticles      *query.ListArticlesHandler
	GetArticle        *query.GetArticleHandler
	ListListings      *query.ListListingsHandler

	// Sessions and rate limiting
	Sessions    SessionResolver
	RateLimiter RateLimiter

	// Health check dependencies
	Database Pinger
	Cache    Pinger

	// Logger
	Logger *logger.Logger
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER
// ══════════════════════════════════════════════════════════════════════════════

// Server represents the HTTP server.
type Server struct {
	config     Config
	deps       Dependencies
	httpServer *http.Server
	router     *http.ServeMux
	logger     *logger.Logger

	mu        sync.RWMutex
	running   bool
	startedAt time.Time
}

// NewServer creates a new HTTP server with the given configuration and
// dependencies.
func NewServer(config Config, deps Dependencies) *Server {
	s := &Server{
		config: config,
		deps:   deps,
		router: http.NewServeMux(),
		logger: deps.Logger,
	}

	if s.logger == nil {
		s.logger = logger.Default()
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           config.Address(),
		Handler:        s.buildMiddlewareChain(s.router),
		ReadTimeout:    config.ReadTimeout,
		WriteTimeout:   config.WriteTimeout,
		IdleTimeout:    config.IdleTimeout,
		MaxHeaderBytes: config.MaxHeaderBytes,
	}

	return s
}

// ══════════════════════════════════════════════════════════════════════════════
// ROUTING
// ══════════════════════════════════════════════════════════════════════════════

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Health & Status Endpoints
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /healthz", s.handleHealth) // Kubernetes alias
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /live", s.handleLive)
	s.router.HandleFunc("GET /{$}", s.handleHome)

	// ─────────────────────────────────────────────────────────────────────────
	// API v1 - Authentication
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.router.HandleFunc("POST /api/v1/auth/logout", s.requireAuth(s.handleLogout))

	// ─────────────────────────────────────────────────────────────────────────
	// API v1 - Profile
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("GET /api/v1/profile", s.requireAuth(s.handleGetProfile))
	s.router.HandleFunc("PATCH /api/v1/profile", s.requireAuth(s.handleUpdateProfile))

	// ─────────────────────────────────────────────────────────────────────────
	// API v1 - Focus Engine
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("GET /api/v1/focus/dashboard", s.requireAuth(s.handleDashboard))
	s.router.HandleFunc("GET /api/v1/focus/tasks", s.requireAuth(s.handleTaskBoard))
	s.router.HandleFunc("POST /api/v1/focus/tasks", s.requireAuth(s.handleAddTask))
	s.router.HandleFunc("POST /api/v1/focus/tasks/{id}/start", s.requireAuth(s.handleStartTask))
	s.router.HandleFunc("POST /api/v1/focus/tasks/{id}/complete", s.requireAuth(s.handleCompleteTask))
	s.router.HandleFunc("POST /api/v1/focus/sessions", s.requireAuth(s.handleRecordSession))
	s.router.HandleFunc("GET /api/v1/focus/analytics", s.requireAuth(s.handleAnalytics))
	s.router.HandleFunc("GET /api/v1/focus/leaderboard", s.requireAuth(s.handleLeaderboard))

	// ─────────────────────────────────────────────────────────────────────────
	// API v1 - Community
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("GET /api/v1/community/events", s.handleListEvents)
	s.router.HandleFunc("GET /api/v1/community/events/{id}", s.handleGetEvent)
	s.router.HandleFunc("POST /api/v1/community/events", s.requireAuth(s.handlePublishEvent))
	s.router.HandleFunc("GET /api/v1/community/articles", s.handleListArticles)
	s.router.HandleFunc("GET /api/v1/community/articles/{id}", s.handleGetArticle)
	s.router.HandleFunc("POST /api/v1/community/articles", s.requireAuth(s.handlePublishArticle))
	s.router.HandleFunc("GET /api/v1/community/listings", s.handleListListings)
	s.router.HandleFunc("POST /api/v1/community/listings", s.requireAuth(s.handlePostListing))
	s.router.HandleFunc("POST /api/v1/community/listings/{id}/resolve", s.requireAuth(s.handleResolveListing))
}

// buildMiddlewareChain wraps the router with all middleware.
func (s *Server) buildMiddlewareChain(handler http.Handler) http.Handler {
	// Applied in reverse order (last middleware wraps first)
	h := handler

	h = s.requestIDMiddleware(h)
	h = s.loggingMiddleware(h)
	h = s.recoveryMiddleware(h)

	if s.config.EnableCORS {
		h = s.corsMiddleware(h)
	}

	if s.deps.RateLimiter != nil && s.config.RateLimitPerMinute > 0 {
		h = s.rateLimitMiddleware(h)
	}

	return h
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER LIFECYCLE
// ══════════════════════════════════════════════════════════════════════════════

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.running = true
	s.startedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info("starting HTTP server", logger.String("address", s.config.Address()))

	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Uptime returns the server uptime.
func (s *Server) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return 0
	}
	return time.Since(s.startedAt)
}

// Handler returns the fully assembled handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Address returns the server address.
func (s *Server) Address() string {
	return s.config.Address()
}
