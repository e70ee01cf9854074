package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/notify"
	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	redis       *redis.Client
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService

	users        *UserService
	applications *ApplicationService

	userStore  UserStore
	jobs       JobStore
	companies  CompanyStore
	categories CategoryStore
	settings   SettingsStore
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	RedisAddr   string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	appConfig, err := config.NewAppConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}
	if cfg.DatabaseURL != "" {
		appConfig.DatabaseURL = cfg.DatabaseURL
	}
	if cfg.RedisAddr != "" {
		appConfig.RedisAddr = cfg.RedisAddr
	}
	if appConfig.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required: set DATABASE_URL or Config.DatabaseURL")
	}

	database, err := db.Connect(context.Background(), appConfig.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:         database,
		userStore:  database,
		jobs:       database,
		companies:  database,
		categories: database,
		settings:   database,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.users = NewUserService(database, s.jwtService, passwordConfig)

	if appConfig.RedisAddr != "" {
		s.redis = redis.NewClient(&redis.Options{Addr: appConfig.RedisAddr})
	}
	limiter := NewAppLimiter(s.redis, appConfig.ApplicationDailyLimit, database)
	s.applications = NewApplicationService(database, database, database, limiter, notify.LogDispatcher{})

	mux := http.NewServeMux()
	s.routes(mux)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes registers all HTTP endpoints on the mux.
func (s *Server) routes(mux *http.ServeMux) {
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	seeker := middleware.RequireRole(db.RoleJobSeeker)
	employer := middleware.RequireRole(db.RoleEmployer, db.RoleAdmin)
	admin := middleware.RequireRole(db.RoleAdmin)

	authed := func(h http.HandlerFunc) http.Handler { return auth(h) }
	asSeeker := func(h http.HandlerFunc) http.Handler { return auth(seeker(h)) }
	asEmployer := func(h http.HandlerFunc) http.Handler { return auth(employer(h)) }
	asAdmin := func(h http.HandlerFunc) http.Handler { return auth(admin(h)) }

	mux.HandleFunc("GET /health", s.handleHealth)

	// Auth endpoints
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("GET /auth/me", authed(s.handleMe))
	mux.Handle("PATCH /auth/me/preferences", authed(s.handleUpdatePreferences))

	// Public catalog endpoints
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("GET /categories", s.handleListCategories)
	mux.HandleFunc("GET /companies/{id}", s.handleGetCompany)
	mux.HandleFunc("GET /companies/{id}/reviews", s.handleListCompanyReviews)

	// Employer job management. DELETE is a soft close, not a row delete.
	mux.Handle("POST /jobs", asEmployer(s.handleCreateJob))
	mux.Handle("PUT /jobs/{id}", asEmployer(s.handleUpdateJob))
	mux.Handle("DELETE /jobs/{id}", asEmployer(s.handleCloseJob))
	mux.Handle("GET /employer/jobs", asEmployer(s.handleListMyJobs))
	mux.Handle("POST /companies", asEmployer(s.handleCreateCompany))

	// Application lifecycle
	mux.Handle("POST /jobs/{id}/apply", asSeeker(s.handleSubmitApplication))
	mux.Handle("GET /jobs/{id}/applications", asEmployer(s.handleListJobApplications))
	mux.Handle("GET /applications", asSeeker(s.handleListMyApplications))
	mux.Handle("GET /applications/{id}", authed(s.handleGetApplication))
	mux.Handle("PATCH /applications/{id}/status", asEmployer(s.handleChangeApplicationStatus))
	mux.Handle("POST /applications/{id}/interview", asEmployer(s.handleScheduleInterview))
	mux.Handle("POST /applications/{id}/withdraw", asSeeker(s.handleWithdrawApplication))

	// Reviews
	mux.Handle("POST /companies/{id}/reviews", asSeeker(s.handleReviewCompany))

	// Admin endpoints
	mux.Handle("GET /admin/users", asAdmin(s.handleAdminListUsers))
	mux.Handle("PATCH /admin/users/{id}", asAdmin(s.handleAdminModerateUser))
	mux.Handle("PATCH /admin/jobs/{id}", asAdmin(s.handleAdminModerateJob))
	mux.Handle("POST /admin/categories", asAdmin(s.handleAdminCreateCategory))
	mux.Handle("GET /admin/settings", asAdmin(s.handleAdminGetSettings))
	mux.Handle("PUT /admin/settings", asAdmin(s.handleAdminUpdateSettings))
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("failed to close redis client: %v", err)
		}
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// extractClientID extracts the client identifier from the request.
// Uses the IP address from RemoteAddr; X-Forwarded-For is deliberately
// ignored until trusted proxy support lands.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	jsonResponse(w, http.StatusTooManyRequests, response)
}
