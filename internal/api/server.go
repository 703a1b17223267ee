package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Wojteg799/SQL-Exercises-App/internal/catalog"
	"github.com/Wojteg799/SQL-Exercises-App/internal/config"
	"github.com/Wojteg799/SQL-Exercises-App/internal/sandbox"
)

// Server represents the HTTP API server
type Server struct {
	config  config.ServerConfig
	router  *chi.Mux
	catalog *catalog.Loader
	sandbox *sandbox.Manager
}

// NewServer creates a new API server
func NewServer(cfg config.ServerConfig, loader *catalog.Loader, manager *sandbox.Manager) *Server {
	s := &Server{
		config:  cfg,
		catalog: loader,
		sandbox: manager,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration (the browser front-end may be served elsewhere)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	// Exercise API
	r.Route("/api", func(r chi.Router) {
		r.Get("/exercises", s.handleListExercises)
		r.Get("/task/{folderId}/{taskId}", s.handleGetTask)
		r.Post("/execute", s.handleExecute)
		r.Post("/verify", s.handleVerify)
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
