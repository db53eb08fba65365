package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/folioworks/folio/pkg/folio"
	"github.com/folioworks/folio/pkg/folio/api"
	"github.com/folioworks/folio/pkg/folio/config"
)

// httpTuning holds HTTP server timeouts, read straight from the environment
type httpTuning struct {
	ReadHeaderTimeout time.Duration `env:"SERVER_READ_HEADER_TIMEOUT" env-default:"5s"`
	ReadTimeout       time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout      time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"65s"`
	IdleTimeout       time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"120s"`
	ShutdownTimeout   time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	serverConfig, err := config.Load(config.WithEnv(""))
	if err != nil {
		log.Fatalf("Failed to load server configuration: %v", err)
	}

	var tuning httpTuning
	if err := cleanenv.ReadEnv(&tuning); err != nil {
		log.Fatalf("Failed to read server tuning: %v", err)
	}

	if serverConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	svc, err := serverConfig.BuildService()
	if err != nil {
		log.Fatalf("Failed to build service: %v", err)
	}

	server := NewHTTPServer(svc, serverConfig)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", serverConfig.Port),
		Handler:           server.Routes(),
		ReadHeaderTimeout: tuning.ReadHeaderTimeout,
		ReadTimeout:       tuning.ReadTimeout,
		WriteTimeout:      tuning.WriteTimeout,
		IdleTimeout:       tuning.IdleTimeout,
	}

	go func() {
		log.Printf("Folio server starting on port %s (env: %s)", serverConfig.Port, serverConfig.Environment)
		log.Printf("Database: %s", serverConfig.DatabaseType)
		log.Printf("Default media store: %s", serverConfig.DefaultMediaStore)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), tuning.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// HTTPServer wraps the folio service for HTTP access
type HTTPServer struct {
	service folio.Service
	config  *config.ServerConfig
	auth    *api.Auth
}

// NewHTTPServer creates a new HTTP server wrapper
func NewHTTPServer(service folio.Service, serverConfig *config.ServerConfig) *HTTPServer {
	return &HTTPServer{
		service: service,
		config:  serverConfig,
		auth:    api.NewAuth([]byte(serverConfig.JWTSecret)),
	}
}

// Routes sets up the HTTP routes
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS for development
	if s.config.Environment == "development" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

				if r.Method == "OPTIONS" {
					w.WriteHeader(http.StatusOK)
					return
				}

				next.ServeHTTP(w, r)
			})
		})
	}

	// Health check
	r.Get("/health", s.handleHealth)

	// Public portfolio pages
	r.Mount("/p", api.NewPortfolioHandler(s.service).Routes())

	// Dashboard API, owner token required
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.auth.Verifier())
		r.Use(s.auth.Authenticator())

		r.Mount("/sections", api.NewSectionHandler(s.service).Routes())
		r.Mount("/profile", api.NewProfileHandler(s.service).Routes())
		r.Mount("/media", api.NewMediaHandler(s.service).Routes())
	})

	return r
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":      "ok",
		"environment": s.config.Environment,
	})
}
