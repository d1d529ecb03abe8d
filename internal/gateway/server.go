// Package gateway implements the HTTP surface: GET /health, POST /ask and the
// JSON 404/405 fallbacks.
package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/drpaneas/askgate/internal/llm"
	"github.com/drpaneas/askgate/internal/metrics"
)

// Options configures a Server.
type Options struct {
	Provider     llm.Provider
	DefaultModel string
	ServiceName  string
	// Metrics may be nil.
	Metrics *metrics.Metrics
}

// Server routes requests to the gateway handlers. It holds no mutable state
// and is safe for concurrent use.
type Server struct {
	router       chi.Router
	provider     llm.Provider
	defaultModel string
	serviceName  string
	metrics      *metrics.Metrics
}

// New creates a Server with its routes and middleware installed.
func New(opts Options) *Server {
	s := &Server{
		provider:     opts.Provider,
		defaultModel: opts.DefaultModel,
		serviceName:  opts.ServiceName,
		metrics:      opts.Metrics,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(recoverJSON)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         3600,
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/ask", s.handleAsk)

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	s.router = r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
