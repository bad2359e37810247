// Package http exposes the router over a JSON HTTP API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/taskroute/internal/presentation/graph"
	"github.com/aretw0/taskroute/internal/sanitize"
	"github.com/aretw0/taskroute/pkg/domain"
	"github.com/aretw0/taskroute/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxBodyBytes bounds the JSON envelope; field sizes are checked separately.
const maxBodyBytes = 1 << 20

// Router is the routing core as seen by the HTTP API.
type Router interface {
	Route(ctx context.Context, task, input string) (*domain.Response, error)
	Inspect() []domain.Node
}

// RunRequest is the body of POST /run.
type RunRequest struct {
	Task  *string `json:"task"`
	Input *string `json:"input"`
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server holds the handler dependencies.
type Server struct {
	router       Router
	logger       *slog.Logger
	maxInputSize int
	version      string
	metrics      *observability.Metrics
	gatherer     prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxInputSize sets the byte limit for task and input.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.maxInputSize = n
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithMetrics records HTTP metrics and serves g at /metrics.
// A nil gatherer records metrics without exposing the endpoint.
func WithMetrics(m *observability.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// NewHandler creates a new HTTP handler for the router.
func NewHandler(router Router, opts ...Option) http.Handler {
	s := &Server{
		router:       router,
		logger:       slog.New(slog.DiscardHandler),
		maxInputSize: sanitize.DefaultMaxInputSize,
		version:      "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(s.logger, s.metrics))

	r.Get("/healthz", s.GetHealth)
	r.Post("/run", s.Run)
	r.Get("/graph", s.GetGraph)
	r.Get("/graph/mermaid", s.GetGraphMermaid)
	r.Get("/info", s.GetInfo)

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawOpenAPI)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return otelhttp.NewHandler(enableCORS(r), "taskroute.http")
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>taskroute API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// Run handles the POST /run request.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn("Run: Invalid request body", "err", err)
		return
	}
	if body.Task == nil || body.Input == nil {
		s.writeError(w, http.StatusBadRequest, "Both 'task' and 'input' are required")
		return
	}

	// Sanitize Input (Global Policy)
	task, err := sanitize.Input(*body.Task, s.maxInputSize)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid task: "+err.Error())
		s.logger.Warn("Run: Task rejected", "err", err, "size", len(*body.Task))
		return
	}
	input, err := sanitize.Input(*body.Input, s.maxInputSize)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid input: "+err.Error())
		s.logger.Warn("Run: Input rejected", "err", err, "size", len(*body.Input))
		return
	}

	resp, err := s.router.Route(r.Context(), task, input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrGenerator) {
			status = http.StatusBadGateway
		}
		s.writeError(w, status, err.Error())
		s.logger.Error("Run failed", "err", err, "request_id", w.Header().Get(RequestIDHeader))
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// GetGraph handles the GET /graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.router.Inspect())
}

// GetGraphMermaid handles the GET /graph/mermaid request.
func (s *Server) GetGraphMermaid(w http.ResponseWriter, r *http.Request) {
	nodes := s.router.Inspect()

	var overlay *graph.GraphOverlay
	if agent := r.URL.Query().Get("agent"); agent != "" {
		overlay = graph.RouteOverlay(nodes, agent)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(nodes, overlay))
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	} else if err != nil {
		s.logger.Error("Failed to load OpenAPI document", "err", err)
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "taskroute-http",
		"version":     s.version,
		"api_version": apiVersion,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}
