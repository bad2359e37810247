// Package mcp exposes the router as a Model Context Protocol server.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/taskroute/internal/presentation/graph"
	"github.com/aretw0/taskroute/internal/sanitize"
	"github.com/aretw0/taskroute/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// Resource URIs.
const (
	GraphURI        = "taskroute://graph"
	GraphMermaidURI = "taskroute://graph/mermaid"
)

// ErrMissingArgument is returned when a required tool argument is absent.
var ErrMissingArgument = errors.New("missing argument")

// Router is the routing core as seen by the MCP server.
type Router interface {
	Route(ctx context.Context, task, input string) (*domain.Response, error)
	Inspect() []domain.Node
}

// RouteArgs are the arguments of the route tool.
type RouteArgs struct {
	Task  string `mapstructure:"task"`
	Input string `mapstructure:"input"`
}

// RouteResult aligns with the HTTP /run response.
type RouteResult struct {
	Agent  string `json:"agent" jsonschema_description:"The agent the task was routed to"`
	Input  string `json:"input" jsonschema_description:"The input the agent worked on"`
	Result string `json:"result" jsonschema_description:"The agent's output"`
}

// Server wraps the Router and exposes it as an MCP Server.
type Server struct {
	router       Router
	logger       *slog.Logger
	maxInputSize int
	mcpServer    *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
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

// NewServer creates a new MCP Server instance.
func NewServer(router Router, version string, opts ...Option) *Server {
	s := &Server{
		router:       router,
		logger:       slog.New(slog.DiscardHandler),
		maxInputSize: sanitize.DefaultMaxInputSize,
		mcpServer:    server.NewMCPServer("taskroute-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves SSE on the given port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: route
	routeTool := mcp.NewTool("route",
		mcp.WithDescription("Classify a task as translate, summarize or calculate and run the matching agent on the input."),
		mcp.WithString("task", mcp.Required(), mcp.Description("What the user wants done")),
		mcp.WithString("input", mcp.Required(), mcp.Description("The text or expression to work on")),
		mcp.WithOutputSchema[RouteResult](),
	)
	s.mcpServer.AddTool(routeTool, mcp.NewStructuredToolHandler(s.handleRoute))

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the routing graph as Mermaid flowchart source."),
		mcp.WithString("agent", mcp.Description("Highlight the route taken for this agent (optional)")),
	), s.handleGetGraph)
}

func (s *Server) handleRoute(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (RouteResult, error) {
	var in RouteArgs
	if err := mapstructure.Decode(args, &in); err != nil {
		return RouteResult{}, fmt.Errorf("invalid arguments: %w", err)
	}
	if _, ok := args["task"]; !ok {
		return RouteResult{}, fmt.Errorf("%w: task", ErrMissingArgument)
	}
	if _, ok := args["input"]; !ok {
		return RouteResult{}, fmt.Errorf("%w: input", ErrMissingArgument)
	}

	task, err := sanitize.Input(in.Task, s.maxInputSize)
	if err != nil {
		s.logger.Warn("MCP Route: Task rejected", "err", err, "size", len(in.Task))
		return RouteResult{}, fmt.Errorf("task rejected: %w", err)
	}
	input, err := sanitize.Input(in.Input, s.maxInputSize)
	if err != nil {
		s.logger.Warn("MCP Route: Input rejected", "err", err, "size", len(in.Input))
		return RouteResult{}, fmt.Errorf("input rejected: %w", err)
	}

	resp, err := s.router.Route(ctx, task, input)
	if err != nil {
		s.logger.Error("MCP Route failed", "err", err)
		return RouteResult{}, fmt.Errorf("route failed: %w", err)
	}

	return RouteResult{
		Agent:  resp.Agent,
		Input:  resp.Input,
		Result: resp.Result,
	}, nil
}

func (s *Server) handleGetGraph(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nodes := s.router.Inspect()

	var overlay *graph.GraphOverlay
	if agent, _ := request.GetArguments()["agent"].(string); agent != "" {
		overlay = graph.RouteOverlay(nodes, agent)
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(nodes, overlay)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: taskroute://graph
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Routing Graph",
		mcp.WithMIMEType("application/json"),
	), s.readGraph)

	// EXPOSE: taskroute://graph/mermaid
	s.mcpServer.AddResource(mcp.NewResource(GraphMermaidURI, "Routing Graph (Mermaid)",
		mcp.WithMIMEType("text/plain"),
	), s.readGraphMermaid)
}

func (s *Server) readGraph(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.router.Inspect())
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GraphURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) readGraphMermaid(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GraphMermaidURI,
			MIMEType: "text/plain",
			Text:     graph.GenerateMermaid(s.router.Inspect(), nil),
		},
	}, nil
}
