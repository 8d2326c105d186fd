// Package mcp exposes plan generation to editors and coding agents over
// the Model Context Protocol.
//
// The server speaks MCP over stdio and calls the internal services
// directly. Registered tools: generate_plan, plan_history,
// workspace_context.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/plannerd/internal/history"
	"github.com/fyrsmithlabs/plannerd/internal/planner"
	"github.com/fyrsmithlabs/plannerd/internal/workspace"
)

// Server is the MCP front end of the planning pipeline.
type Server struct {
	mcp        *mcp.Server
	plannerSvc *planner.Service
	historySvc history.Store
	local      *workspace.Local
	logger     *zap.Logger
}

// Config configures the MCP server.
type Config struct {
	// Name is the server implementation name (default: "plannerd").
	Name string

	// Version is the server version (default: "dev").
	Version string

	// Logger for structured logging.
	Logger *zap.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:    "plannerd",
		Version: "dev",
		Logger:  zap.NewNop(),
	}
}

// NewServer creates an MCP server over the given services. The local
// workspace carries the active document between tool calls.
func NewServer(cfg *Config, plannerSvc *planner.Service, historySvc history.Store, local *workspace.Local) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if plannerSvc == nil {
		return nil, fmt.Errorf("planner service is required")
	}
	if historySvc == nil {
		return nil, fmt.Errorf("history store is required")
	}
	if local == nil {
		return nil, fmt.Errorf("local workspace is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		},
		nil,
	)

	s := &Server{
		mcp:        mcpServer,
		plannerSvc: plannerSvc,
		historySvc: historySvc,
		local:      local,
		logger:     cfg.Logger,
	}
	s.registerTools()
	return s, nil
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server on stdio")
	transport := &mcp.StdioTransport{}
	if err := s.mcp.Run(ctx, transport); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

// historyKey derives the history grouping key for the current workspace.
func (s *Server) historyKey() string {
	if root, ok := s.local.Root(); ok {
		return root
	}
	return "default"
}
