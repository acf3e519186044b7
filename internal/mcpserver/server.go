package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"seolens-mcp/internal/cache"
	"seolens-mcp/internal/config"
	"seolens-mcp/internal/mcpserver/prompts"
	"seolens-mcp/internal/mcpserver/resources"
	"seolens-mcp/internal/mcpserver/tools"
	"seolens-mcp/internal/safety"
	"seolens-mcp/internal/store"
	"seolens-mcp/internal/version"
)

type Server struct {
	cfg    config.Config
	logger *zap.Logger
	store  *store.Store
	srv    *mcp.Server
}

// New builds the MCP server and registers all tools, prompts, and resources.
// st may be nil when persistence is disabled.
func New(cfg config.Config, logger *zap.Logger, st *store.Store) (*Server, error) {
	impl := &mcp.Implementation{Name: "seolens-mcp", Version: version.Version}
	m := mcp.NewServer(impl, nil)

	deps := tools.Dependencies{
		Store:      st,
		Cache:      cache.New(),
		Logger:     logger,
		Guardrails: safety.NewGuardrails(cfg),
		Config:     cfg,
	}
	tools.Register(m, deps)
	prompts.RegisterAll(m, deps)
	resources.RegisterAll(m, deps)

	return &Server{cfg: cfg, logger: logger, store: st, srv: m}, nil
}

// Run runs the server with the provided transport (e.g., &mcp.StdioTransport{}).
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.srv.Run(ctx, transport)
}

func (s *Server) Close() {
	s.store.Close()
}
