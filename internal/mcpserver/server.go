// Package mcpserver exposes the engine as Model Context Protocol tools
// served over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/papapumpkin/steer/internal/engine"
	"github.com/papapumpkin/steer/internal/logging"
)

// Version is reported to clients in the implementation handshake.
const Version = "0.1.0"

// Server registers the steering tools on an MCP server.
type Server struct {
	engine *engine.Engine
	mcp    *mcp.Server
	log    logrus.FieldLogger
}

// NewServer creates a server backed by e.
func NewServer(e *engine.Engine, logger logrus.FieldLogger) *Server {
	s := &Server{
		engine: e,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "steer",
				Version: Version,
			},
			nil,
		),
		log: logging.OrDiscard(logger),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.registerAnalysisTools()
	s.registerSteeringTools()
	s.registerCatalogueTools()
}

// Run serves over stdin/stdout until ctx is canceled or the client
// disconnects. Logs must go to stderr while it runs.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, &mcp.StdioTransport{})
}

// Serve serves over t.
func (s *Server) Serve(ctx context.Context, t mcp.Transport) error {
	s.log.WithField("version", Version).Info("mcp server starting")
	return s.mcp.Run(ctx, t)
}
