// Package mcp exposes the MTB file validator as a single Model Context
// Protocol tool, so an LLM agent can submit a file and get back either
// the accepted file or its structured issue list.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/CCC-MF/mtb-validator/internal/catalog"
	"github.com/CCC-MF/mtb-validator/internal/domain"
)

// Server wraps the MCP SDK server with the validator's single tool.
type Server struct {
	mcpServer *mcp.Server
	logger    *logrus.Logger
}

// NewServer creates an MCP server exposing validate_mtb_file, backed
// by catalogs for code-membership lookups.
func NewServer(cfg domain.MCPConfig, catalogs catalog.Catalogs, logger *logrus.Logger) *Server {
	impl := &mcp.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}

	mcpServer := mcp.NewServer(impl, nil)
	mcpServer.AddTool(validateMTBFileTool(), validateMTBFileHandler(catalogs, logger))

	return &Server{mcpServer: mcpServer, logger: logger}
}

// Start runs the server over stdio until ctx is cancelled or the
// client closes the connection.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting MTB file validator MCP server over stdio")
	return s.mcpServer.Run(ctx, mcp.NewStdioTransport())
}
