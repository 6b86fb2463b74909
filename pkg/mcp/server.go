// Package mcp exposes the auditor over the Model Context Protocol so
// editor agents can audit files and directories without shelling out.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/renderaudit/pkg/audit"
	"github.com/gnana997/renderaudit/pkg/mcplog"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server for renderaudit, exposing audit and
// rule-catalog tools.
type Server struct {
	mcpServer *server.MCPServer
	auditor   *audit.Auditor
	cache     *audit.ReportCache
	cfg       audit.Config
	logger    *mcplog.Logger // nil when tool-call logging is disabled
}

// NewServer creates an MCP server backed by the given auditor. The cache
// is optional; when present, repeat audit_file calls on unchanged files are
// served from it. logger may be nil.
func NewServer(auditor *audit.Auditor, cache *audit.ReportCache, cfg audit.Config, logger *mcplog.Logger) *Server {
	s := &Server{auditor: auditor, cache: cache, cfg: cfg, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("renderaudit", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: auditFileTool(), Handler: s.handleAuditFile},
		server.ServerTool{Tool: auditDirectoryTool(), Handler: s.handleAuditDirectory},
		server.ServerTool{Tool: listRulesTool(), Handler: s.handleListRules},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
