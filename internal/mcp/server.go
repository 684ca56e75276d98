// Package mcp exposes archive scanning, threshold selection, validation,
// and extraction as Model Context Protocol tools.
package mcp

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/unpackrr/unpackrr/internal/bsarch"
	"github.com/unpackrr/unpackrr/internal/config"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	// Settings is the configuration snapshot applied to every tool call.
	Settings config.Settings
	// BSArchPath locates the external archive tool. Tools that need it
	// fail per-call when it is empty.
	BSArchPath string
}

// Server wraps the MCP server with the archive toolset.
type Server struct {
	mcpServer *mcp.Server
	settings  config.Settings
	runner    *bsarch.Runner
}

// NewServer creates an MCP server exposing the archive tools.
func NewServer(cfg ServerConfig, version string) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "unpackrr",
		Version: version,
	}, nil)

	s := &Server{
		mcpServer: mcpServer,
		settings:  cfg.Settings,
	}
	if cfg.BSArchPath != "" {
		s.runner = bsarch.New(cfg.BSArchPath)
	}

	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "scan_archives",
		Description: "Scan a mod folder for BA2 archives and return the size-sorted inventory with succeeded/failed/ignored counts.",
	}, s.handleScan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "suggest_threshold",
		Description: "Compute the extraction size threshold that keeps the number of active BA2 archives under the game's limit (235 by default).",
	}, s.handleThreshold)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "check_archives",
		Description: "Validate every BA2 archive under a mod folder with BSArch, either quickly (list contents) or deeply (full extraction into a scratch directory).",
	}, s.handleCheck)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "extract_archives",
		Description: "Extract every BA2 archive at or below a size threshold, then back up or delete each extracted archive per the configured policy.",
	}, s.handleExtract)
}

// RunStdio runs the server using stdio transport.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// NewHTTPHandler creates an HTTP handler for SSE transport.
func (s *Server) NewHTTPHandler() http.Handler {
	return mcp.NewSSEHandler(func(req *http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
}

// NewStreamableHTTPHandler creates a streamable HTTP handler.
func (s *Server) NewStreamableHTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
}
