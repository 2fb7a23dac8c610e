package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/filmrehberi/filmrehberi/internal/pipeline"
	"github.com/filmrehberi/filmrehberi/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes movie search and Q&A tools.
type Server struct {
	store vectordb.VectorStore
	pipe  *pipeline.Pipeline
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies. The
// pipeline may be nil, in which case the ask_movies tool reports that
// a completion provider is not configured.
func NewServer(store vectordb.VectorStore, pipe *pipeline.Pipeline) *Server {
	s := &Server{
		store: store,
		pipe:  pipe,
	}

	s.mcp = server.NewMCPServer(
		"filmrehberi",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchMoviesTool, s.handleSearchMovies)
	s.mcp.AddTool(askMoviesTool, s.handleAskMovies)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
