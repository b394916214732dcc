// Package rpc wires the query façade to the Model Context Protocol over
// stdio: tool registration, request handling, and the four tools AI coding
// agents use to read the graph (search, dependencies, stats, file_symbols).
package rpc

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/anchor/internal/debug"
	"github.com/standardbeagle/anchor/internal/query"
	"github.com/standardbeagle/anchor/internal/version"
)

// Server is the stdio MCP front end over a query Facade.
type Server struct {
	facade *query.Facade
	server *mcp.Server
}

// NewServer builds a Server registered with all anchor tools.
func NewServer(facade *query.Facade) *Server {
	s := &Server{facade: facade}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "anchor",
		Version: version.Version,
	}, nil)

	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "anchor_search",
		Description: "Search the code graph by symbol name or file path. Use structured mode to also pull in one or more hops of call/containment neighbors.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {
					Type:        "string",
					Description: "Symbol name, substring, or file path to search for",
				},
				"structured": {
					Type:        "boolean",
					Description: "If true, run graph-aware search with BFS expansion instead of a plain name match",
				},
				"depth": {
					Type:        "integer",
					Description: "BFS hop count for structured search (default 1)",
				},
				"limit": {
					Type:        "integer",
					Description: "Maximum results for simple search (default 20)",
				},
				"kind": {
					Type:        "string",
					Description: "Restrict results to this node kind (e.g. Function, Method, Class)",
				},
				"file": {
					Type:        "string",
					Description: "Restrict results to file paths containing this substring",
				},
				"pattern": {
					Type:        "string",
					Description: "Restrict results to symbol names matching this regexp",
				},
			},
			Required: []string{"query"},
		},
	}, s.handleSearch)

	s.server.AddTool(&mcp.Tool{
		Name:        "anchor_dependencies",
		Description: "Get a symbol's one-hop outgoing dependencies and incoming dependents.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"name": {
					Type:        "string",
					Description: "Symbol name",
				},
			},
			Required: []string{"name"},
		},
	}, s.handleDependencies)

	s.server.AddTool(&mcp.Tool{
		Name:        "anchor_stats",
		Description: "Get aggregate counters for the code graph: file count, symbol count, edge count, unique names.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}, s.handleStats)

	s.server.AddTool(&mcp.Tool{
		Name:        "anchor_file_symbols",
		Description: "List the symbols defined in a file matched by path substring.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"file": {
					Type:        "string",
					Description: "File path or substring to match",
				},
			},
			Required: []string{"file"},
		},
	}, s.handleFileSymbols)
}

// Run serves the MCP protocol over stdio until ctx is cancelled or the
// transport closes.
func (s *Server) Run(ctx context.Context) error {
	debug.LogRPC("starting MCP server over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// HandlerForTesting exposes a registered tool's handler directly, bypassing
// the protocol transport, for unit tests.
func (s *Server) HandlerForTesting(toolName string) func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	switch toolName {
	case "anchor_search":
		return s.handleSearch
	case "anchor_dependencies":
		return s.handleDependencies
	case "anchor_stats":
		return s.handleStats
	case "anchor_file_symbols":
		return s.handleFileSymbols
	default:
		return nil
	}
}
