package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/anchor/internal/query"
)

type searchParams struct {
	Query      string `json:"query"`
	Structured bool   `json:"structured"`
	Depth      int    `json:"depth"`
	Limit      int    `json:"limit"`
	Kind       string `json:"kind"`
	File       string `json:"file"`
	Pattern    string `json:"pattern"`
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p searchParams
	if err := json.Unmarshal(req.Params.Arguments, &p); err != nil {
		return errorResult("anchor_search", fmt.Errorf("invalid parameters: %w", err))
	}
	if p.Query == "" {
		return errorResult("anchor_search", fmt.Errorf("query is required"))
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Depth <= 0 {
		p.Depth = 1
	}

	mode := query.Simple
	if p.Structured {
		mode = query.Structured
	}

	results, err := s.facade.Search(query.SearchOptions{
		Query:      p.Query,
		Mode:       mode,
		Depth:      p.Depth,
		Limit:      p.Limit,
		KindFilter: p.Kind,
		FileFilter: p.File,
		Pattern:    p.Pattern,
	})
	if err != nil {
		return errorResult("anchor_search", fmt.Errorf("invalid pattern: %w", err))
	}

	return jsonResult(map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}

type dependenciesParams struct {
	Name string `json:"name"`
}

func (s *Server) handleDependencies(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p dependenciesParams
	if err := json.Unmarshal(req.Params.Arguments, &p); err != nil {
		return errorResult("anchor_dependencies", fmt.Errorf("invalid parameters: %w", err))
	}
	if p.Name == "" {
		return errorResult("anchor_dependencies", fmt.Errorf("name is required"))
	}

	return jsonResult(s.facade.Dependencies(p.Name))
}

func (s *Server) handleStats(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.facade.Stats())
}

type fileSymbolsParams struct {
	File string `json:"file"`
}

func (s *Server) handleFileSymbols(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p fileSymbolsParams
	if err := json.Unmarshal(req.Params.Arguments, &p); err != nil {
		return errorResult("anchor_file_symbols", fmt.Errorf("invalid parameters: %w", err))
	}
	if p.File == "" {
		return errorResult("anchor_file_symbols", fmt.Errorf("file is required"))
	}

	return jsonResult(s.facade.FileSymbols(p.File))
}
