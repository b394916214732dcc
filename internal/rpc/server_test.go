package rpc

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/anchor/internal/graph"
	"github.com/standardbeagle/anchor/internal/query"
	"github.com/standardbeagle/anchor/internal/types"
)

func fixtureServer() *Server {
	g := graph.New()
	g.BuildFromExtractions([]types.FileExtractions{
		{
			Path: "src/lib.rs",
			Symbols: []types.ExtractedSymbol{
				{Name: "add", Kind: types.NodeFunction, LineStart: 1, LineEnd: 1, CodeSnippet: "fn add(a:i32,b:i32)->i32{a+b}"},
				{Name: "mul", Kind: types.NodeFunction, LineStart: 2, LineEnd: 2, CodeSnippet: "fn mul(a:i32,b:i32)->i32{add(a,b)}"},
			},
			Calls: []types.ExtractedCall{
				{Caller: "mul", Callee: "add", Line: 2},
			},
		},
	})
	return NewServer(query.New(g))
}

func callTool(t *testing.T, s *Server, tool string, args interface{}) (*mcp.CallToolResult, error) {
	t.Helper()
	body, err := json.Marshal(args)
	require.NoError(t, err)
	handler := s.HandlerForTesting(tool)
	require.NotNil(t, handler, "no handler registered for %s", tool)
	return handler(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: body},
	})
}

func decodeText(t *testing.T, res *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out
}

func TestHandleSearchReturnsMatch(t *testing.T) {
	s := fixtureServer()
	res, err := callTool(t, s, "anchor_search", map[string]interface{}{"query": "add"})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	body := decodeText(t, res)
	assert.Equal(t, float64(1), body["count"])
}

func TestHandleSearchMissingQueryIsError(t *testing.T) {
	s := fixtureServer()
	res, err := callTool(t, s, "anchor_search", map[string]interface{}{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleSearchPatternFiltersResults(t *testing.T) {
	s := fixtureServer()
	res, err := callTool(t, s, "anchor_search", map[string]interface{}{"query": "mul", "structured": true, "pattern": "^add$"})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	body := decodeText(t, res)
	assert.Equal(t, float64(1), body["count"])
}

func TestHandleSearchInvalidPatternIsError(t *testing.T) {
	s := fixtureServer()
	res, err := callTool(t, s, "anchor_search", map[string]interface{}{"query": "add", "pattern": "("})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleDependenciesReturnsBothDirections(t *testing.T) {
	s := fixtureServer()
	res, err := callTool(t, s, "anchor_dependencies", map[string]interface{}{"name": "mul"})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	body := decodeText(t, res)
	deps, ok := body["dependencies"].([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, deps)
}

func TestHandleStatsReturnsIntegerFileCount(t *testing.T) {
	s := fixtureServer()
	res, err := callTool(t, s, "anchor_stats", map[string]interface{}{})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	var stats struct {
		FileCount int `json:"file_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &stats))
	assert.Equal(t, 1, stats.FileCount)
}

func TestHandleFileSymbolsFindsFile(t *testing.T) {
	s := fixtureServer()
	res, err := callTool(t, s, "anchor_file_symbols", map[string]interface{}{"file": "lib.rs"})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	body := decodeText(t, res)
	assert.Equal(t, true, body["found"])
}

func TestHandlerForTestingUnknownToolReturnsNil(t *testing.T) {
	s := fixtureServer()
	assert.Nil(t, s.HandlerForTesting("not_a_tool"))
}
