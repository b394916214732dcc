package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/anchor/internal/graph"
	"github.com/standardbeagle/anchor/internal/types"
)

func fixtureGraph() *graph.Graph {
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
		{
			Path: "src/main.rs",
			Symbols: []types.ExtractedSymbol{
				{Name: "main", Kind: types.NodeFunction, LineStart: 1, LineEnd: 1, CodeSnippet: "fn main(){mul(1,2);}"},
			},
			Calls: []types.ExtractedCall{
				{Caller: "main", Callee: "mul", Line: 1},
			},
		},
	})
	return g
}

func TestSearchSimpleModeFindsExactName(t *testing.T) {
	f := New(fixtureGraph())
	results, err := f.Search(SearchOptions{Query: "add", Mode: Simple, Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "add", results[0].Name)
}

func TestSearchStructuredModeExpandsGraph(t *testing.T) {
	f := New(fixtureGraph())
	results, err := f.Search(SearchOptions{Query: "add", Mode: Structured, Depth: 1})
	require.NoError(t, err)
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	assert.Contains(t, names, "add")
	assert.Contains(t, names, "mul")
}

func TestSearchKindFilterExcludesNonMatchingKind(t *testing.T) {
	f := New(fixtureGraph())
	results, err := f.Search(SearchOptions{Query: "add", Mode: Structured, Depth: 1, KindFilter: "Function"})
	require.NoError(t, err)
	assert.NotEmpty(t, results)
	for _, r := range results {
		assert.Equal(t, types.NodeFunction, r.Kind)
	}

	none, err := f.Search(SearchOptions{Query: "add", Mode: Structured, Depth: 1, KindFilter: "Struct"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchFileFilterRestrictsToMatchingPath(t *testing.T) {
	f := New(fixtureGraph())
	results, err := f.Search(SearchOptions{Query: "mul", Mode: Structured, Depth: 1, FileFilter: "lib.rs"})
	require.NoError(t, err)
	for _, r := range results {
		assert.Contains(t, r.FilePath, "lib.rs")
	}

	none, err := f.Search(SearchOptions{Query: "mul", Mode: Structured, Depth: 1, FileFilter: "nonexistent.rs"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchPatternFilterRestrictsToMatchingNames(t *testing.T) {
	f := New(fixtureGraph())
	results, err := f.Search(SearchOptions{Query: "main", Mode: Structured, Depth: 1, Pattern: "^m"})
	require.NoError(t, err)
	for _, r := range results {
		assert.Regexp(t, "^m", r.Name)
	}

	_, err = f.Search(SearchOptions{Query: "main", Mode: Simple, Limit: 10, Pattern: "("})
	assert.Error(t, err)
}

func TestDependenciesReturnsBothDirections(t *testing.T) {
	f := New(fixtureGraph())
	deps := f.Dependencies("mul")

	var depNames, dependentNames []string
	for _, d := range deps.Dependencies {
		depNames = append(depNames, d.Name)
	}
	for _, d := range deps.Dependents {
		dependentNames = append(dependentNames, d.Name)
	}
	assert.Contains(t, depNames, "add")
	assert.Contains(t, dependentNames, "main")
}

func TestStatsReflectsFixture(t *testing.T) {
	f := New(fixtureGraph())
	s := f.Stats()
	assert.Equal(t, 2, s.FileCount)
	assert.Equal(t, 3, s.SymbolCount)
}

func TestFileSymbolsFindsMatchingFile(t *testing.T) {
	f := New(fixtureGraph())
	res := f.FileSymbols("lib.rs")
	require.True(t, res.Found)
	assert.Equal(t, "src/lib.rs", res.File)
	names := make([]string, 0, len(res.Symbols))
	for _, s := range res.Symbols {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"add", "mul"}, names)
}

func TestFileSymbolsUnknownFileReturnsNotFound(t *testing.T) {
	f := New(fixtureGraph())
	res := f.FileSymbols("nope.rs")
	assert.False(t, res.Found)
	assert.Empty(t, res.Symbols)
}

func TestGetContextUnknownSymbolReturnsNotFound(t *testing.T) {
	f := New(fixtureGraph())
	ctx := f.GetContext("missing", "understand")
	assert.False(t, ctx.Found)
}

func TestGetContextUnderstandIncludesFileSymbols(t *testing.T) {
	f := New(fixtureGraph())
	ctx := f.GetContext("add", "understand")
	require.True(t, ctx.Found)
	assert.Equal(t, "add", ctx.Result.Name)

	names := make([]string, 0, len(ctx.FileSymbols))
	for _, s := range ctx.FileSymbols {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"add", "mul"}, names)
	assert.Empty(t, ctx.Connections)
	assert.Empty(t, ctx.Dependents)
	assert.Empty(t, ctx.Siblings)
}

func TestGetContextUnknownIntentFallsBackToUnderstand(t *testing.T) {
	f := New(fixtureGraph())
	ctx := f.GetContext("add", "bogus-intent")
	require.True(t, ctx.Found)
	assert.NotEmpty(t, ctx.FileSymbols)
}

func TestGetContextExploreAddsOneHopConnections(t *testing.T) {
	f := New(fixtureGraph())
	ctx := f.GetContext("add", "explore")
	require.True(t, ctx.Found)
	assert.NotEmpty(t, ctx.FileSymbols)
	require.NotEmpty(t, ctx.Connections)

	found := false
	for _, c := range ctx.Connections {
		if c.From == "mul" && c.To == "add" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGetContextChangeAddsDependents(t *testing.T) {
	f := New(fixtureGraph())
	ctx := f.GetContext("mul", "change")
	require.True(t, ctx.Found)
	assert.NotEmpty(t, ctx.FileSymbols)
	require.NotEmpty(t, ctx.Dependents)

	found := false
	for _, d := range ctx.Dependents {
		if d.Name == "main" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGetContextCreateAddsSiblingsExcludingSelf(t *testing.T) {
	f := New(fixtureGraph())
	ctx := f.GetContext("add", "create")
	require.True(t, ctx.Found)
	require.Len(t, ctx.Siblings, 1)
	assert.Equal(t, "mul", ctx.Siblings[0].Name)
	assert.Empty(t, ctx.FileSymbols)
}
