package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/anchor/internal/types"
)

func rustAddMul() types.FileExtractions {
	return types.FileExtractions{
		Path: "src/lib.rs",
		Symbols: []types.ExtractedSymbol{
			{Name: "add", Kind: types.NodeFunction, LineStart: 1, LineEnd: 1, CodeSnippet: "fn add(a:i32,b:i32)->i32{a+b}"},
			{Name: "mul", Kind: types.NodeFunction, LineStart: 1, LineEnd: 1, CodeSnippet: "fn mul(a:i32,b:i32)->i32{add(a,b)}"},
		},
		Calls: []types.ExtractedCall{
			{Caller: "mul", Callee: "add", Line: 1},
		},
	}
}

func TestSingleFileRustExtractScenario(t *testing.T) {
	g := New()
	g.BuildFromExtractions([]types.FileExtractions{rustAddMul()})

	results := g.Search("mul", 10)
	require.Len(t, results, 1)
	require.Len(t, results[0].Calls, 1)
	assert.Equal(t, CallSite{Name: "add", FilePath: "src/lib.rs", Line: 1}, results[0].Calls[0])
}

func TestDuplicateNamesAcrossFiles(t *testing.T) {
	g := New()
	g.BuildFromExtractions([]types.FileExtractions{
		{Path: "a.rs", Symbols: []types.ExtractedSymbol{{Name: "init", Kind: types.NodeFunction, LineStart: 1, LineEnd: 1}}},
		{Path: "b.rs", Symbols: []types.ExtractedSymbol{{Name: "init", Kind: types.NodeFunction, LineStart: 1, LineEnd: 1}}},
	})

	results := g.Search("init", 10)
	assert.Len(t, results, 2)

	a, ok := g.FindQualified("a.rs", "init")
	require.True(t, ok)
	b, ok := g.FindQualified("b.rs", "init")
	require.True(t, ok)
	assert.NotEqual(t, a.FilePath, b.FilePath)
}

func TestRemoveAndSearchHidesSymbol(t *testing.T) {
	g := New()
	g.BuildFromExtractions([]types.FileExtractions{
		{Path: "auth.rs", Symbols: []types.ExtractedSymbol{{Name: "login", Kind: types.NodeFunction, LineStart: 1, LineEnd: 1}}},
	})
	g.RemoveFile("auth.rs")

	assert.Empty(t, g.Search("login", 10))
	assert.Equal(t, 0, g.Stats().SymbolCount)
}

func TestRemoveClearsIncomingCalls(t *testing.T) {
	g := New()
	g.BuildFromExtractions([]types.FileExtractions{
		{
			Path:    "main.rs",
			Symbols: []types.ExtractedSymbol{{Name: "main", Kind: types.NodeFunction, LineStart: 1, LineEnd: 1}},
			Calls:   []types.ExtractedCall{{Caller: "main", Callee: "login", Line: 1}},
		},
		{
			Path:    "auth.rs",
			Symbols: []types.ExtractedSymbol{{Name: "login", Kind: types.NodeFunction, LineStart: 1, LineEnd: 1}},
		},
	})

	g.RemoveFile("main.rs")

	results := g.Search("login", 10)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].CalledBy)
}

func TestCompactPreservesSearchAndStats(t *testing.T) {
	g := New()
	var extractions []types.FileExtractions
	for i := 0; i < 20; i++ {
		path := "pkg/file.rs"
		if i%2 == 0 {
			path = "pkg/evenfile.rs"
		}
		extractions = append(extractions, types.FileExtractions{
			Path: path,
			Symbols: []types.ExtractedSymbol{
				{Name: "fn" + string(rune('a'+i)), Kind: types.NodeFunction, LineStart: 1, LineEnd: 1},
			},
		})
	}
	g.BuildFromExtractions(extractions)
	g.RemoveFile("pkg/evenfile.rs")

	beforeStats := g.Stats()
	beforeSearch := g.Search("fn", 50)

	g.Compact()

	assert.Equal(t, beforeStats, g.Stats())
	assert.ElementsMatch(t, beforeSearch, g.Search("fn", 50))
}

func TestResurrectAfterRemoveAndReadd(t *testing.T) {
	g := New()
	fe := types.FileExtractions{
		Path:    "auth.rs",
		Symbols: []types.ExtractedSymbol{{Name: "login", Kind: types.NodeFunction, LineStart: 1, LineEnd: 1}},
	}
	g.BuildFromExtractions([]types.FileExtractions{fe})
	before := g.Stats()

	g.RemoveFile("auth.rs")
	g.BuildFromExtractions([]types.FileExtractions{fe})

	assert.Equal(t, before, g.Stats())
}

func TestEmptyQueryReturnsEmptyList(t *testing.T) {
	g := New()
	assert.Empty(t, g.Search("", 10))
}

func TestUnknownFileToSymbolsInFileReturnsEmpty(t *testing.T) {
	g := New()
	assert.Empty(t, g.SymbolsInFile("nope.rs"))
}

func TestSearchGraphHandlesCycleWithoutInfiniteLoop(t *testing.T) {
	g := New()
	g.BuildFromExtractions([]types.FileExtractions{
		{
			Path: "cycle.rs",
			Symbols: []types.ExtractedSymbol{
				{Name: "a", Kind: types.NodeFunction, LineStart: 1, LineEnd: 1},
				{Name: "b", Kind: types.NodeFunction, LineStart: 2, LineEnd: 2},
			},
			Calls: []types.ExtractedCall{
				{Caller: "a", Callee: "b", Line: 1},
				{Caller: "b", Callee: "a", Line: 2},
			},
		},
	})

	result := g.SearchGraph("a", 5)
	assert.Equal(t, "symbol", result.MatchType)
	assert.NotEmpty(t, result.Symbols)
}

func TestSearchGraphFileSeedIncludesDefinedSymbols(t *testing.T) {
	g := New()
	g.BuildFromExtractions([]types.FileExtractions{rustAddMul()})

	result := g.SearchGraph("lib.rs", 1)
	assert.Equal(t, "file", result.MatchType)
	assert.Contains(t, result.MatchedFiles, "src/lib.rs")
	assert.Len(t, result.Symbols, 2)
}

func TestSearchGraphFileSeedStaysOneLayerRegardlessOfDepth(t *testing.T) {
	g := New()
	g.BuildFromExtractions([]types.FileExtractions{
		rustAddMul(),
		{
			Path:    "src/caller.rs",
			Symbols: []types.ExtractedSymbol{{Name: "helper", Kind: types.NodeFunction, LineStart: 1, LineEnd: 1}},
			Calls:   []types.ExtractedCall{{Caller: "helper", Callee: "mul", Line: 1}},
		},
	})

	result := g.SearchGraph("lib.rs", 2)
	assert.Equal(t, "file", result.MatchType)
	require.Len(t, result.Symbols, 2)
	for _, s := range result.Symbols {
		assert.NotEqual(t, "helper", s.Name, "a file match must never fold a second-hop neighbor into Symbols")
	}

	var sawCrossFileCall bool
	for _, c := range result.Connections {
		if c.From == "helper" && c.To == "mul" {
			sawCrossFileCall = true
		}
	}
	assert.True(t, sawCrossFileCall, "the one fixed connection layer must still surface the cross-file caller")
}

func TestStatsCountsLiveNodesOnly(t *testing.T) {
	g := New()
	g.BuildFromExtractions([]types.FileExtractions{rustAddMul()})
	stats := g.Stats()
	assert.Equal(t, 1, stats.FileCount)
	assert.Equal(t, 2, stats.SymbolCount)
}
