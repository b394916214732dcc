// Package query is the thin, uniform façade the RPC server and CLI share:
// search, dependencies, stats, file symbols, and context enrichment, all
// expressed directly in terms of the graph engine's query operations.
package query

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anchor/internal/graph"
)

// Facade wraps a graph with the ergonomic operations external callers use.
type Facade struct {
	g *graph.Graph
}

// New returns a Facade over g.
func New(g *graph.Graph) *Facade {
	return &Facade{g: g}
}

// SearchMode selects between a plain name/substring search and the
// graph-aware, BFS-expanding one.
type SearchMode int

const (
	// Simple is a name-based search with no graph expansion.
	Simple SearchMode = iota
	// Structured is the graph-aware, BFS-expanding search.
	Structured
)

// SearchOptions narrows a search's seed query and post-filters the
// matches by kind, a file-path substring, and/or a name regexp.
type SearchOptions struct {
	Query      string
	Mode       SearchMode
	Depth      int
	Limit      int
	KindFilter string
	FileFilter string
	Pattern    string
}

// Search runs Simple or Structured search and applies the optional
// kind/file/pattern post-filters. An invalid Pattern is reported as an
// error rather than silently matching nothing.
func (f *Facade) Search(opts SearchOptions) ([]graph.SearchResult, error) {
	var results []graph.SearchResult
	if opts.Mode == Structured {
		gr := f.g.SearchGraph(opts.Query, opts.Depth)
		results = gr.Symbols
	} else {
		results = f.g.Search(opts.Query, opts.Limit)
	}
	results = filterResults(results, opts.KindFilter, opts.FileFilter)

	if opts.Pattern == "" {
		return results, nil
	}
	re, err := regexp.Compile(opts.Pattern)
	if err != nil {
		return nil, err
	}
	return FilterByPattern(results, re), nil
}

func filterResults(results []graph.SearchResult, kind, file string) []graph.SearchResult {
	if kind == "" && file == "" {
		return results
	}
	out := make([]graph.SearchResult, 0, len(results))
	for _, r := range results {
		if kind != "" && string(r.Kind) != kind {
			continue
		}
		if file != "" && !strings.Contains(r.FilePath, file) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterByPattern narrows results to those whose name matches re. Go's
// RE2-backed regexp gives the same backtracking-free, ReDoS-immune
// matching the original CLI's "search --pattern" flag documented for its
// own Brzozowski-derivative engine, with no third-party regexp library
// anywhere in the pack to reach for instead. Exported so the CLI can apply
// the same filter to a SearchGraph result's Symbols, which carries
// Connections/MatchType fields the façade's Search doesn't return.
func FilterByPattern(results []graph.SearchResult, re *regexp.Regexp) []graph.SearchResult {
	out := make([]graph.SearchResult, 0, len(results))
	for _, r := range results {
		if re.MatchString(r.Name) {
			out = append(out, r)
		}
	}
	return out
}

// Dependencies is the combined dependents/dependencies record.
type Dependencies struct {
	Dependencies []graph.EdgeRef `json:"dependencies"`
	Dependents   []graph.EdgeRef `json:"dependents"`
}

// Dependencies returns name's outgoing and incoming edges in one call.
func (f *Facade) Dependencies(name string) Dependencies {
	return Dependencies{
		Dependencies: f.g.Dependencies(name),
		Dependents:   f.g.Dependents(name),
	}
}

// Stats returns the engine's aggregate counters.
func (f *Facade) Stats() graph.Stats {
	return f.g.Stats()
}

// FileSymbolsResult is the file_symbols façade's response shape.
type FileSymbolsResult struct {
	Found   bool                 `json:"found"`
	File    string               `json:"file,omitempty"`
	Symbols []graph.SearchResult `json:"symbols"`
}

// FileSymbols returns the symbols of the first live file path containing
// fileSubstring, or Found=false if none match.
func (f *Facade) FileSymbols(fileSubstring string) FileSymbolsResult {
	path, ok := f.g.FindFileContaining(fileSubstring)
	if !ok {
		return FileSymbolsResult{Found: false, Symbols: []graph.SearchResult{}}
	}
	return FileSymbolsResult{Found: true, File: path, Symbols: f.g.SymbolsInFile(path)}
}
