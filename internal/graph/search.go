package graph

import (
	"sort"
	"strings"

	"github.com/standardbeagle/anchor/internal/types"
)

// CallSite is one outgoing call recorded on a search result.
type CallSite struct {
	Name     string `json:"name"`
	FilePath string `json:"file"`
	Line     int    `json:"line"`
}

// SearchResult is the unit of context shared by search, context, and
// dependencies: the symbol itself plus its live call neighborhood and the
// imports of its file.
type SearchResult struct {
	Name        string     `json:"name"`
	Kind        types.NodeKind `json:"kind"`
	FilePath    string     `json:"file_path"`
	LineStart   int        `json:"line_start"`
	LineEnd     int        `json:"line_end"`
	CodeSnippet string     `json:"code_snippet"`
	Calls       []CallSite `json:"calls"`
	CalledBy    []string   `json:"called_by"`
	Imports     []string   `json:"imports"`
}

// Search returns up to limit live, non-File symbols matching query.
// An exact-name hit via symbol_index short-circuits; otherwise every live
// symbol whose lowercased name contains the lowercased query is scored
// exact=0/prefix=1/substring=2 and sorted ascending.
func (g *Graph) Search(query string, limit int) []SearchResult {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if query == "" {
		return []SearchResult{}
	}

	if handles, ok := g.symbolIndex[query]; ok {
		var exact []Handle
		for _, h := range handles {
			if n := g.nodes[h]; n != nil && !n.Removed {
				exact = append(exact, h)
			}
		}
		if len(exact) > 0 {
			return g.assembleResults(capHandles(exact, limit))
		}
	}

	lowerQuery := normalize(query)
	type scored struct {
		handle Handle
		score  int
	}
	var matches []scored
	for h, n := range g.nodes {
		if n.Removed || n.Kind == types.NodeFile {
			continue
		}
		lowerName := normalize(n.Name)
		switch {
		case lowerName == lowerQuery:
			matches = append(matches, scored{h, 0})
		case strings.HasPrefix(lowerName, lowerQuery):
			matches = append(matches, scored{h, 1})
		case strings.Contains(lowerName, lowerQuery):
			matches = append(matches, scored{h, 2})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score < matches[j].score
		}
		return matches[i].handle < matches[j].handle
	})

	handles := make([]Handle, 0, len(matches))
	for _, m := range matches {
		handles = append(handles, m.handle)
	}
	return g.assembleResults(capHandles(handles, limit))
}

func capHandles(handles []Handle, limit int) []Handle {
	if limit > 0 && len(handles) > limit {
		return handles[:limit]
	}
	return handles
}

// assembleResults builds the result record described in §4.3's
// "search-result assembly" for each handle, in order.
func (g *Graph) assembleResults(handles []Handle) []SearchResult {
	results := make([]SearchResult, 0, len(handles))
	for _, h := range handles {
		n := g.nodes[h]
		if n == nil {
			continue
		}
		results = append(results, g.buildResultLocked(h, n))
	}
	return results
}

func (g *Graph) buildResultLocked(h Handle, n *Node) SearchResult {
	res := SearchResult{
		Name:        n.Name,
		Kind:        n.Kind,
		FilePath:    n.FilePath,
		LineStart:   n.LineStart,
		LineEnd:     n.LineEnd,
		CodeSnippet: n.CodeSnippet,
		Calls:       []CallSite{},
		CalledBy:    []string{},
		Imports:     []string{},
	}

	for _, c := range g.calls {
		if c.caller == h {
			if target := g.nodes[c.target]; target != nil && !target.Removed {
				res.Calls = append(res.Calls, CallSite{Name: c.name, FilePath: c.filePath, Line: c.line})
			}
		}
		if c.target == h {
			if caller := g.nodes[c.caller]; caller != nil && !caller.Removed {
				res.CalledBy = append(res.CalledBy, caller.Name)
			}
		}
	}

	if fileHandle, ok := g.fileIndex[n.FilePath]; ok {
		for _, idx := range g.out[fileHandle] {
			e := g.edges[idx]
			if e.Kind != types.EdgeImports {
				continue
			}
			if imp := g.nodes[e.To]; imp != nil && !imp.Removed {
				res.Imports = append(res.Imports, imp.Name)
			}
		}
	}

	return res
}

// GraphSearchResult is the response shape for SearchGraph.
type GraphSearchResult struct {
	MatchType    string       `json:"match_type"`
	MatchedFiles []string     `json:"matched_files"`
	Symbols      []SearchResult `json:"symbols"`
	Connections  []Connection `json:"connections"`
	Truncated    bool         `json:"truncated"`
}

// Connection is one edge surfaced by SearchGraph's BFS expansion.
type Connection struct {
	From string        `json:"from"`
	To   string        `json:"to"`
	Kind types.EdgeKind `json:"kind"`
}

const (
	maxSeedMatches = 10
	maxSymbols     = 50
	maxConnections = 100
)

// SearchGraph implements the graph-aware search, bounded by the hard limits
// from §4.3. A file-path match (tried first) returns the matched files'
// defined symbols plus, when depth > 0, one layer of their connections,
// whatever depth is. Otherwise an exact/prefix symbol-name match seeds a
// BFS expansion of depth hops across both edge directions.
func (g *Graph) SearchGraph(query string, depth int) GraphSearchResult {
	g.mu.RLock()
	defer g.mu.RUnlock()

	res := GraphSearchResult{Symbols: []SearchResult{}, Connections: []Connection{}, MatchedFiles: []string{}}
	if query == "" {
		return res
	}
	lowerQuery := normalize(query)

	var fileHandles []Handle
	for path, h := range g.fileIndex {
		n := g.nodes[h]
		if n == nil || n.Removed {
			continue
		}
		if strings.Contains(normalize(path), lowerQuery) || strings.Contains(normalize(basename(path)), lowerQuery) {
			fileHandles = append(fileHandles, h)
		}
	}

	seen := make(map[Handle]bool)
	var seeds []Handle

	if len(fileHandles) > 0 {
		res.MatchType = "file"
		if len(fileHandles) > maxSeedMatches {
			fileHandles = fileHandles[:maxSeedMatches]
			res.Truncated = true
		}
		for _, fh := range fileHandles {
			res.MatchedFiles = append(res.MatchedFiles, g.nodes[fh].FilePath)
			for _, idx := range g.out[fh] {
				e := g.edges[idx]
				if e.Kind != types.EdgeDefines {
					continue
				}
				if sym := g.nodes[e.To]; sym != nil && !sym.Removed && !seen[e.To] {
					seen[e.To] = true
					seeds = append(seeds, e.To)
				}
			}
		}

		for _, h := range seeds {
			if len(res.Symbols) >= maxSymbols {
				res.Truncated = true
				break
			}
			res.Symbols = append(res.Symbols, g.buildResultLocked(h, g.nodes[h]))
		}

		// A file match gets exactly one fixed layer of edge traversal,
		// recorded only as Connections, no matter how large depth is:
		// neighbor symbols never get folded into Symbols the way a
		// symbol-name seed's multi-hop BFS below does.
		if depth > 0 {
			for _, h := range seeds {
				g.collectConnections(h, g.nodes[h], seen, &res)
			}
		}

		if len(res.Symbols) >= maxSymbols || len(res.Connections) >= maxConnections {
			res.Truncated = true
		}
		return res
	}

	res.MatchType = "symbol"
	var symHandles []Handle
	for h, n := range g.nodes {
		if n.Removed || n.Kind == types.NodeFile {
			continue
		}
		lowerName := normalize(n.Name)
		if lowerName == lowerQuery || strings.HasPrefix(lowerName, lowerQuery) {
			symHandles = append(symHandles, h)
		}
	}
	sort.Slice(symHandles, func(i, j int) bool { return symHandles[i] < symHandles[j] })
	if len(symHandles) > maxSeedMatches {
		symHandles = symHandles[:maxSeedMatches]
		res.Truncated = true
	}
	for _, h := range symHandles {
		seen[h] = true
		seeds = append(seeds, h)
	}

	frontier := seeds
	for hop := 0; hop <= depth && len(frontier) > 0; hop++ {
		var next []Handle
		for _, h := range frontier {
			if len(res.Symbols) >= maxSymbols {
				res.Truncated = true
				break
			}
			n := g.nodes[h]
			if n == nil {
				continue
			}
			res.Symbols = append(res.Symbols, g.buildResultLocked(h, n))

			if hop >= depth {
				continue
			}
			next = append(next, g.collectConnections(h, n, seen, &res)...)
		}
		frontier = next
	}

	if len(res.Symbols) > maxSymbols {
		res.Symbols = res.Symbols[:maxSymbols]
		res.Truncated = true
	}

	return res
}

// collectConnections records every live, non-Defines/Imports edge touching
// h as a Connection (File endpoints excluded), marking newly-seen neighbors
// in seen and returning their handles for a caller doing BFS expansion.
func (g *Graph) collectConnections(h Handle, n *Node, seen map[Handle]bool, res *GraphSearchResult) []Handle {
	var next []Handle
	for _, idx := range g.out[h] {
		e := g.edges[idx]
		if e.Kind == types.EdgeDefines || e.Kind == types.EdgeImports {
			continue
		}
		to := g.nodes[e.To]
		if to == nil || to.Removed || to.Kind == types.NodeFile {
			continue
		}
		if len(res.Connections) < maxConnections {
			res.Connections = append(res.Connections, Connection{From: n.Name, To: to.Name, Kind: e.Kind})
		} else {
			res.Truncated = true
		}
		if !seen[e.To] {
			seen[e.To] = true
			next = append(next, e.To)
		}
	}
	for _, idx := range g.in[h] {
		e := g.edges[idx]
		if e.Kind == types.EdgeDefines || e.Kind == types.EdgeImports {
			continue
		}
		from := g.nodes[e.From]
		if from == nil || from.Removed || from.Kind == types.NodeFile {
			continue
		}
		if len(res.Connections) < maxConnections {
			res.Connections = append(res.Connections, Connection{From: from.Name, To: n.Name, Kind: e.Kind})
		} else {
			res.Truncated = true
		}
		if !seen[e.From] {
			seen[e.From] = true
			next = append(next, e.From)
		}
	}
	return next
}

func basename(path string) string {
	idx := strings.LastIndexAny(path, "/\\")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}
