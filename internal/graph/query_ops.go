package graph

import (
	"sort"
	"strings"

	"github.com/standardbeagle/anchor/internal/types"
)

// EdgeRef is one live edge surfaced by Dependents/Dependencies: the name
// and file of the node on the other end of the edge, plus the edge kind.
type EdgeRef struct {
	Name     string        `json:"name"`
	FilePath string        `json:"file_path"`
	Kind     types.EdgeKind `json:"kind"`
}

// Dependents returns, for every live node bearing name, its live incoming
// edges as EdgeRefs describing the source node. One-hop, so cycles
// terminate trivially.
func (g *Graph) Dependents(name string) []EdgeRef {
	g.mu.RLock()
	defer g.mu.RUnlock()

	refs := []EdgeRef{}
	for _, h := range g.symbolIndex[name] {
		n := g.nodes[h]
		if n == nil || n.Removed {
			continue
		}
		for _, idx := range g.in[h] {
			e := g.edges[idx]
			src := g.nodes[e.From]
			if src == nil || src.Removed {
				continue
			}
			refs = append(refs, EdgeRef{Name: src.Name, FilePath: src.FilePath, Kind: e.Kind})
		}
	}
	return refs
}

// Dependencies is the symmetric outgoing counterpart to Dependents.
func (g *Graph) Dependencies(name string) []EdgeRef {
	g.mu.RLock()
	defer g.mu.RUnlock()

	refs := []EdgeRef{}
	for _, h := range g.symbolIndex[name] {
		n := g.nodes[h]
		if n == nil || n.Removed {
			continue
		}
		for _, idx := range g.out[h] {
			e := g.edges[idx]
			dst := g.nodes[e.To]
			if dst == nil || dst.Removed {
				continue
			}
			refs = append(refs, EdgeRef{Name: dst.Name, FilePath: dst.FilePath, Kind: e.Kind})
		}
	}
	return refs
}

// FindFileContaining returns the lexicographically smallest live file path
// containing substring.
func (g *Graph) FindFileContaining(substring string) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var best string
	found := false
	for path, h := range g.fileIndex {
		n := g.nodes[h]
		if n == nil || n.Removed {
			continue
		}
		if !strings.Contains(path, substring) {
			continue
		}
		if !found || path < best {
			best = path
			found = true
		}
	}
	return best, found
}

// SymbolsInFile returns every live target of an outgoing Defines edge from
// the live File node at path, or an empty slice if the path is unknown.
func (g *Graph) SymbolsInFile(path string) []SearchResult {
	g.mu.RLock()
	defer g.mu.RUnlock()

	fileHandle, ok := g.fileIndex[path]
	if !ok {
		return []SearchResult{}
	}

	results := []SearchResult{}
	for _, idx := range g.out[fileHandle] {
		e := g.edges[idx]
		if e.Kind != types.EdgeDefines {
			continue
		}
		n := g.nodes[e.To]
		if n == nil || n.Removed {
			continue
		}
		results = append(results, g.buildResultLocked(e.To, n))
	}
	return results
}

// FindQualified returns the live node registered under (path, name), if any.
func (g *Graph) FindQualified(path, name string) (SearchResult, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	h, ok := g.qualifiedIndex[qualifiedKey{path: path, name: name}]
	if !ok {
		return SearchResult{}, false
	}
	n := g.nodes[h]
	if n == nil || n.Removed {
		return SearchResult{}, false
	}
	return g.buildResultLocked(h, n), true
}

// FilesWithPrefix returns up to limit live file paths starting with prefix,
// sorted lexicographically. A zero or negative limit means unbounded.
func (g *Graph) FilesWithPrefix(prefix string, limit int) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	paths := make([]string, 0, len(g.fileIndex))
	for path, h := range g.fileIndex {
		n := g.nodes[h]
		if n == nil || n.Removed {
			continue
		}
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	if limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}
	return paths
}

// Stats is the engine's aggregate counters.
type Stats struct {
	FileCount    int `json:"file_count"`
	SymbolCount  int `json:"symbol_count"`
	EdgeCount    int `json:"edge_count"`
	UniqueNames  int `json:"unique_names"`
}

// Stats counts live file and symbol nodes separately, reports the total
// edge count unchanged (edges to removed nodes still count), and the
// cardinality of distinct live symbol names.
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var s Stats
	s.EdgeCount = len(g.edges)
	names := make(map[string]struct{})
	for _, n := range g.nodes {
		if n.Removed {
			continue
		}
		if n.Kind == types.NodeFile {
			s.FileCount++
			continue
		}
		s.SymbolCount++
		names[n.Name] = struct{}{}
	}
	s.UniqueNames = len(names)
	return s
}
