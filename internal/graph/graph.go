// Package graph is the indexed directed multigraph at the center of the
// system: files and symbols as nodes, Defines/Calls/Imports/Contains and
// friends as edges, soft-delete in place of expensive edge surgery, and a
// compaction step to reclaim dead handles. Every mutating method requires
// the writer lock; every query method requires only the reader lock.
package graph

import (
	"sort"
	"strings"
	"sync"

	"github.com/standardbeagle/anchor/internal/types"
)

// Handle identifies a node. Handles are stable across soft-delete and
// resurrection; compaction is the only operation that changes them.
type Handle uint64

// Node is one file or symbol in the graph.
type Node struct {
	Handle      Handle
	Kind        types.NodeKind
	Name        string
	FilePath    string
	LineStart   int
	LineEnd     int
	CodeSnippet string
	Removed     bool
}

// Edge is a directed, kind-tagged relationship between two node handles.
// Parallel edges between the same pair are permitted.
type Edge struct {
	From Handle
	To   Handle
	Kind types.EdgeKind
}

type qualifiedKey struct {
	path string
	name string
}

// callRecord is the line-accurate record behind a Calls edge. Kept
// separately from the generic edge list so search results can report
// {name, file, line} per call site, not just a bare target handle.
type callRecord struct {
	caller   Handle
	target   Handle
	name     string
	filePath string
	line     int
}

// Graph is the engine described in the component design: node/edge
// storage plus the three lookup indices, all behind one RWMutex.
type Graph struct {
	mu sync.RWMutex

	nodes map[Handle]*Node
	edges []Edge
	out   map[Handle][]int // node handle -> indices into edges, outgoing
	in    map[Handle][]int // node handle -> indices into edges, incoming

	calls []callRecord

	fileIndex      map[string]Handle
	symbolIndex    map[string][]Handle
	qualifiedIndex map[qualifiedKey]Handle

	next Handle
}

// New returns an empty graph ready for ingestion.
func New() *Graph {
	return &Graph{
		nodes:          make(map[Handle]*Node),
		out:            make(map[Handle][]int),
		in:             make(map[Handle][]int),
		fileIndex:      make(map[string]Handle),
		symbolIndex:    make(map[string][]Handle),
		qualifiedIndex: make(map[qualifiedKey]Handle),
	}
}

func (g *Graph) allocHandle() Handle {
	g.next++
	return g.next
}

// AddFile is idempotent: a path still present in file_index returns its
// existing handle (with the Removed flag cleared), and any other path
// allocates a new node. RemoveFile drops the path from file_index, so
// re-adding a removed path allocates a fresh handle.
func (g *Graph) AddFile(path string) Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addFileLocked(path)
}

func (g *Graph) addFileLocked(path string) Handle {
	if h, ok := g.fileIndex[path]; ok {
		if n, ok := g.nodes[h]; ok {
			n.Removed = false
			return h
		}
	}
	h := g.allocHandle()
	g.nodes[h] = &Node{Handle: h, Kind: types.NodeFile, Name: path, FilePath: path}
	g.fileIndex[path] = h
	return h
}

// AddSymbol always creates a new node; it never deduplicates against an
// existing symbol of the same name.
func (g *Graph) AddSymbol(name string, kind types.NodeKind, file string, lineStart, lineEnd int, code string) Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addSymbolLocked(name, kind, file, lineStart, lineEnd, code)
}

func (g *Graph) addSymbolLocked(name string, kind types.NodeKind, file string, lineStart, lineEnd int, code string) Handle {
	h := g.allocHandle()
	g.nodes[h] = &Node{
		Handle:      h,
		Kind:        kind,
		Name:        name,
		FilePath:    file,
		LineStart:   lineStart,
		LineEnd:     lineEnd,
		CodeSnippet: code,
	}
	g.symbolIndex[name] = append(g.symbolIndex[name], h)

	key := qualifiedKey{path: file, name: name}
	if _, exists := g.qualifiedIndex[key]; !exists {
		g.qualifiedIndex[key] = h
	}
	return h
}

// AddEdge unconditionally records a directed edge; duplicates are allowed.
func (g *Graph) AddEdge(from, to Handle, kind types.EdgeKind) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addEdgeLocked(from, to, kind)
}

func (g *Graph) addEdgeLocked(from, to Handle, kind types.EdgeKind) {
	idx := len(g.edges)
	g.edges = append(g.edges, Edge{From: from, To: to, Kind: kind})
	g.out[from] = append(g.out[from], idx)
	g.in[to] = append(g.in[to], idx)
}

// BuildFromExtractions runs the three-pass ingest: files/symbols/imports,
// then call resolution, then parent containment. Phase 1 completes for
// every file before phase 2 starts; phase 3 runs after phase 2.
func (g *Graph) BuildFromExtractions(extractions []types.FileExtractions) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, fe := range extractions {
		fileHandle := g.addFileLocked(fe.Path)

		for _, sym := range fe.Symbols {
			symHandle := g.addSymbolLocked(sym.Name, sym.Kind, fe.Path, sym.LineStart, sym.LineEnd, sym.CodeSnippet)
			g.addEdgeLocked(fileHandle, symHandle, types.EdgeDefines)
		}

		for _, imp := range fe.Imports {
			impHandle := g.addSymbolLocked(imp.Path, types.NodeImport, fe.Path, imp.Line, imp.Line, "")
			g.addEdgeLocked(fileHandle, impHandle, types.EdgeImports)
		}
	}

	for _, fe := range extractions {
		for _, call := range fe.Calls {
			callerHandle, ok := g.qualifiedIndex[qualifiedKey{path: fe.Path, name: call.Caller}]
			if !ok {
				continue
			}
			candidates := g.symbolIndex[call.Callee]
			if len(candidates) == 0 {
				continue
			}
			targetHandle := candidates[0]
			g.addEdgeLocked(callerHandle, targetHandle, types.EdgeCalls)
			g.calls = append(g.calls, callRecord{
				caller:   callerHandle,
				target:   targetHandle,
				name:     call.Callee,
				filePath: fe.Path,
				line:     call.Line,
			})
		}
	}

	for _, fe := range extractions {
		for _, sym := range fe.Symbols {
			if sym.Parent == "" {
				continue
			}
			parentHandle, pok := g.qualifiedIndex[qualifiedKey{path: fe.Path, name: sym.Parent}]
			childHandle, cok := g.qualifiedIndex[qualifiedKey{path: fe.Path, name: sym.Name}]
			if pok && cok {
				g.addEdgeLocked(parentHandle, childHandle, types.EdgeContains)
			}
		}
	}
}

// RemoveFile soft-deletes the file at path and every node one Defines or
// Imports hop away from it, purging them from symbol_index and
// qualified_index. Edges are left in place; readers filter removed nodes.
func (g *Graph) RemoveFile(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	fileHandle, ok := g.fileIndex[path]
	if !ok {
		return
	}

	for _, idx := range g.out[fileHandle] {
		e := g.edges[idx]
		g.removeSymbolLocked(e.To)
	}

	if n, ok := g.nodes[fileHandle]; ok {
		n.Removed = true
	}
	delete(g.fileIndex, path)
}

func (g *Graph) removeSymbolLocked(h Handle) {
	n, ok := g.nodes[h]
	if !ok || n.Removed {
		return
	}
	n.Removed = true

	if list := g.symbolIndex[n.Name]; len(list) > 0 {
		filtered := list[:0]
		for _, candidate := range list {
			if candidate != h {
				filtered = append(filtered, candidate)
			}
		}
		if len(filtered) == 0 {
			delete(g.symbolIndex, n.Name)
		} else {
			g.symbolIndex[n.Name] = filtered
		}
	}
	delete(g.qualifiedIndex, qualifiedKey{path: n.FilePath, name: n.Name})
}

// Compact rebuilds the graph keeping only live nodes and edges whose both
// endpoints are still live, reassigning handles in the process. Logical
// state (live nodes, live edges) is preserved; only handle identity and
// dangling edges change.
func (g *Graph) Compact() {
	g.mu.Lock()
	defer g.mu.Unlock()

	fresh := New()
	remap := make(map[Handle]Handle, len(g.nodes))

	handles := make([]Handle, 0, len(g.nodes))
	for h := range g.nodes {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	for _, h := range handles {
		n := g.nodes[h]
		if n.Removed {
			continue
		}
		var newHandle Handle
		if n.Kind == types.NodeFile {
			newHandle = fresh.addFileLocked(n.FilePath)
		} else {
			newHandle = fresh.addSymbolLocked(n.Name, n.Kind, n.FilePath, n.LineStart, n.LineEnd, n.CodeSnippet)
		}
		remap[h] = newHandle
	}

	for _, e := range g.edges {
		newFrom, fromOK := remap[e.From]
		newTo, toOK := remap[e.To]
		if fromOK && toOK {
			fresh.addEdgeLocked(newFrom, newTo, e.Kind)
		}
	}

	for _, c := range g.calls {
		newCaller, callerOK := remap[c.caller]
		newTarget, targetOK := remap[c.target]
		if callerOK && targetOK {
			fresh.calls = append(fresh.calls, callRecord{
				caller:   newCaller,
				target:   newTarget,
				name:     c.name,
				filePath: c.filePath,
				line:     c.line,
			})
		}
	}

	g.nodes = fresh.nodes
	g.edges = fresh.edges
	g.out = fresh.out
	g.in = fresh.in
	g.calls = fresh.calls
	g.fileIndex = fresh.fileIndex
	g.symbolIndex = fresh.symbolIndex
	g.qualifiedIndex = fresh.qualifiedIndex
	g.next = fresh.next
}

func normalize(s string) string {
	return strings.ToLower(s)
}
