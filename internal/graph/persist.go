package graph

import "github.com/standardbeagle/anchor/internal/types"

// NodeRecord is the serializable form of a live node, handle included so
// edges can reference it on restore.
type NodeRecord struct {
	Handle      Handle
	Kind        types.NodeKind
	Name        string
	FilePath    string
	LineStart   int
	LineEnd     int
	CodeSnippet string
}

// EdgeRecord is the serializable form of one edge.
type EdgeRecord struct {
	From Handle
	To   Handle
	Kind types.EdgeKind
}

// CallRecord is the serializable form of one line-accurate call site.
type CallRecord struct {
	Caller   Handle
	Target   Handle
	Name     string
	FilePath string
	Line     int
}

// Export snapshots every live node, every edge whose endpoints are both
// live, and every call record whose endpoints are both live. It is the
// persistence layer's save-side counterpart to Restore.
func (g *Graph) Export() ([]NodeRecord, []EdgeRecord, []CallRecord) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var nodes []NodeRecord
	for h, n := range g.nodes {
		if n.Removed {
			continue
		}
		nodes = append(nodes, NodeRecord{
			Handle: h, Kind: n.Kind, Name: n.Name, FilePath: n.FilePath,
			LineStart: n.LineStart, LineEnd: n.LineEnd, CodeSnippet: n.CodeSnippet,
		})
	}

	var edges []EdgeRecord
	for _, e := range g.edges {
		from, to := g.nodes[e.From], g.nodes[e.To]
		if from == nil || to == nil || from.Removed || to.Removed {
			continue
		}
		edges = append(edges, EdgeRecord{From: e.From, To: e.To, Kind: e.Kind})
	}

	var calls []CallRecord
	for _, c := range g.calls {
		caller, target := g.nodes[c.caller], g.nodes[c.target]
		if caller == nil || target == nil || caller.Removed || target.Removed {
			continue
		}
		calls = append(calls, CallRecord{Caller: c.caller, Target: c.target, Name: c.name, FilePath: c.filePath, Line: c.line})
	}

	return nodes, edges, calls
}

// Restore rebuilds a graph from a prior Export, preserving handle
// identity and rebuilding all three indices.
func Restore(nodes []NodeRecord, edges []EdgeRecord, calls []CallRecord) *Graph {
	g := New()

	var maxHandle Handle
	for _, nr := range nodes {
		g.nodes[nr.Handle] = &Node{
			Handle: nr.Handle, Kind: nr.Kind, Name: nr.Name, FilePath: nr.FilePath,
			LineStart: nr.LineStart, LineEnd: nr.LineEnd, CodeSnippet: nr.CodeSnippet,
		}
		if nr.Kind == types.NodeFile {
			g.fileIndex[nr.FilePath] = nr.Handle
		} else {
			g.symbolIndex[nr.Name] = append(g.symbolIndex[nr.Name], nr.Handle)
			key := qualifiedKey{path: nr.FilePath, name: nr.Name}
			if _, exists := g.qualifiedIndex[key]; !exists {
				g.qualifiedIndex[key] = nr.Handle
			}
		}
		if nr.Handle > maxHandle {
			maxHandle = nr.Handle
		}
	}
	g.next = maxHandle

	for _, er := range edges {
		g.addEdgeLocked(er.From, er.To, er.Kind)
	}

	for _, cr := range calls {
		g.calls = append(g.calls, callRecord{caller: cr.Caller, target: cr.Target, name: cr.Name, filePath: cr.FilePath, line: cr.Line})
	}

	return g
}
