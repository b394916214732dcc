package query

import "github.com/standardbeagle/anchor/internal/graph"

// ContextResult is the base search result plus whatever the intent's
// enrichment policy adds.
type ContextResult struct {
	Intent      string               `json:"intent"`
	Result      graph.SearchResult   `json:"result"`
	FileSymbols []graph.SearchResult `json:"file_symbols,omitempty"`
	Connections []graph.Connection   `json:"connections,omitempty"`
	Dependents  []graph.EdgeRef      `json:"dependents,omitempty"`
	Siblings    []graph.SearchResult `json:"siblings,omitempty"`
	Found       bool                 `json:"found"`
}

// GetContext returns the named symbol's search result enriched according
// to intent. understand: base result plus its file's full symbol list.
// explore: additionally one BFS hop of graph connections. change:
// additionally the full dependents list. create: base result plus sibling
// symbols in the same file. Unknown intents behave like understand.
func (f *Facade) GetContext(name, intent string) ContextResult {
	results := f.g.Search(name, 1)
	if len(results) == 0 {
		return ContextResult{Intent: intent, Found: false}
	}
	result := results[0]

	res := ContextResult{Intent: intent, Result: result, Found: true}

	switch intent {
	case "explore":
		gr := f.g.SearchGraph(name, 1)
		res.Connections = gr.Connections
		res.FileSymbols = f.g.SymbolsInFile(result.FilePath)
	case "change":
		res.Dependents = f.g.Dependents(name)
		res.FileSymbols = f.g.SymbolsInFile(result.FilePath)
	case "create":
		res.Siblings = siblingsExcluding(f.g.SymbolsInFile(result.FilePath), name)
	default: // "understand" and any unrecognized intent
		res.FileSymbols = f.g.SymbolsInFile(result.FilePath)
	}

	return res
}

func siblingsExcluding(symbols []graph.SearchResult, name string) []graph.SearchResult {
	out := make([]graph.SearchResult, 0, len(symbols))
	for _, s := range symbols {
		if s.Name != name {
			out = append(out, s)
		}
	}
	return out
}
