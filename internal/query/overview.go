package query

import "github.com/standardbeagle/anchor/internal/graph"

// Overview is the summary the CLI's overview subcommand prints: aggregate
// counters, a sample of files under src/, and the project's entry points.
type Overview struct {
	Stats       graph.Stats          `json:"stats"`
	SrcFiles    []string             `json:"src_files"`
	EntryPoints []graph.SearchResult `json:"entry_points"`
}

// Overview reports the engine's stats, the first 15 files under src/, and
// every Function named "main" (a project's typical entry points).
func (f *Facade) Overview() Overview {
	entryPoints := make([]graph.SearchResult, 0)
	for _, r := range f.g.Search("main", 0) {
		if r.Kind == "Function" && r.Name == "main" {
			entryPoints = append(entryPoints, r)
		}
	}

	return Overview{
		Stats:       f.g.Stats(),
		SrcFiles:    f.g.FilesWithPrefix("src/", 15),
		EntryPoints: entryPoints,
	}
}
