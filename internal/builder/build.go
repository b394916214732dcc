// Package builder walks a project tree, extracts every recognized source
// file in parallel, and feeds the results into the graph engine's
// three-pass ingest. It also drives the single-file incremental rebuild
// the watcher uses.
package builder

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/anchor/internal/config"
	"github.com/standardbeagle/anchor/internal/debug"
	"github.com/standardbeagle/anchor/internal/extractor"
	"github.com/standardbeagle/anchor/internal/graph"
	"github.com/standardbeagle/anchor/internal/langregistry"
	"github.com/standardbeagle/anchor/internal/types"
)

// Builder walks, parses, and ingests a project tree into a graph.
type Builder struct {
	root string
	cfg  config.Index
	ex   extractor.Extractor
}

// New returns a Builder rooted at root, using cfg to decide what to walk.
func New(root string, cfg config.Index) *Builder {
	return &Builder{root: root, cfg: cfg, ex: extractor.New()}
}

// Result summarizes one full build.
type Result struct {
	FilesScanned   int
	FilesExtracted int
}

// Build walks the project, extracts every candidate file in parallel
// (errors per file are dropped silently — one bad file must not abort the
// build), and ingests everything into g via its three-pass builder.
func (b *Builder) Build(ctx context.Context, g *graph.Graph) (Result, error) {
	paths, err := candidateFiles(b.root, b.cfg)
	if err != nil {
		return Result{}, err
	}

	workers := b.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	extractions := make([]*types.FileExtractions, len(paths))

	g2, gctx := errgroup.WithContext(ctx)
	g2.SetLimit(workers)
	for i, relPath := range paths {
		i, relPath := i, relPath
		g2.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			fe, ok := b.extractOne(gctx, relPath)
			if ok {
				extractions[i] = &fe
			}
			return nil
		})
	}
	_ = g2.Wait()

	var batch []types.FileExtractions
	extracted := 0
	for _, fe := range extractions {
		if fe == nil {
			continue
		}
		extracted++
		batch = append(batch, *fe)
	}

	g.BuildFromExtractions(batch)

	return Result{FilesScanned: len(paths), FilesExtracted: extracted}, nil
}

// extractOne reads and extracts a single file, dropping any failure as a
// debug log line rather than propagating it.
func (b *Builder) extractOne(ctx context.Context, relPath string) (types.FileExtractions, bool) {
	fullPath := filepath.Join(b.root, relPath)
	src, err := os.ReadFile(fullPath)
	if err != nil {
		debug.LogBuild("skip %s: read failed: %v", relPath, err)
		return types.FileExtractions{}, false
	}

	lang, ok := langregistry.Detect(fullPath)
	if !ok {
		return types.FileExtractions{}, false
	}

	fe, err := b.ex.Extract(ctx, relPath, lang, src)
	if err != nil {
		debug.LogBuild("skip %s: extract failed: %v", relPath, err)
		return types.FileExtractions{}, false
	}
	return fe, true
}

// RebuildFile performs the incremental single-file rebuild the watcher
// uses: remove the file's prior state, then extract and ingest it fresh.
// If the path no longer resolves to a supported language it is only
// removed.
func (b *Builder) RebuildFile(ctx context.Context, g *graph.Graph, relPath string) {
	g.RemoveFile(relPath)

	fullPath := filepath.Join(b.root, relPath)
	if _, err := os.Stat(fullPath); err != nil {
		return
	}

	fe, ok := b.extractOne(ctx, relPath)
	if !ok {
		return
	}
	g.BuildFromExtractions([]types.FileExtractions{fe})
}
