// Package extractor turns a file's source bytes into the symbols, imports,
// and call sites the graph engine ingests. It parses with tree-sitter
// grammars and walks the resulting concrete syntax tree with a single
// shared visitor driven by per-language node-type tables.
package extractor

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	anchorerrors "github.com/standardbeagle/anchor/internal/errors"
	"github.com/standardbeagle/anchor/internal/langregistry"
	"github.com/standardbeagle/anchor/internal/types"
)

// Extractor parses source for a known language and extracts its symbols,
// imports, and calls.
type Extractor interface {
	Extract(ctx context.Context, path string, lang types.Language, src []byte) (types.FileExtractions, error)
}

// New returns the default tree-sitter-backed Extractor.
func New() Extractor {
	return treeSitterExtractor{}
}

type treeSitterExtractor struct{}

func (treeSitterExtractor) Extract(ctx context.Context, path string, lang types.Language, src []byte) (types.FileExtractions, error) {
	grammar, ok := langregistry.Grammar(lang)
	if !ok {
		return types.FileExtractions{}, &anchorerrors.UnsupportedLanguage{Path: path}
	}

	spec, ok := registry[lang]
	if !ok {
		return types.FileExtractions{}, &anchorerrors.UnsupportedLanguage{Path: path}
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return types.FileExtractions{}, &anchorerrors.ParseError{Path: path, Detail: "tree-sitter parse failed", Err: err}
	}
	if tree == nil {
		return types.FileExtractions{}, &anchorerrors.ParseError{Path: path, Detail: "tree-sitter returned no tree", Err: fmt.Errorf("nil tree")}
	}

	w := newWalker(spec, path, src)
	w.visit(tree.RootNode())

	out := w.out
	if out.Symbols == nil {
		out.Symbols = []types.ExtractedSymbol{}
	}
	if out.Imports == nil {
		out.Imports = []types.ExtractedImport{}
	}
	if out.Calls == nil {
		out.Calls = []types.ExtractedCall{}
	}
	return out, nil
}
