package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/anchor/internal/config"
	"github.com/standardbeagle/anchor/internal/graph"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func TestBuildIngestsRecognizedFilesAndSkipsOthers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/lib.rs", "fn add(a:i32,b:i32)->i32{a+b}\n")
	writeFile(t, root, "README.md", "not source\n")
	writeFile(t, root, "node_modules/pkg/index.js", "function ignored() {}\n")

	cfg := config.Default(root).Index
	b := New(root, cfg)
	g := graph.New()

	result, err := b.Build(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesExtracted)

	results := g.Search("add", 10)
	require.Len(t, results, 1)
	assert.Equal(t, "src/lib.rs", results[0].FilePath)
}

func TestRebuildFileRemovesSymbolsWhenFileDeleted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/lib.rs", "fn add(a:i32,b:i32)->i32{a+b}\n")

	cfg := config.Default(root).Index
	b := New(root, cfg)
	g := graph.New()

	_, err := b.Build(context.Background(), g)
	require.NoError(t, err)
	require.Len(t, g.Search("add", 10), 1)

	require.NoError(t, os.Remove(filepath.Join(root, "src/lib.rs")))
	b.RebuildFile(context.Background(), g, "src/lib.rs")

	assert.Empty(t, g.Search("add", 10))
}

func TestRebuildFileReExtractsOnChange(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/lib.rs", "fn add(a:i32,b:i32)->i32{a+b}\n")

	cfg := config.Default(root).Index
	b := New(root, cfg)
	g := graph.New()

	_, err := b.Build(context.Background(), g)
	require.NoError(t, err)

	writeFile(t, root, "src/lib.rs", "fn add(a:i32,b:i32)->i32{a+b} fn sub(a:i32,b:i32)->i32{a-b}\n")
	b.RebuildFile(context.Background(), g, "src/lib.rs")

	assert.Len(t, g.Search("sub", 10), 1)
	assert.Len(t, g.Search("add", 10), 1)
}
