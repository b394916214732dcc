package builder

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/anchor/internal/config"
	"github.com/standardbeagle/anchor/internal/langregistry"
)

// candidateFiles walks root obeying hidden-file/gitignore/exclude rules and
// the config's include/exclude globs, returning every regular file whose
// extension the language registry recognizes, as paths relative to root.
func candidateFiles(root string, cfg config.Index) ([]string, error) {
	ignores := newIgnoreSet(root)

	var out []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		relSlash := filepath.ToSlash(rel)

		if ignores.ignored(relSlash, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !langregistry.Supported(path) {
			return nil
		}
		if cfg.MaxFileSize > 0 && info.Size() > cfg.MaxFileSize {
			return nil
		}
		if !matchesGlobs(relSlash, cfg.Include, cfg.Exclude) {
			return nil
		}

		out = append(out, relSlash)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func matchesGlobs(relPath string, include, exclude []string) bool {
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, pattern := range include {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}
