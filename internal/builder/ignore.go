package builder

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ignoreSet aggregates the global gitignore, a project's own .gitignore
// files (one per directory, domain-scoped), and .git/info/exclude into a
// single matcher, per the hidden-file/global/local/exclude rules in the
// builder's directory-walk contract.
type ignoreSet struct {
	matcher gitignore.Matcher
}

func newIgnoreSet(root string) *ignoreSet {
	var patterns []gitignore.Pattern

	patterns = append(patterns, readGitignoreFile(globalGitignorePath(), nil)...)
	patterns = append(patterns, readGitignoreFile(filepath.Join(root, ".git", "info", "exclude"), nil)...)
	patterns = append(patterns, collectLocalGitignores(root)...)

	return &ignoreSet{matcher: gitignore.NewMatcher(patterns)}
}

// globalGitignorePath returns git's documented default location for
// core.excludesFile when unset; honoring an explicit core.excludesFile
// setting would require shelling out to git and is not attempted here.
func globalGitignorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "git", "ignore")
}

func collectLocalGitignores(root string) []gitignore.Pattern {
	var patterns []gitignore.Pattern
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || info.Name() != ".gitignore" {
			return nil
		}
		dir, relErr := filepath.Rel(root, filepath.Dir(path))
		if relErr != nil {
			return nil
		}
		var domain []string
		if dir != "." {
			domain = strings.Split(filepath.ToSlash(dir), "/")
		}
		patterns = append(patterns, readGitignoreFile(path, domain)...)
		return nil
	})
	return patterns
}

func readGitignoreFile(path string, domain []string) []gitignore.Pattern {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, domain))
	}
	return patterns
}

// ignored reports whether relPath (slash-separated, relative to root)
// should be skipped: a hidden dot-segment, or a gitignore/exclude match.
func (s *ignoreSet) ignored(relPath string, isDir bool) bool {
	segments := strings.Split(filepath.ToSlash(relPath), "/")
	for _, seg := range segments {
		if strings.HasPrefix(seg, ".") && seg != "." {
			return true
		}
	}
	return s.matcher.Match(segments, isDir)
}
