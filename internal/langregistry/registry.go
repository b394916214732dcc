// Package langregistry maps file extensions to a supported language tag and
// to the tree-sitter grammar handle the extractor parses it with.
package langregistry

import (
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/swift"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/standardbeagle/anchor/internal/types"
)

// extToLanguage is the extension -> language tag table from spec §4.1.
var extToLanguage = map[string]types.Language{
	".rs":  types.LangRust,
	".py":  types.LangPython,
	".pyw": types.LangPython,
	".js":  types.LangJavaScript,
	".mjs": types.LangJavaScript,
	".cjs": types.LangJavaScript,
	".ts":  types.LangTypeScript,
	".mts": types.LangTypeScript,
	".cts": types.LangTypeScript,
	".tsx": types.LangTSX,
	".jsx": types.LangTSX,
	".go":  types.LangGo,
	".java": types.LangJava,
	".cs":   types.LangCSharp,
	".rb":   types.LangRuby,
	".cpp":  types.LangCPP,
	".cc":   types.LangCPP,
	".cxx":  types.LangCPP,
	".hpp":  types.LangCPP,
	".h":    types.LangCPP,
	".swift": types.LangSwift,
}

var (
	grammarsOnce sync.Once
	grammars     map[types.Language]*sitter.Language
)

func initGrammars() {
	grammarsOnce.Do(func() {
		grammars = map[types.Language]*sitter.Language{
			types.LangRust:       rust.GetLanguage(),
			types.LangPython:     python.GetLanguage(),
			types.LangJavaScript: javascript.GetLanguage(),
			types.LangTypeScript: typescript.GetLanguage(),
			types.LangTSX:        tsx.GetLanguage(),
			types.LangGo:         golang.GetLanguage(),
			types.LangJava:       java.GetLanguage(),
			types.LangCSharp:     csharp.GetLanguage(),
			types.LangRuby:       ruby.GetLanguage(),
			types.LangCPP:        cpp.GetLanguage(),
			types.LangSwift:      swift.GetLanguage(),
		}
	})
}

// Detect returns the language tag for a path based on its extension, and
// false if the extension is not recognized.
func Detect(path string) (types.Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := extToLanguage[ext]
	return lang, ok
}

// Grammar returns the tree-sitter grammar handle for a language tag.
func Grammar(lang types.Language) (*sitter.Language, bool) {
	initGrammars()
	g, ok := grammars[lang]
	return g, ok
}

// Supported reports whether path resolves to a known language at all,
// without paying for grammar initialization.
func Supported(path string) bool {
	_, ok := Detect(path)
	return ok
}
