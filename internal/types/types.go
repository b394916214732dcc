// Package types holds the data model shared by the extractor and the graph
// engine: node/edge kinds, the intermediate extraction records, and the
// language tag enum.
package types

// Language is one of the closed set of languages the extractor recognizes.
type Language string

const (
	LangRust       Language = "rust"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangGo         Language = "go"
	LangJava       Language = "java"
	LangCSharp     Language = "csharp"
	LangRuby       Language = "ruby"
	LangCPP        Language = "cpp"
	LangSwift      Language = "swift"
)

// Ecosystem groups languages that may eventually share cross-file
// resolution. All languages outside JS/TS/TSX are singleton ecosystems.
func (l Language) Ecosystem() string {
	switch l {
	case LangJavaScript, LangTypeScript, LangTSX:
		return "js"
	default:
		return string(l)
	}
}

// NodeKind is the closed set of node kinds in the graph.
type NodeKind string

const (
	NodeFile      NodeKind = "File"
	NodeFunction  NodeKind = "Function"
	NodeMethod    NodeKind = "Method"
	NodeStruct    NodeKind = "Struct"
	NodeClass     NodeKind = "Class"
	NodeInterface NodeKind = "Interface"
	NodeEnum      NodeKind = "Enum"
	NodeType      NodeKind = "Type"
	NodeConstant  NodeKind = "Constant"
	NodeModule    NodeKind = "Module"
	NodeImport    NodeKind = "Import"
	NodeTrait     NodeKind = "Trait"
	NodeImpl      NodeKind = "Impl"
	NodeVariable  NodeKind = "Variable"
)

// EdgeKind is the closed set of directed edge kinds in the graph.
type EdgeKind string

const (
	EdgeDefines    EdgeKind = "Defines"
	EdgeCalls      EdgeKind = "Calls"
	EdgeImports    EdgeKind = "Imports"
	EdgeContains   EdgeKind = "Contains"
	EdgeUsesType   EdgeKind = "UsesType"
	EdgeImplements EdgeKind = "Implements"
	EdgeExtends    EdgeKind = "Extends"
	EdgeExports    EdgeKind = "Exports"
	EdgeReferences EdgeKind = "References"
	EdgeParameter  EdgeKind = "Parameter"
	EdgeReturns    EdgeKind = "Returns"
)

// ExtractedSymbol is a single recognized declaration from one file.
type ExtractedSymbol struct {
	Name        string
	Kind        NodeKind
	LineStart   int // 1-indexed, inclusive
	LineEnd     int // 1-indexed, inclusive
	CodeSnippet string
	// Parent is the name of the enclosing syntactic container (class,
	// impl, trait, module), or empty for top-level declarations.
	Parent string
}

// ExtractedImport is a textual import path and the line it appears on.
type ExtractedImport struct {
	Path string
	Line int
}

// ExtractedCall is a recorded call site: who called whom, and where.
type ExtractedCall struct {
	Caller string // name of the innermost enclosing named declaration
	Callee string
	Line   int
}

// FileExtractions is the extractor's output for a single file.
type FileExtractions struct {
	Path    string
	Symbols []ExtractedSymbol
	Imports []ExtractedImport
	Calls   []ExtractedCall
}
