package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/standardbeagle/anchor/internal/types"
)

// javascript, typescript and tsx share one grammar shape closely enough
// that the same node-type tables apply to all three; only the grammar
// handle used to parse differs (see langregistry).
func init() {
	spec := languageSpec{
		Decls: []declSpec{
			{NodeType: "class_declaration", Kind: types.NodeClass, NameField: "name", Container: true},
			{NodeType: "function_declaration", Kind: types.NodeFunction, NameField: "name"},
			{NodeType: "method_definition", Kind: types.NodeMethod, NameField: "name"},
			{NodeType: "interface_declaration", Kind: types.NodeInterface, NameField: "name", Container: true},
		},
		Calls: []callSpec{
			{NodeType: "call_expression", Callee: jsCallee},
		},
		Imports: []importSpec{
			{NodeType: "import_statement", Path: jsImportPath},
		},
	}
	register(types.LangJavaScript, spec)
	register(types.LangTypeScript, spec)
	register(types.LangTSX, spec)
}

func jsCallee(node *sitter.Node, src []byte) (string, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return "", false
	}
	switch fn.Type() {
	case "identifier":
		return content(fn, src), true
	case "member_expression":
		prop := fn.ChildByFieldName("property")
		if prop != nil {
			return content(prop, src), true
		}
	}
	return "", false
}

func jsImportPath(node *sitter.Node, src []byte) (string, bool) {
	source := node.ChildByFieldName("source")
	if source == nil {
		return "", false
	}
	return trimQuotes(content(source, src)), true
}
