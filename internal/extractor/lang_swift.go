package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/standardbeagle/anchor/internal/types"
)

// Swift has no grounding source in the retrieved pack, so this table leans
// on fieldOrFirstNamed's first-named-child fallback rather than named
// fields that may not match tree-sitter-swift's actual grammar.
func init() {
	register(types.LangSwift, languageSpec{
		Decls: []declSpec{
			{NodeType: "class_declaration", Kind: types.NodeClass, NameField: "name", Container: true},
			{NodeType: "protocol_declaration", Kind: types.NodeInterface, NameField: "name", Container: true},
			{NodeType: "function_declaration", NameField: "name", MethodIfNested: true},
		},
		Calls: []callSpec{
			{NodeType: "call_expression", Callee: swiftCallee},
		},
		Imports: []importSpec{
			{NodeType: "import_declaration", Path: swiftImportPath},
		},
	})
}

func swiftCallee(node *sitter.Node, src []byte) (string, bool) {
	if node.NamedChildCount() == 0 {
		return "", false
	}
	fn := node.NamedChild(0)
	switch fn.Type() {
	case "simple_identifier":
		return content(fn, src), true
	case "navigation_expression":
		if fn.NamedChildCount() > 1 {
			return content(fn.NamedChild(int(fn.NamedChildCount())-1), src), true
		}
	}
	return content(fn, src), true
}

func swiftImportPath(node *sitter.Node, src []byte) (string, bool) {
	if node.NamedChildCount() == 0 {
		return "", false
	}
	return content(node.NamedChild(node.NamedChildCount()-1), src), true
}
