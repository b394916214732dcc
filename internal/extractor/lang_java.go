package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/standardbeagle/anchor/internal/types"
)

func init() {
	register(types.LangJava, languageSpec{
		Decls: []declSpec{
			{NodeType: "class_declaration", Kind: types.NodeClass, NameField: "name", Container: true},
			{NodeType: "interface_declaration", Kind: types.NodeInterface, NameField: "name", Container: true},
			{NodeType: "enum_declaration", Kind: types.NodeEnum, NameField: "name", Container: true},
			{NodeType: "method_declaration", Kind: types.NodeMethod, NameField: "name"},
			{NodeType: "constructor_declaration", Kind: types.NodeMethod, NameField: "name"},
		},
		Calls: []callSpec{
			{NodeType: "method_invocation", Callee: javaCallee},
		},
		Imports: []importSpec{
			{NodeType: "import_declaration", Path: javaImportPath},
		},
	})
}

func javaCallee(node *sitter.Node, src []byte) (string, bool) {
	name := node.ChildByFieldName("name")
	if name == nil {
		return "", false
	}
	return content(name, src), true
}

func javaImportPath(node *sitter.Node, src []byte) (string, bool) {
	if node.NamedChildCount() == 0 {
		return "", false
	}
	return content(node.NamedChild(0), src), true
}
