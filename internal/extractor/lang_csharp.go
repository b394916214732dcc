package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/standardbeagle/anchor/internal/types"
)

func init() {
	register(types.LangCSharp, languageSpec{
		Decls: []declSpec{
			{NodeType: "class_declaration", Kind: types.NodeClass, NameField: "name", Container: true},
			{NodeType: "interface_declaration", Kind: types.NodeInterface, NameField: "name", Container: true},
			{NodeType: "struct_declaration", Kind: types.NodeStruct, NameField: "name", Container: true},
			{NodeType: "enum_declaration", Kind: types.NodeEnum, NameField: "name", Container: true},
			{NodeType: "method_declaration", Kind: types.NodeMethod, NameField: "name"},
			{NodeType: "namespace_declaration", Kind: types.NodeModule, NameField: "name", Container: true},
		},
		Calls: []callSpec{
			{NodeType: "invocation_expression", Callee: csharpCallee},
		},
		Imports: []importSpec{
			{NodeType: "using_directive", Path: csharpUsingPath},
		},
	})
}

func csharpCallee(node *sitter.Node, src []byte) (string, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return "", false
	}
	switch fn.Type() {
	case "identifier":
		return content(fn, src), true
	case "member_access_expression":
		name := fn.ChildByFieldName("name")
		if name != nil {
			return content(name, src), true
		}
	}
	return "", false
}

func csharpUsingPath(node *sitter.Node, src []byte) (string, bool) {
	if node.NamedChildCount() == 0 {
		return "", false
	}
	return content(node.NamedChild(node.NamedChildCount()-1), src), true
}
