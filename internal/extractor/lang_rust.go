package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/standardbeagle/anchor/internal/types"
)

func init() {
	register(types.LangRust, languageSpec{
		Decls: []declSpec{
			{NodeType: "struct_item", Kind: types.NodeStruct, NameField: "name", Container: true},
			{NodeType: "enum_item", Kind: types.NodeEnum, NameField: "name", Container: true},
			{NodeType: "trait_item", Kind: types.NodeTrait, NameField: "name", Container: true},
			{
				NodeType:      "impl_item",
				Kind:          types.NodeImpl,
				NameField:     "type",
				Container:     true,
				ContainerName: rustImplTargetName,
			},
			{NodeType: "function_item", NameField: "name", MethodIfNested: true},
			{NodeType: "mod_item", Kind: types.NodeModule, NameField: "name", Container: true},
		},
		Calls: []callSpec{
			{NodeType: "call_expression", Callee: rustCallee},
		},
		Imports: []importSpec{
			{NodeType: "use_declaration", Path: rustUsePath},
		},
	})
}

// rustImplTargetName reads "impl Trait for Type" or "impl Type"'s Type, so
// methods nested in the impl block attach to the concrete type, not a
// synthesized "impl Display for Foo" label.
func rustImplTargetName(node *sitter.Node, src []byte) string {
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		return content(typeNode, src)
	}
	return ""
}

func rustCallee(node *sitter.Node, src []byte) (string, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return "", false
	}
	switch fn.Type() {
	case "identifier":
		return content(fn, src), true
	case "field_expression":
		field := fn.ChildByFieldName("field")
		if field != nil {
			return content(field, src), true
		}
	case "scoped_identifier":
		name := fn.ChildByFieldName("name")
		if name != nil {
			return content(name, src), true
		}
	}
	return "", false
}

func rustUsePath(node *sitter.Node, src []byte) (string, bool) {
	if node.NamedChildCount() == 0 {
		return "", false
	}
	return content(node.NamedChild(0), src), true
}
