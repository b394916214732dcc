package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/standardbeagle/anchor/internal/types"
)

func init() {
	register(types.LangGo, languageSpec{
		Decls: []declSpec{
			{NodeType: "function_declaration", Kind: types.NodeFunction, NameField: "name"},
			{
				NodeType:  "method_declaration",
				Kind:      types.NodeMethod,
				NameField: "name",
				Adjust:    goMethodReceiver,
			},
			{NodeType: "type_spec", NameField: "name", Kind: "", Container: true, Adjust: goTypeSpecKind, ContainerName: goTypeSpecName},
			{NodeType: "const_spec", Kind: types.NodeConstant, NameField: "name"},
		},
		Calls: []callSpec{
			{NodeType: "call_expression", Callee: goCallee},
		},
		Imports: []importSpec{
			{NodeType: "import_spec", Path: goImportPath},
		},
	})
}

// goMethodReceiver rewrites a method's Parent to the receiver's type name,
// stripping the leading "*" for pointer receivers.
func goMethodReceiver(node *sitter.Node, src []byte, sym *types.ExtractedSymbol) {
	recv := node.ChildByFieldName("receiver")
	if recv == nil {
		return
	}
	for i := 0; i < int(recv.NamedChildCount()); i++ {
		param := recv.NamedChild(i)
		typeNode := param.ChildByFieldName("type")
		if typeNode == nil {
			continue
		}
		name := content(typeNode, src)
		name = strings.TrimPrefix(name, "*")
		sym.Parent = name
		return
	}
}

// goTypeSpecKind decides Struct/Interface/Type from the type_spec's "type" field.
func goTypeSpecKind(node *sitter.Node, src []byte, sym *types.ExtractedSymbol) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		sym.Kind = types.NodeType
		return
	}
	switch typeNode.Type() {
	case "struct_type":
		sym.Kind = types.NodeStruct
	case "interface_type":
		sym.Kind = types.NodeInterface
	default:
		sym.Kind = types.NodeType
	}
}

func goTypeSpecName(node *sitter.Node, src []byte) string {
	if n := node.ChildByFieldName("name"); n != nil {
		return content(n, src)
	}
	return ""
}

func goCallee(node *sitter.Node, src []byte) (string, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return "", false
	}
	switch fn.Type() {
	case "identifier":
		return content(fn, src), true
	case "selector_expression":
		field := fn.ChildByFieldName("field")
		if field != nil {
			return content(field, src), true
		}
	}
	return "", false
}

func goImportPath(node *sitter.Node, src []byte) (string, bool) {
	pathNode := node.ChildByFieldName("path")
	if pathNode == nil {
		return "", false
	}
	return trimQuotes(content(pathNode, src)), true
}
