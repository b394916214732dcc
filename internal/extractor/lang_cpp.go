package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/standardbeagle/anchor/internal/types"
)

func init() {
	register(types.LangCPP, languageSpec{
		Decls: []declSpec{
			{NodeType: "class_specifier", Kind: types.NodeClass, NameField: "name", Container: true},
			{NodeType: "struct_specifier", Kind: types.NodeStruct, NameField: "name", Container: true},
			{
				NodeType:  "function_definition",
				NameField: "declarator",
				Adjust:    cppFunctionName,
			},
		},
		Calls: []callSpec{
			{NodeType: "call_expression", Callee: cppCallee},
		},
		Imports: []importSpec{
			{NodeType: "preproc_include", Path: cppIncludePath},
		},
	})
}

// cppFunctionName descends a function_definition's declarator chain to find
// the plain identifier, and splits "Class::method" qualified names so the
// method attaches to its class as Parent.
func cppFunctionName(node *sitter.Node, src []byte, sym *types.ExtractedSymbol) {
	declarator := node.ChildByFieldName("declarator")
	name := cppDeclaratorName(declarator, src)
	if name == "" {
		return
	}
	if idx := strings.LastIndex(name, "::"); idx >= 0 {
		sym.Parent = name[:idx]
		sym.Name = name[idx+2:]
		sym.Kind = types.NodeMethod
	} else {
		sym.Name = name
		sym.Kind = types.NodeFunction
	}
}

func cppDeclaratorName(n *sitter.Node, src []byte) string {
	for n != nil {
		switch n.Type() {
		case "function_declarator", "pointer_declarator", "reference_declarator":
			n = n.ChildByFieldName("declarator")
		case "qualified_identifier", "identifier", "field_identifier", "destructor_name":
			return content(n, src)
		default:
			return content(n, src)
		}
	}
	return ""
}

func cppCallee(node *sitter.Node, src []byte) (string, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return "", false
	}
	switch fn.Type() {
	case "identifier", "qualified_identifier", "field_identifier":
		return content(fn, src), true
	case "field_expression":
		field := fn.ChildByFieldName("field")
		if field != nil {
			return content(field, src), true
		}
	}
	return "", false
}

func cppIncludePath(node *sitter.Node, src []byte) (string, bool) {
	if node.NamedChildCount() == 0 {
		return "", false
	}
	text := content(node.NamedChild(0), src)
	text = strings.Trim(text, "<>\"")
	return text, true
}
