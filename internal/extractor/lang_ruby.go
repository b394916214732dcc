package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/standardbeagle/anchor/internal/types"
)

// Ruby has no import statement: "require" and "require_relative" are
// ordinary call nodes, so the importSpec below matches every call and keeps
// only those two methods. Such calls are also recorded by the call table.
func init() {
	register(types.LangRuby, languageSpec{
		Decls: []declSpec{
			{NodeType: "class", Kind: types.NodeClass, NameField: "name", Container: true},
			{NodeType: "module", Kind: types.NodeModule, NameField: "name", Container: true},
			{NodeType: "method", NameField: "name", MethodIfNested: true},
		},
		Calls: []callSpec{
			{NodeType: "call", Callee: rubyCallee},
		},
		Imports: []importSpec{
			{NodeType: "call", Path: rubyRequirePath},
		},
	})
}

func rubyCallee(node *sitter.Node, src []byte) (string, bool) {
	method := node.ChildByFieldName("method")
	if method == nil {
		return "", false
	}
	return content(method, src), true
}

// rubyRequirePath recognizes require/require_relative calls and reads their
// string-literal argument as the import path.
func rubyRequirePath(node *sitter.Node, src []byte) (string, bool) {
	method := node.ChildByFieldName("method")
	if method == nil {
		return "", false
	}
	name := content(method, src)
	if name != "require" && name != "require_relative" {
		return "", false
	}
	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return "", false
	}
	return trimQuotes(content(args.NamedChild(0), src)), true
}
