package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/standardbeagle/anchor/internal/types"
)

func init() {
	register(types.LangPython, languageSpec{
		Decls: []declSpec{
			{NodeType: "class_definition", Kind: types.NodeClass, NameField: "name", Container: true},
			{NodeType: "function_definition", NameField: "name", MethodIfNested: true},
		},
		Calls: []callSpec{
			{NodeType: "call", Callee: pythonCallee},
		},
		Imports: []importSpec{
			{NodeType: "import_statement", Path: pythonImportPath},
			{NodeType: "import_from_statement", Path: pythonFromImportPath},
		},
	})
}

func pythonCallee(node *sitter.Node, src []byte) (string, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return "", false
	}
	switch fn.Type() {
	case "identifier":
		return content(fn, src), true
	case "attribute":
		attr := fn.ChildByFieldName("attribute")
		if attr != nil {
			return content(attr, src), true
		}
	}
	return "", false
}

func pythonImportPath(node *sitter.Node, src []byte) (string, bool) {
	if node.NamedChildCount() == 0 {
		return "", false
	}
	return content(node.NamedChild(0), src), true
}

func pythonFromImportPath(node *sitter.Node, src []byte) (string, bool) {
	mod := node.ChildByFieldName("module_name")
	if mod == nil {
		return "", false
	}
	return content(mod, src), true
}
