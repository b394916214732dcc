package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/standardbeagle/anchor/internal/types"
)

// declSpec describes one tree-sitter node type that introduces a symbol
// declaration for a given language.
type declSpec struct {
	NodeType  string
	Kind      types.NodeKind // zero value: Method or Function per MethodIfNested, then Adjust
	NameField string         // field name holding the identifier node

	// Container marks declarations that other declarations nest inside
	// syntactically (class/impl/trait/module/namespace); their name becomes
	// the Parent of symbols declared directly within them.
	Container bool

	// MethodIfNested, when Kind is zero, reports Method if this node has
	// any enclosing declaration frame at all, Function otherwise. This
	// approximates "was this def written inside a class/module/function".
	MethodIfNested bool

	// Adjust, if set, runs after the symbol is built and may rewrite its
	// Kind/Parent/Name using language-specific structure (e.g. Go method
	// receivers, Rust impl blocks, C++ qualified definitions).
	Adjust func(node *sitter.Node, src []byte, sym *types.ExtractedSymbol)

	// ContainerName, if set, computes the name pushed as the container
	// frame instead of reusing the symbol's own Name (e.g. Rust impl
	// blocks push the target type name, not "impl Display for Foo").
	ContainerName func(node *sitter.Node, src []byte) string
}

// callSpec describes a call-expression-like node and how to read the
// callee's plain name out of it.
type callSpec struct {
	NodeType string
	Callee   func(node *sitter.Node, src []byte) (string, bool)
}

// importSpec describes an import/include/use-like node and how to read a
// textual path out of it.
type importSpec struct {
	NodeType string
	Path     func(node *sitter.Node, src []byte) (string, bool)
}

// languageSpec bundles the per-language tables the shared walker consults.
type languageSpec struct {
	Decls   []declSpec
	Calls   []callSpec
	Imports []importSpec
}

func content(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

// fieldOrFirstNamed reads the node's named field, falling back to its
// first named child so unfamiliar grammar shapes still yield something.
func fieldOrFirstNamed(n *sitter.Node, field string, src []byte) (string, bool) {
	if n == nil {
		return "", false
	}
	if child := n.ChildByFieldName(field); child != nil {
		return content(child, src), true
	}
	if n.NamedChildCount() > 0 {
		return content(n.NamedChild(0), src), true
	}
	return "", false
}

// trimQuotes strips a leading/trailing quote character from a literal.
func trimQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'' || first == '`') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}

var registry = map[types.Language]languageSpec{}

func register(lang types.Language, spec languageSpec) {
	registry[lang] = spec
}
