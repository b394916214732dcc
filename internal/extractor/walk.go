package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/standardbeagle/anchor/internal/types"
)

// frame tracks one enclosing named declaration during the tree walk.
type frame struct {
	name      string
	kind      types.NodeKind
	container bool
}

// walker performs a single recursive descent over a parsed tree, collecting
// symbols, imports, and calls per the active language's spec. It is the
// "visitor over the syntax tree" spec §4.2/§9 describes; language
// differences live entirely in the declSpec/callSpec/importSpec tables, not
// in separate walker implementations.
type walker struct {
	spec  languageSpec
	src   []byte
	stack []frame
	out   types.FileExtractions
}

func newWalker(spec languageSpec, path string, src []byte) *walker {
	return &walker{
		spec: spec,
		src:  src,
		out:  types.FileExtractions{Path: path},
	}
}

func (w *walker) currentContainer() string {
	for i := len(w.stack) - 1; i >= 0; i-- {
		if w.stack[i].container {
			return w.stack[i].name
		}
	}
	return ""
}

func (w *walker) currentCaller() string {
	if len(w.stack) == 0 {
		return ""
	}
	return w.stack[len(w.stack)-1].name
}

// line converts a tree-sitter 0-indexed row into spec's 1-indexed line.
func line(p sitter.Point) int {
	return int(p.Row) + 1
}

func (w *walker) visit(node *sitter.Node) {
	if node == nil {
		return
	}

	nodeType := node.Type()
	pushed := false

	for _, d := range w.spec.Decls {
		if d.NodeType != nodeType {
			continue
		}
		name, ok := fieldOrFirstNamed(node, d.NameField, w.src)
		if !ok || name == "" {
			break
		}

		kind := d.Kind
		if kind == "" {
			if d.MethodIfNested && len(w.stack) > 0 {
				kind = types.NodeMethod
			} else {
				kind = types.NodeFunction
			}
		}

		sym := types.ExtractedSymbol{
			Name:        name,
			Kind:        kind,
			LineStart:   line(node.StartPoint()),
			LineEnd:     line(node.EndPoint()),
			CodeSnippet: content(node, w.src),
			Parent:      w.currentContainer(),
		}
		if d.Adjust != nil {
			d.Adjust(node, w.src, &sym)
		}
		w.out.Symbols = append(w.out.Symbols, sym)

		containerName := sym.Name
		if d.ContainerName != nil {
			containerName = d.ContainerName(node, w.src)
		}
		w.stack = append(w.stack, frame{name: containerName, kind: sym.Kind, container: d.Container})
		pushed = true
		break
	}

	for _, c := range w.spec.Calls {
		if c.NodeType != nodeType {
			continue
		}
		callee, ok := c.Callee(node, w.src)
		if ok && callee != "" {
			w.out.Calls = append(w.out.Calls, types.ExtractedCall{
				Caller: w.currentCaller(),
				Callee: callee,
				Line:   line(node.StartPoint()),
			})
		}
		break
	}

	for _, imp := range w.spec.Imports {
		if imp.NodeType != nodeType {
			continue
		}
		path, ok := imp.Path(node, w.src)
		if ok && path != "" {
			w.out.Imports = append(w.out.Imports, types.ExtractedImport{
				Path: path,
				Line: line(node.StartPoint()),
			})
		}
		break
	}

	count := int(node.NamedChildCount())
	for i := 0; i < count; i++ {
		w.visit(node.NamedChild(i))
	}

	if pushed {
		w.stack = w.stack[:len(w.stack)-1]
	}
}
