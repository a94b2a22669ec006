package pyast

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// maxLowerDepth bounds the lowering recursion so a pathological or
// corrupted tree can never loop or blow the stack. Beyond the cap the
// node is lowered to Other.
const maxLowerDepth = 128

// Parse parses Python source with tree-sitter and lowers every call
// expression into the pyast model. Syntax errors do not fail the parse;
// tree-sitter recovers and the calls it could still recognize are
// returned, so one bad region never hides the rest of the file.
func Parse(ctx context.Context, src []byte, filename string) (*File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	defer tree.Close()

	f := &File{Path: filename}
	root := tree.RootNode()
	if root == nil {
		return f, nil
	}
	collectCalls(root, src, filename, f)
	return f, nil
}

// ParseFile reads and parses one Python file.
func ParseFile(ctx context.Context, path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(ctx, src, path)
}

// collectCalls appends every call expression under n, in source order.
// Nested calls are collected too: each syntactic call gets exactly one
// entry.
func collectCalls(n *sitter.Node, src []byte, filename string, f *File) {
	if n == nil {
		return
	}
	if n.Type() == "call" {
		if call, ok := lowerCall(n, src, filename, 0); ok {
			f.Calls = append(f.Calls, call)
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		collectCalls(n.NamedChild(i), src, filename, f)
	}
}

func lowerCall(n *sitter.Node, src []byte, filename string, depth int) (*Call, bool) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return nil, false
	}
	call := &Call{
		Func:     lowerExpr(fn, src, filename, depth+1),
		Position: position(n, filename),
	}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return call, true
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		switch arg.Type() {
		case "comment":
			// tree-sitter keeps comments inside argument lists
		case "keyword_argument":
			name := arg.ChildByFieldName("name")
			if name == nil {
				continue
			}
			kw := Keyword{Name: text(name, src)}
			if value := arg.ChildByFieldName("value"); value != nil {
				kw.Value = lowerExpr(value, src, filename, depth+1)
			}
			call.Keywords = append(call.Keywords, kw)
		case "dictionary_splat":
			// **kwargs carries no statically known names
		default:
			call.Args = append(call.Args, lowerExpr(arg, src, filename, depth+1))
		}
	}
	return call, true
}

func lowerExpr(n *sitter.Node, src []byte, filename string, depth int) Expr {
	if n == nil {
		return nil
	}
	if depth > maxLowerDepth {
		return &Other{Type: n.Type(), Position: position(n, filename)}
	}
	switch n.Type() {
	case "identifier":
		return &Ident{Name: text(n, src), Position: position(n, filename)}
	case "attribute":
		obj := n.ChildByFieldName("object")
		attr := n.ChildByFieldName("attribute")
		if obj == nil || attr == nil {
			return &Other{Type: n.Type(), Position: position(n, filename)}
		}
		return &Attribute{
			Value:    lowerExpr(obj, src, filename, depth+1),
			Attr:     text(attr, src),
			Position: position(n, filename),
		}
	case "call":
		if call, ok := lowerCall(n, src, filename, depth); ok {
			return call
		}
		return &Other{Type: n.Type(), Position: position(n, filename)}
	case "string":
		return &StringLit{Value: stringContent(text(n, src)), Position: position(n, filename)}
	default:
		return &Other{Type: n.Type(), Position: position(n, filename)}
	}
}

// stringContent strips literal prefixes (r, b, f, u in any case) and the
// surrounding quotes from a raw Python string literal.
func stringContent(raw string) string {
	raw = strings.TrimLeft(raw, "rRbBuUfF")
	return strings.Trim(raw, `"'`)
}

func text(n *sitter.Node, src []byte) string {
	return string(src[n.StartByte():n.EndByte()])
}

func position(n *sitter.Node, filename string) Position {
	return Position{
		Filename: filename,
		Line:     int(n.StartPoint().Row) + 1,
		Column:   int(n.StartPoint().Column),
	}
}
