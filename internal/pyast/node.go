// Package pyast holds a minimal expression model for Python call sites.
//
// Rules never see raw tree-sitter nodes. Every syntactic call is lowered
// into this tagged-variant model, so "unrecognized shape" is an explicit
// Other variant instead of a missing-attribute surprise, and rules can
// pattern match exhaustively with a type switch.
package pyast

// Position locates a node within its source file. Lines are 1-based,
// columns 0-based (tree-sitter convention).
type Position struct {
	Filename string
	Line     int
	Column   int
}

// Expr is one expression node. Concrete variants: *Ident, *Attribute,
// *Call, *StringLit, *Other.
type Expr interface {
	Pos() Position
	exprNode()
}

// Ident is a bare name reference, e.g. boto3.
type Ident struct {
	Name     string
	Position Position
}

// Attribute is an attribute access a.b: Value is the base expression,
// Attr the accessed name.
type Attribute struct {
	Value    Expr
	Attr     string
	Position Position
}

// Keyword is one name=value argument. Value may be nil for malformed
// input; callers must treat nil as absent.
type Keyword struct {
	Name  string
	Value Expr
}

// Call is a call expression with ordered positional and keyword
// arguments. Func is the callee expression.
type Call struct {
	Func     Expr
	Args     []Expr
	Keywords []Keyword
	Position Position
}

// StringLit is a string literal with quotes and prefixes stripped.
type StringLit struct {
	Value    string
	Position Position
}

// Other covers every expression shape the lowering does not model.
// Type preserves the tree-sitter node type for debugging.
type Other struct {
	Type     string
	Position Position
}

func (e *Ident) Pos() Position     { return e.Position }
func (e *Attribute) Pos() Position { return e.Position }
func (e *Call) Pos() Position      { return e.Position }
func (e *StringLit) Pos() Position { return e.Position }
func (e *Other) Pos() Position     { return e.Position }

func (*Ident) exprNode()     {}
func (*Attribute) exprNode() {}
func (*Call) exprNode()      {}
func (*StringLit) exprNode() {}
func (*Other) exprNode()     {}

// File is the lowered view of one Python source file: every call
// expression found anywhere in the tree, in source order.
type File struct {
	Path  string
	Calls []*Call
}

// IsTruthy reports whether a keyword-argument value counts as present
// and non-empty. Empty string literals and the None/False constants are
// falsy; anything else that exists (variables, calls, numbers) counts.
func IsTruthy(e Expr) bool {
	switch v := e.(type) {
	case nil:
		return false
	case *StringLit:
		return v.Value != ""
	case *Other:
		return v.Type != "none" && v.Type != "false"
	default:
		return true
	}
}
