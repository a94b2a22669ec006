package analyzers

import (
	"go/ast"
	"go/types"
	"strconv"

	"golang.org/x/tools/go/analysis"
)

// resolvedPkgPath returns the package path of the function a selector
// callee resolves to, or "" when type information is unavailable.
func resolvedPkgPath(pass *analysis.Pass, sel *ast.SelectorExpr) string {
	if pass.TypesInfo == nil || sel.Sel == nil {
		return ""
	}
	obj := pass.TypesInfo.Uses[sel.Sel]
	fn, ok := obj.(*types.Func)
	if !ok || fn.Pkg() == nil {
		return ""
	}
	return fn.Pkg().Path()
}

// receiverIdentName returns the name of a selector's receiver when it is
// a bare identifier (the usual package-qualified call shape), or "".
func receiverIdentName(sel *ast.SelectorExpr) string {
	if id, ok := sel.X.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

// endpointOptionMethods are option constructors whose presence pins the
// endpoint regardless of their argument.
var endpointOptionMethods = map[string]struct{}{
	"WithEndpointResolver":            {},
	"WithEndpointResolverWithOptions": {},
	"WithBaseEndpoint":                {},
}

// hasRegionOrEndpointEvidence scans call arguments for anything that
// pins a region or endpoint: aws.Config-style composite literals with a
// non-empty Region/Endpoint key (nested composites included, for
// session.Options{Config: ...}), WithRegion/WithEndpoint* option calls,
// or option func literals assigning Region/BaseEndpoint. Best-effort
// only; values flowing in through variables are invisible, same as the
// boto3 rule's literal-only service check.
func hasRegionOrEndpointEvidence(args []ast.Expr) bool {
	for _, a := range args {
		if exprPinsEndpoint(a) {
			return true
		}
	}
	return false
}

func exprPinsEndpoint(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.UnaryExpr:
		return exprPinsEndpoint(x.X)
	case *ast.CompositeLit:
		return compositePinsEndpoint(x)
	case *ast.CallExpr:
		sel, ok := x.Fun.(*ast.SelectorExpr)
		if !ok || sel.Sel == nil {
			return false
		}
		name := sel.Sel.Name
		if _, found := endpointOptionMethods[name]; found {
			return true
		}
		if name == "WithRegion" || name == "WithEndpoint" {
			return len(x.Args) > 0 && valueNonEmpty(x.Args[0])
		}
		// chained builders: aws.NewConfig().WithMaxRetries(3).WithRegion("x")
		return exprPinsEndpoint(sel.X)
	case *ast.FuncLit:
		return funcLitPinsEndpoint(x)
	}
	return false
}

func compositePinsEndpoint(cl *ast.CompositeLit) bool {
	for _, el := range cl.Elts {
		kv, ok := el.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		if k, ok := kv.Key.(*ast.Ident); ok {
			switch k.Name {
			case "Region", "Endpoint":
				if valueNonEmpty(kv.Value) {
					return true
				}
			}
		}
		if exprPinsEndpoint(kv.Value) {
			return true
		}
	}
	return false
}

// funcLitPinsEndpoint reports whether an option func literal (e.g.
// func(o *s3.Options) { o.Region = "us-west-2" }) sets a region or
// endpoint field.
func funcLitPinsEndpoint(fl *ast.FuncLit) bool {
	if fl.Body == nil {
		return false
	}
	found := false
	ast.Inspect(fl.Body, func(n ast.Node) bool {
		as, ok := n.(*ast.AssignStmt)
		if !ok {
			return true
		}
		for i, lhs := range as.Lhs {
			sel, ok := lhs.(*ast.SelectorExpr)
			if !ok || sel.Sel == nil || i >= len(as.Rhs) {
				continue
			}
			switch sel.Sel.Name {
			case "Region", "Endpoint", "BaseEndpoint", "EndpointResolver":
				if valueNonEmpty(as.Rhs[i]) {
					found = true
					return false
				}
			}
		}
		return true
	})
	return found
}

// valueNonEmpty mirrors the boto3 rule's truthiness check: an empty
// string literal (directly or through aws.String("")) does not count as
// a pinned value; anything opaque does.
func valueNonEmpty(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.BasicLit:
		s, err := strconv.Unquote(v.Value)
		return err != nil || s != ""
	case *ast.CallExpr:
		if len(v.Args) == 1 {
			if bl, ok := v.Args[0].(*ast.BasicLit); ok {
				s, err := strconv.Unquote(bl.Value)
				return err != nil || s != ""
			}
		}
		return true
	case nil:
		return false
	}
	return true
}
