package analyzers

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// AnalyzerSessionRegion flags aws-sdk-go session construction with no
// pinned region. A bare session.NewSession() resolves the region from
// the environment at runtime, which is the same implicit-default hazard
// as the global S3 endpoint.
var AnalyzerSessionRegion = &analysis.Analyzer{
	Name:     "sessionregion",
	Doc:      "flags aws session construction that does not pin a region",
	Run:      runSessionRegion,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

const sessionPkgPath = "github.com/aws/aws-sdk-go/aws/session"

func runSessionRegion(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}

	insp.Preorder(nodeFilter, func(n ast.Node) {
		ce, ok := n.(*ast.CallExpr)
		if !ok {
			return
		}
		sel, ok := ce.Fun.(*ast.SelectorExpr)
		if !ok || sel.Sel == nil {
			return
		}
		switch sel.Sel.Name {
		case "NewSession", "NewSessionWithOptions":
		default:
			return
		}
		if !isSessionConstructor(pass, sel) {
			return
		}
		if hasRegionOrEndpointEvidence(ce.Args) {
			return
		}
		pass.Reportf(ce.Pos(), "aws session constructed without a pinned region")
	})

	return nil, nil
}

func isSessionConstructor(pass *analysis.Pass, sel *ast.SelectorExpr) bool {
	if path := resolvedPkgPath(pass, sel); path != "" {
		return path == sessionPkgPath
	}
	return receiverIdentName(sel) == "session"
}
