package analyzers

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// AnalyzerS3GlobalEndpoint flags S3 client construction that does not
// pin a region or endpoint, so requests would go through the legacy
// global S3 endpoint. Covers aws-sdk-go s3.New and aws-sdk-go-v2
// s3.NewFromConfig call sites.
var AnalyzerS3GlobalEndpoint = &analysis.Analyzer{
	Name:     "s3globalendpoint",
	Doc:      "flags S3 client construction without an explicit region or endpoint",
	Run:      runS3GlobalEndpoint,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

// s3PackagePaths are the package paths of the S3 client constructors.
var s3PackagePaths = map[string]struct{}{
	"github.com/aws/aws-sdk-go/service/s3":    {},
	"github.com/aws/aws-sdk-go-v2/service/s3": {},
}

func runS3GlobalEndpoint(pass *analysis.Pass) (any, error) {
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
		case "New", "NewFromConfig":
		default:
			return
		}
		if !isS3Constructor(pass, sel) {
			return
		}
		if hasRegionOrEndpointEvidence(ce.Args) {
			return
		}
		pass.Reportf(ce.Pos(), "S3 client constructed without region or endpoint; the global endpoint will be used")
	})

	return nil, nil
}

// isS3Constructor prefers type information to identify the s3 package;
// when the callee does not resolve (partial loads), it falls back to the
// conventional s3 import name.
func isS3Constructor(pass *analysis.Pass, sel *ast.SelectorExpr) bool {
	if path := resolvedPkgPath(pass, sel); path != "" {
		_, found := s3PackagePaths[path]
		return found
	}
	return receiverIdentName(sel) == "s3"
}
