package main

import (
	analyzers "github.com/amisstea/aws-client-audit/internal/analyzers"

	"golang.org/x/tools/go/analysis/multichecker"
)

func main() {
	multichecker.Main(
		analyzers.AnalyzerS3GlobalEndpoint,
		analyzers.AnalyzerSessionRegion,
	)
}
