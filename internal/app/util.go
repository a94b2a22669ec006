package app

import (
	"strings"

	"github.com/amisstea/aws-client-audit/internal/analyzers"
	arunner "github.com/amisstea/aws-client-audit/internal/analyzers/runner"
)

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		out = append(out, t)
	}
	return out
}

// buildAnalyzerSpecs builds the list of Go analyzers to run based on
// include/disable flags. If includeCSV is non-empty, only those rules
// are enabled. Otherwise, all known analyzers are enabled except those
// explicitly disabled via disableCSV.
func buildAnalyzerSpecs(includeCSV, disableCSV string) []arunner.Spec {
	// known analyzers
	catalog := map[string]arunner.Spec{
		"AWS001": {RuleID: "AWS001", Title: "S3 client constructed against the global endpoint", Suggestion: "Pin a region or endpoint when building the S3 client", Analyzer: analyzers.AnalyzerS3GlobalEndpoint},
		"AWS002": {RuleID: "AWS002", Title: "AWS session constructed without a region", Suggestion: "Set Config.Region or a shared-config region on the session", Analyzer: analyzers.AnalyzerSessionRegion},
	}
	var out []arunner.Spec
	if strings.TrimSpace(includeCSV) != "" {
		for _, id := range splitAndTrim(includeCSV) {
			if spec, ok := catalog[id]; ok {
				out = append(out, spec)
			}
		}
		return out
	}
	disabled := map[string]struct{}{}
	for _, id := range splitAndTrim(disableCSV) {
		if id != "" {
			disabled[id] = struct{}{}
		}
	}
	for id, spec := range catalog {
		if _, off := disabled[id]; off {
			continue
		}
		out = append(out, spec)
	}
	return out
}
