package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	arunner "github.com/amisstea/aws-client-audit/internal/analyzers/runner"
	"github.com/amisstea/aws-client-audit/internal/scanner"
)

// Options controls one audit run.
type Options struct {
	// Root holds the repositories to audit. When it contains repo
	// checkouts (one directory per repo, e.g. as produced by
	// clone-github-org) each is audited separately; when it is itself a
	// source tree it is audited as a single repo.
	Root string

	// IncludeCSV/DisableCSV select the Go analyzers to run, by rule ID.
	IncludeCSV string
	DisableCSV string

	// DisabledRules lists Python rule IDs to turn off.
	DisabledRules []string

	// ExcludeDirs adds directory names skipped during Python scans.
	ExcludeDirs []string
}

// Run audits every repository under opts.Root for AWS client
// construction anti-patterns. Python trees go through the boto3 call
// scanner; Go modules go through the go/analysis runners. Per-repo
// failures are logged and do not abort the run.
func Run(ctx context.Context, opts Options) error {
	slog.Info("🔎 Scanning repositories for AWS client usage anti-patterns", "root", opts.Root)

	repos, err := repoDirs(opts.Root)
	if err != nil {
		slog.Error("❌ Failed to read scan root", "error", err, "root", opts.Root)
		return err
	}

	sc := scanner.New()
	sc.SetExcludedDirs(opts.ExcludeDirs)
	sc.SetDisabledRules(opts.DisabledRules)
	specs := buildAnalyzerSpecs(opts.IncludeCSV, opts.DisableCSV)

	var scanned, totalIssues int
	ruleCounts := map[string]int{}
	repoCounts := map[string]int{}

	for _, repoDir := range repos {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := filepath.Base(repoDir)
		slog.Info("📂 Scanning repo", "repo", name)
		scanned++

		issues, err := sc.ScanDirectory(ctx, repoDir)
		if err != nil {
			slog.Error("❌ Python scan failed", "repo", name, "error", err)
		}
		for _, is := range issues {
			slog.Warn("⚠️  Issue",
				"repo", name,
				"rule", is.RuleID,
				"title", is.Title,
				"message", is.Description,
				"file", is.Position.Filename,
				"line", is.Position.Line,
				"column", is.Position.Column,
				"suggestion", is.Suggestion,
			)
			ruleCounts[is.RuleID]++
			repoCounts[name]++
			totalIssues++
		}

		// Go analyzers only make sense on Go modules.
		if _, err := os.Stat(filepath.Join(repoDir, "go.mod")); err == nil && len(specs) > 0 {
			findings, err := arunner.RunSpecs(ctx, repoDir, specs)
			if err != nil {
				slog.Error("❌ Analyzer run failed", "repo", name, "error", err)
			}
			for _, f := range findings {
				slog.Warn("⚠️  Issue",
					"repo", name,
					"rule", f.RuleID,
					"title", f.Title,
					"message", f.Message,
					"file", f.Filename,
					"line", f.Line,
					"column", f.Column,
					"suggestion", f.Suggestion,
				)
				ruleCounts[f.RuleID]++
				repoCounts[name]++
				totalIssues++
			}
		}

		if repoCounts[name] == 0 {
			slog.Info("✅ No issues", "repo", name)
		}
	}

	slog.Info("📊 Scan summary", "repos_scanned", scanned, "total_issues", totalIssues, "issues_by_rule", ruleCounts, "issues_by_repo", repoCounts)
	return nil
}

// repoDirs lists the repository directories under root. A root that
// contains no subdirectories (or that looks like a checkout itself) is
// treated as a single repo.
func repoDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, ent := range entries {
		if ent.IsDir() {
			dirs = append(dirs, filepath.Join(root, ent.Name()))
		}
	}
	if len(dirs) == 0 {
		return []string{root}, nil
	}
	// Heuristic: a .git directory at root means root is the checkout.
	if _, err := os.Stat(filepath.Join(root, ".git")); err == nil {
		return []string{root}, nil
	}
	return dirs, nil
}
