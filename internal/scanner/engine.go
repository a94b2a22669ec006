package scanner

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/amisstea/aws-client-audit/internal/pyast"
)

// Rule defines a static analysis rule over Python call expressions.
// VisitCall is invoked exactly once per call node; a rule reports a
// finding by calling report and stays silent otherwise. Rules must never
// panic on unexpected node shapes: anything they do not recognize is a
// non-match.
type Rule interface {
	ID() string
	Description() string
	VisitCall(call *pyast.Call, report func(Issue))
}

// Engine coordinates locating Python sources and executing rules.
type Engine struct {
	rules      []Rule
	extraSkips map[string]struct{}
}

func NewEngine(rules ...Rule) *Engine {
	return &Engine{rules: append([]Rule{}, rules...)}
}

// SetExcludedDirs adds directory names to skip during the walk, on top
// of the built-in skip list.
func (e *Engine) SetExcludedDirs(names []string) {
	e.extraSkips = map[string]struct{}{}
	for _, n := range names {
		if n != "" {
			e.extraSkips[n] = struct{}{}
		}
	}
}

// skippedDirs are directory names that never contain first-party code
// worth auditing.
var skippedDirs = map[string]struct{}{
	".git":          {},
	".tox":          {},
	".venv":         {},
	"venv":          {},
	"__pycache__":   {},
	"node_modules":  {},
	"site-packages": {},
}

func isPythonFile(path string) bool {
	return strings.HasSuffix(path, ".py") || strings.HasSuffix(path, ".pyi")
}

// Run walks the tree under root, parses each Python file, and applies
// every rule to every call expression. A file that cannot be read or
// parsed is logged and skipped; it never aborts the rest of the scan.
func (e *Engine) Run(ctx context.Context, root string) ([]Issue, error) {
	var out []Issue
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("⚠️  Skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			if _, skip := skippedDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			if _, skip := e.extraSkips[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if !isPythonFile(path) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("⚠️  Failed to read file", "file", path, "error", err)
			return nil
		}
		f, err := pyast.Parse(ctx, src, path)
		if err != nil {
			slog.Warn("⚠️  Failed to parse file", "file", path, "error", err)
			return nil
		}
		slog.Debug("🧩 Scanning file", "file", path, "calls", len(f.Calls))
		out = append(out, e.runFile(f)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// runFile applies every rule to every lowered call in f.
func (e *Engine) runFile(f *pyast.File) []Issue {
	var out []Issue
	report := func(is Issue) { out = append(out, is) }
	for _, call := range f.Calls {
		for _, r := range e.rules {
			r.VisitCall(call, report)
		}
	}
	return out
}
