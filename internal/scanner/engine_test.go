package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/amisstea/aws-client-audit/internal/pyast"
)

// mockRule records that it was executed and returns a canned issue for
// every call node it sees.
type mockRule struct{}

func (m mockRule) ID() string          { return "MOCK" }
func (m mockRule) Description() string { return "mock" }
func (m mockRule) VisitCall(_ *pyast.Call, report func(Issue)) {
	report(Issue{RuleID: "MOCK", Title: "mock issue", Severity: SeverityWarning})
}

func TestEnginePipeline(t *testing.T) {
	dir := t.TempDir()
	_ = os.MkdirAll(filepath.Join(dir, "pkg"), 0o755)
	_ = os.WriteFile(filepath.Join(dir, "pkg", "app.py"), []byte("import boto3\nc = boto3.client(\"s3\")\n"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "README.md"), []byte("boto3.client(\"s3\")\n"), 0o644)

	// No rules: loading works, zero issues.
	eng := NewEngine()
	if issues, err := eng.Run(context.Background(), dir); err != nil {
		t.Fatalf("engine run error: %v", err)
	} else if len(issues) != 0 {
		t.Fatalf("expected 0 issues, got %d", len(issues))
	}

	// The mock rule fires once per call expression; the markdown file
	// must be ignored.
	eng = NewEngine(mockRule{})
	issues, err := eng.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("engine run error: %v", err)
	}
	if len(issues) != 1 || issues[0].RuleID != "MOCK" {
		t.Fatalf("unexpected issues: %+v", issues)
	}
}

func TestEngineSkipsVendoredDirs(t *testing.T) {
	dir := t.TempDir()
	_ = os.MkdirAll(filepath.Join(dir, ".venv"), 0o755)
	_ = os.WriteFile(filepath.Join(dir, ".venv", "lib.py"), []byte("boto3.client(\"s3\")\n"), 0o644)

	eng := NewEngine(mockRule{})
	issues, err := eng.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("engine run error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected vendored dir to be skipped, got %d issues", len(issues))
	}
}

func TestScannerSetExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	_ = os.MkdirAll(filepath.Join(dir, "generated"), 0o755)
	_ = os.WriteFile(filepath.Join(dir, "generated", "stub.py"), []byte("c = boto3.client(\"s3\")\n"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "app.py"), []byte("c = boto3.client(\"s3\")\n"), 0o644)

	s := New()
	s.SetExcludedDirs([]string{"generated"})
	issues, err := s.ScanDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected only app.py to be scanned, got %d issues", len(issues))
	}
}

func TestEngineSurvivesSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	_ = os.WriteFile(filepath.Join(dir, "broken.py"), []byte("def broken(:\n    pass\n"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "good.py"), []byte("c = boto3.client(\"s3\")\n"), 0o644)

	s := New()
	issues, err := s.ScanDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue from good.py, got %d", len(issues))
	}
	if filepath.Base(issues[0].Position.Filename) != "good.py" {
		t.Fatalf("unexpected issue file: %s", issues[0].Position.Filename)
	}
}

func TestScannerSetDisabledRules(t *testing.T) {
	dir := t.TempDir()
	_ = os.WriteFile(filepath.Join(dir, "app.py"), []byte("c = boto3.client(\"s3\")\n"), 0o644)

	s := New()
	s.SetDisabledRules([]string{RuleS3GlobalEndpointID})
	issues, err := s.ScanDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected 0 issues with rule disabled, got %d", len(issues))
	}
}
