package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Logging.Format != "text" || c.Logging.Level != "info" {
		t.Fatalf("unexpected defaults: %+v", c.Logging)
	}
	if len(c.Rules.Disabled) != 0 {
		t.Fatalf("expected no disabled rules by default")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.yaml")
	data := `
scan:
  exclude: [generated]
rules:
  disabled: [s3-with-global-endpoint]
logging:
  format: json
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Scan.Exclude) != 1 || c.Scan.Exclude[0] != "generated" {
		t.Fatalf("unexpected excludes: %v", c.Scan.Exclude)
	}
	if len(c.Rules.Disabled) != 1 || c.Rules.Disabled[0] != "s3-with-global-endpoint" {
		t.Fatalf("unexpected disabled rules: %v", c.Rules.Disabled)
	}
	if c.Logging.Format != "json" || c.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", c.Logging)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AWS_AUDIT_LOG_LEVEL", "warn")
	t.Setenv("AWS_AUDIT_DISABLED_RULES", "s3-with-global-endpoint, AWS002")
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Logging.Level != "warn" {
		t.Fatalf("expected env level override, got %q", c.Logging.Level)
	}
	if len(c.Rules.Disabled) != 2 || c.Rules.Disabled[1] != "AWS002" {
		t.Fatalf("unexpected disabled rules: %v", c.Rules.Disabled)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}
