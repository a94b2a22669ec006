package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the audit tool configuration. All fields have defaults; a
// missing config file is not an error.
type Config struct {
	Scan struct {
		// Exclude lists extra directory names skipped during the walk,
		// on top of the scanner's built-ins.
		Exclude []string `yaml:"exclude"`
	} `yaml:"scan"`

	Rules struct {
		Disabled []string `yaml:"disabled"` // rule IDs to turn off
	} `yaml:"rules"`

	Logging struct {
		Format string `yaml:"format"` // "text"|"json"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func Default() Config {
	var c Config
	c.Logging.Format = "text"
	c.Logging.Level = "info"
	return c
}

// Load reads a YAML config from path (when non-empty) over the defaults
// and applies environment overrides.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("parse config: %w", err)
		}
	}
	if v := os.Getenv("AWS_AUDIT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("AWS_AUDIT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("AWS_AUDIT_DISABLED_RULES"); v != "" {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				c.Rules.Disabled = append(c.Rules.Disabled, id)
			}
		}
	}
	return c, nil
}

// InitLogger installs the process-wide slog logger per the config.
func InitLogger(c Config) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	var h slog.Handler
	if strings.ToLower(c.Logging.Format) == "json" {
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	} else {
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}
