package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/amisstea/aws-client-audit/internal/app"
	"github.com/amisstea/aws-client-audit/internal/config"
)

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("aws-client-audit", flag.ExitOnError)
	path := fs.String("path", "sources", "Directory holding the repositories to audit")
	cfgPath := fs.String("config", "", "Optional YAML config file")
	include := fs.String("include", "", "Comma-separated Go analyzer rule IDs to run exclusively")
	disable := fs.String("disable", "", "Comma-separated Go analyzer rule IDs to skip")
	debug := fs.Bool("debug", false, "Enable debug logging across the app")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return errors.New("path must not be empty")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}
	config.InitLogger(cfg)

	return app.Run(ctx, app.Options{
		Root:          *path,
		IncludeCSV:    *include,
		DisableCSV:    *disable,
		DisabledRules: cfg.Rules.Disabled,
		ExcludeDirs:   cfg.Scan.Exclude,
	})
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		log.Fatalf("error: %v", err)
	}
}
