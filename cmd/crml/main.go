package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mayowa/crml"
)

func main() {
	flag.Usage = func() {
		_, _ = fmt.Fprintln(os.Stderr, "Usage: crml [flags]")
		_, _ = fmt.Fprintln(os.Stderr, "")
		_, _ = fmt.Fprintln(os.Stderr, "Compiles the templates listed in crml.yaml (or crml.json) into one Go file.")
		flag.PrintDefaults()
	}
	configFlag := flag.String("config", "", "config file (defaults to crml.yaml, crml.yml or crml.json in the working directory)")
	levelFlag := flag.String("log-level", "info", "debug, info, warn or error")
	checkFlag := flag.Bool("check", false, "warn about unbalanced markup in each template")
	dryRunFlag := flag.Bool("dry-run", false, "print the generated file instead of writing it")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(*levelFlag)}))

	if err := run(logger, *configFlag, *checkFlag, *dryRunFlag); err != nil {
		logger.Error("build failed", "error", err)
		os.Exit(1)
	}
}

func parseLevel(val string) slog.Level {
	switch strings.ToLower(val) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func run(logger *slog.Logger, path string, check, dryRun bool) error {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if path, err = crml.FindConfig(cwd); err != nil {
			return err
		}
	}

	cfg, err := crml.LoadConfig(path)
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "path", path, "root_dir", cfg.RootDir, "templates", len(cfg.Include))

	c := cfg.Compiler().Logger(logger)

	// compile everything first so every broken template is reported
	var allErr error
	for _, e := range cfg.Include {
		body, err := c.Compile(e.Template)
		if err != nil {
			allErr = errors.Join(allErr, err)
			continue
		}
		if !check {
			continue
		}
		for _, p := range crml.Check(body) {
			logger.Warn("markup", "template", e.Template, "problem", p.String())
		}
	}
	if allErr != nil {
		return allErr
	}

	src, err := c.Build(cfg.Package, cfg.Include, cfg.Imports...)
	if err != nil {
		return err
	}

	if dryRun {
		_, err = os.Stdout.Write(src)
		return err
	}

	if err := crml.WriteFile(cfg.OutputPath(), src); err != nil {
		return err
	}
	logger.Info("generated", "file", cfg.OutputPath(), "templates", len(cfg.Include))

	return nil
}
