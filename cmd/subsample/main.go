// Command subsample creates a reduced copy of an undistorted COLMAP dataset
// by keeping every Nth shot, preserving referential consistency between the
// retained images and the filtered pose records.
//
// It parses flags, validates configuration and paths, and either runs
// dataset diagnostics (--check) or the curation pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/edgrmdna/gaussian-splatting/internal/check"
	"github.com/edgrmdna/gaussian-splatting/internal/config"
	"github.com/edgrmdna/gaussian-splatting/internal/display"
	"github.com/edgrmdna/gaussian-splatting/internal/logging"
	"github.com/edgrmdna/gaussian-splatting/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "subsample: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "subsample: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(cfg.ColorMode, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "subsample: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunDatasetCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	// Resolve and validate paths: source must exist, and output must not
	// be inside source (prevents re-discovering our own output images).
	sourceAbs, err := absPath(cfg.SourceDir)
	if err != nil {
		log.Error("Source path does not exist: %s", cfg.SourceDir)
		return 1
	}
	outputAbs, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		log.Error("Cannot resolve output path: %s", cfg.OutputDir)
		return 1
	}
	if err := cfg.ValidatePaths(sourceAbs, outputAbs); err != nil {
		log.Error("%v", err)
		log.Error("Choose an output path outside: %s", cfg.SourceDir)
		return 1
	}

	log.Info("=== subsample v%s (%s) ===", version, commit)
	log.Info("Source: %s", cfg.SourceDir)
	log.Info("Output: %s", cfg.OutputDir)
	if cfg.DryRun {
		log.Warn("DRY RUN — no files will be written")
	}
	log.Info("")

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so the
	// copy loop can stop between files.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping…")
		cancel()
	}()

	// Phase 4: Run pipeline (index → select → materialize → filter).
	stats := pipeline.Run(ctx, &cfg, log)

	if stats.Failed {
		return 1
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of source vs output directory hierarchies.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
