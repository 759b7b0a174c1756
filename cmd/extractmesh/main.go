// Command extractmesh extracts a surface mesh from a trained Gaussian
// Splatting model via the SuGaR pipeline. It resolves the checkpoint
// iteration and source dataset, builds the extraction command, and runs it
// with an out-of-memory fallback.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/edgrmdna/gaussian-splatting/internal/check"
	"github.com/edgrmdna/gaussian-splatting/internal/config"
	"github.com/edgrmdna/gaussian-splatting/internal/display"
	"github.com/edgrmdna/gaussian-splatting/internal/logging"
	"github.com/edgrmdna/gaussian-splatting/internal/model"
	"github.com/edgrmdna/gaussian-splatting/internal/sugar"
)

var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.DefaultMeshConfig()
	if err := config.ParseMeshFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "extractmesh: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "extractmesh: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(cfg.ColorMode, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "extractmesh: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()
	log.Info("=== extractmesh v%s (%s) ===", version, commit)

	if err := check.CheckMeshDeps(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Probe the model: checkpoints and recorded source path.
	modelAbs, err := filepath.Abs(cfg.ModelDir)
	if err != nil {
		log.Error("Cannot resolve model path: %s", cfg.ModelDir)
		return 1
	}
	info, err := model.Probe(modelAbs)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	iteration := cfg.Iteration
	if iteration == 0 {
		iteration = info.Latest()
		if iteration == 0 {
			log.Error("No checkpoint found in model; specify --iteration")
			return 1
		}
		log.Info("Using latest iteration: %d", iteration)
	} else if !info.HasIteration(iteration) {
		log.Error("Checkpoint not found: %s", info.CheckpointDir(iteration))
		return 1
	}

	// Resolve the source dataset, auto-detecting from cfg_args when omitted.
	sourcePath := cfg.SourceDir
	if sourcePath == "" {
		sourcePath = info.SourcePath
		if sourcePath == "" {
			log.Error("Could not auto-detect source data path; specify -s/--source")
			return 1
		}
		log.Info("Auto-detected source path: %s", sourcePath)
	}
	if _, err := os.Stat(sourcePath); err != nil {
		log.Error("Source path does not exist: %s", sourcePath)
		return 1
	}
	sourceAbs, err := filepath.Abs(sourcePath)
	if err != nil {
		log.Error("Cannot resolve source path: %s", sourcePath)
		return 1
	}

	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(modelAbs, "mesh")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Error("Cannot create output directory: %s", outputDir)
		return 1
	}

	log.Info("Model path:  %s", modelAbs)
	log.Info("Source path: %s", sourceAbs)
	log.Info("Output path: %s", outputDir)
	log.Info("Iteration:   %d", iteration)
	log.Info("Refinement:  %s", cfg.Refinement)
	log.Info("")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping…")
		cancel()
	}()

	if !extractWithRetry(ctx, &cfg, log, sourceAbs, modelAbs) {
		return 1
	}

	log.Success("Extraction complete")
	reportMeshOutputs(log, cfg.SugarDir)
	log.Info("To view the mesh, use a 3D viewer like MeshLab or Blender")
	return 0
}

// extractWithRetry runs the SuGaR command, retrying once at the low-poly
// budget when the first attempt dies of GPU memory exhaustion.
func extractWithRetry(ctx context.Context, cfg *config.MeshConfig, log *logging.Logger, sourceAbs, modelAbs string) bool {
	rs := sugar.NewRetryState()
	for {
		args := sugar.Build(cfg, sourceAbs, modelAbs, rs)
		log.Info("Running SuGaR extraction...")
		log.Debug(cfg.Verbose, "Command: %s", strings.Join(args, " "))

		result := sugar.Execute(ctx, args, cfg.SugarDir)
		if result.Err == nil {
			return true
		}

		if ctx.Err() != nil {
			log.Warn("Interrupted, aborting")
			return false
		}

		if rs.Advance(result.Stderr) {
			log.Warn("Retry %d: GPU out of memory, falling back to low-poly budget", rs.Attempt)
			continue
		}

		log.Error("SuGaR extraction failed: %v", result.Err)
		log.Error("Troubleshooting:")
		log.Error("  1. Activate the SuGaR conda environment")
		log.Error("  2. Verify PyTorch and CUDA: python -c \"import torch; print(torch.cuda.is_available())\"")
		log.Error("  3. Check GPU memory; SuGaR requires significant VRAM")
		return false
	}
}

// reportMeshOutputs lists mesh files under the SuGaR output tree. SuGaR
// writes into its own directory structure rather than our output path.
func reportMeshOutputs(log *logging.Logger, sugarDir string) {
	outRoot := filepath.Join(sugarDir, "output")
	if _, err := os.Stat(outRoot); err != nil {
		return
	}
	log.Info("Output files in SuGaR directory: %s", outRoot)
	_ = filepath.WalkDir(outRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".ply" || ext == ".obj" {
			log.Info("  - %s", path)
		}
		return nil
	})
}
