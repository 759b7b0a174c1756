// Package check provides dataset diagnostics (--check mode) for the
// subsample tool and environment validation for the extractmesh tool.
package check

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/edgrmdna/gaussian-splatting/internal/colmap"
	"github.com/edgrmdna/gaussian-splatting/internal/config"
	"github.com/edgrmdna/gaussian-splatting/internal/shots"
)

// Sentinel errors returned by CheckMeshDeps when the extraction environment
// is incomplete.
var (
	ErrPythonNotFound = errors.New("python interpreter not found on PATH")
	ErrSugarNotFound  = errors.New("SuGaR checkout not found (run: git submodule update --init --recursive)")
)

// Logger is the minimal logging interface needed by RunDatasetCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunDatasetCheck inspects the dataset layout the subsample tool expects:
// the images directory (with a shot count), the sparse reconstruction
// variant, and the pose file format. Informational only; returns false when
// the dataset cannot be subsampled at all.
func RunDatasetCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Dataset Check ===")
	log.Info("Source: %s", cfg.SourceDir)

	if _, err := os.Stat(cfg.SourceDir); err != nil {
		log.Error("Source path does not exist")
		return false
	}

	ok := checkImages(cfg, log)
	checkSparse(cfg, log)
	return ok
}

func checkImages(cfg *config.Config, log Logger) bool {
	imagesDir := filepath.Join(cfg.SourceDir, "images")
	if _, err := os.Stat(imagesDir); err != nil {
		log.Error("Images directory not found: %s", imagesDir)
		return false
	}

	ix, err := shots.BuildIndex(imagesDir, cfg.Extensions, cfg.Separator)
	if err != nil {
		if errors.Is(err, shots.ErrNoImages) {
			log.Error("No images with extensions %v found", cfg.Extensions)
		} else {
			log.Error("Image scan failed: %v", err)
		}
		return false
	}

	log.Success("Images: %d files, %d shots, %d images per shot",
		len(ix.Images), len(ix.Shots), ix.ImagesPerShot())
	return true
}

func checkSparse(cfg *config.Config, log Logger) {
	sparseDir, err := colmap.ResolveSparseDir(cfg.SourceDir)
	if err != nil {
		log.Warn("No sparse reconstruction found; subsampling will produce images only")
		return
	}
	log.Success("Sparse reconstruction: %s", sparseDir)

	if _, err := colmap.FindPoseFile(sparseDir); err != nil {
		switch {
		case errors.Is(err, colmap.ErrBinaryOnly):
			log.Warn("Pose records: images.bin only (text filtering unsupported)")
		case errors.Is(err, colmap.ErrNoPoseData):
			log.Warn("Pose records: none found in sparse directory")
		default:
			log.Warn("Pose records: %v", err)
		}
		return
	}
	log.Success("Pose records: images.txt (filterable)")
}

// CheckMeshDeps is the pre-extraction validation for extractmesh: the
// python interpreter must be on PATH and the SuGaR checkout must contain
// train.py. Returns a sentinel error on failure.
func CheckMeshDeps(cfg *config.MeshConfig) error {
	if _, err := exec.LookPath(cfg.Python); err != nil {
		return ErrPythonNotFound
	}
	if _, err := os.Stat(filepath.Join(cfg.SugarDir, "train.py")); err != nil {
		return ErrSugarNotFound
	}
	return nil
}
