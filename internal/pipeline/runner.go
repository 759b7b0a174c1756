// Package pipeline orchestrates a curation run: discover and group images
// into shots, apply stride/offset selection, materialize the retained
// images, and filter the pose records to match.
package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/edgrmdna/gaussian-splatting/internal/colmap"
	"github.com/edgrmdna/gaussian-splatting/internal/config"
	"github.com/edgrmdna/gaussian-splatting/internal/display"
	"github.com/edgrmdna/gaussian-splatting/internal/logging"
	"github.com/edgrmdna/gaussian-splatting/internal/materialize"
	"github.com/edgrmdna/gaussian-splatting/internal/selection"
	"github.com/edgrmdna/gaussian-splatting/internal/shots"
)

// Run is the top-level entry point. Phases are strictly ordered — index →
// select → materialize → filter — and each phase is a pure function of the
// previous one's output; all filesystem writes happen in the last two.
// Image copying and pose filtering are independent of each other, but the
// pose filter itself must stay sequential: its header/continuation pairing
// is stream-order-dependent.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	var stats RunStats

	// --- Index ---
	imagesDir := filepath.Join(cfg.SourceDir, "images")
	if _, err := os.Stat(imagesDir); err != nil {
		log.Error("Images directory not found: %s", imagesDir)
		stats.Failed = true
		return stats
	}

	log.Info("Scanning images in: %s", imagesDir)
	ix, err := shots.BuildIndex(imagesDir, cfg.Extensions, cfg.Separator)
	if err != nil {
		if errors.Is(err, shots.ErrNoImages) {
			log.Error("No images found in %s", imagesDir)
		} else {
			log.Error("Image discovery failed: %v", err)
		}
		stats.Failed = true
		return stats
	}
	stats.TotalImages = len(ix.Images)
	stats.TotalShots = len(ix.Shots)

	// --- Select ---
	ret := selection.Build(ix, cfg.KeepEvery, cfg.Offset)
	stats.SelectedShots = len(ret.ShotIDs)
	stats.SelectedImages = len(ret.Images)

	logDatasetStats(cfg, log, &stats, ix)

	if ret.Empty() {
		log.Warn("Selection is empty: offset %d is at or beyond the shot count (%d)",
			cfg.Offset, stats.TotalShots)
		log.Warn("Nothing to do; no output written")
		return stats
	}

	if cfg.Verbose {
		for _, id := range ret.ShotIDs {
			log.Debug(true, "  shot %s (%d images)", id, len(ix.Shots[id]))
		}
	}

	if cfg.DryRun {
		log.Success("[DRY] Would copy %d images and filter pose records for %d shots",
			stats.SelectedImages, stats.SelectedShots)
		return stats
	}

	// --- Materialize images ---
	outImages := filepath.Join(cfg.OutputDir, "images")
	if err := os.MkdirAll(outImages, 0o755); err != nil {
		log.Error("Cannot create output images directory: %v", err)
		stats.Failed = true
		return stats
	}

	log.Info("Copying images to: %s", outImages)
	files, bytes, err := materialize.CopyImages(ctx, ret.Images, outImages)
	stats.CopiedImages = files
	stats.CopiedBytes = bytes
	if err != nil {
		var ce *materialize.CopyError
		if errors.As(err, &ce) {
			log.Error("Image copy failed: %v", ce)
		} else {
			log.Error("Image copy aborted: %v", err)
		}
		log.Error("Output at %s is incomplete; delete it and retry", cfg.OutputDir)
		stats.Failed = true
		return stats
	}
	log.Info("  Copied %d images (%s)", files, display.FormatBytes(bytes))

	// --- Filter pose records ---
	filterPoses(cfg, log, &stats, ret)

	logSummary(cfg, log, &stats)
	return stats
}

// filterPoses handles the sparse reconstruction half of the output. A
// missing sparse dir or a binary-only pose file is a degraded but valid
// partial result: the image subset above stands, and the caller is told the
// reconstruction must be re-run.
func filterPoses(cfg *config.Config, log *logging.Logger, stats *RunStats, ret *selection.Retained) {
	sparseDir, err := colmap.ResolveSparseDir(cfg.SourceDir)
	if err != nil {
		log.Warn("No sparse directory found at %s", filepath.Join(cfg.SourceDir, "sparse"))
		log.Warn("Run the reconstruction pipeline on the subsampled images before training")
		stats.PoseDegraded = true
		return
	}
	log.Info("Processing sparse reconstruction from: %s", sparseDir)

	outSparse := filepath.Join(cfg.OutputDir, "sparse", "0")
	if err := os.MkdirAll(outSparse, 0o755); err != nil {
		log.Error("Cannot create output sparse directory: %v", err)
		stats.Failed = true
		return
	}

	copied, err := colmap.CopyAux(sparseDir, outSparse)
	if err != nil {
		log.Error("Auxiliary file copy failed: %v", err)
		stats.Failed = true
		return
	}
	stats.AuxCopied = copied
	for _, name := range copied {
		log.Info("  Copied %s", name)
	}

	poseFile, err := colmap.FindPoseFile(sparseDir)
	switch {
	case errors.Is(err, colmap.ErrBinaryOnly):
		log.Warn("images.bin found but only the text format can be filtered")
		log.Warn("Re-run the reconstruction pipeline on the subsampled images")
		stats.PoseDegraded = true
		return
	case errors.Is(err, colmap.ErrNoPoseData):
		log.Warn("Sparse directory has no images.txt or images.bin; pose filtering skipped")
		stats.PoseDegraded = true
		return
	case err != nil:
		log.Error("Pose file lookup failed: %v", err)
		stats.Failed = true
		return
	}

	res, err := colmap.FilterImagesFile(poseFile, filepath.Join(outSparse, "images.txt"), ret.Identifiers())
	if err != nil {
		log.Error("Pose filtering failed: %v", err)
		stats.Failed = true
		return
	}
	stats.PosesKept = res.Kept
	stats.PosesDropped = res.Dropped
	stats.PosesMalformed = len(res.Malformed)

	for _, ln := range res.Malformed {
		log.Warn("  images.txt line %d: malformed header (fewer than 10 fields), entry dropped", ln)
	}
	log.Info("  Filtered images.txt: kept %d entries", res.Kept)
}

// --- Logging helpers ---

func logDatasetStats(cfg *config.Config, log *logging.Logger, stats *RunStats, ix *shots.Index) {
	log.Info("Dataset statistics:")
	log.Info("  Total images: %d", stats.TotalImages)
	log.Info("  Total shots: %d", stats.TotalShots)
	log.Info("  Images per shot: %d", ix.ImagesPerShot())
	log.Info("Subsampling (keep every %dth shot, offset %d):", cfg.KeepEvery, cfg.Offset)
	log.Info("  Selected shots: %s", display.FormatRatio(stats.SelectedShots, stats.TotalShots, "shots"))
	log.Info("  Selected images: %d (%s of original)",
		stats.SelectedImages, display.FormatPercent(stats.SelectedImages, stats.TotalImages))
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Success("Subsampled dataset created: %s", cfg.OutputDir)
	log.Info("  Images: %d kept, %d dropped (%s)",
		stats.SelectedImages, stats.DroppedImages(), display.FormatBytes(stats.CopiedBytes))
	log.Info("  Shots: %d kept, %d dropped", stats.SelectedShots, stats.DroppedShots())

	switch {
	case stats.PoseDegraded:
		log.Warn("  Poses: none written (degraded result; re-run the reconstruction)")
	default:
		log.Info("  Poses: %d kept, %d dropped, %d malformed",
			stats.PosesKept, stats.PosesDropped, stats.PosesMalformed)
	}

	log.Info("To train on the subset: train.py -s %s", cfg.OutputDir)
}
