// Package sugar builds and executes the SuGaR mesh-extraction command with
// a shared argument skeleton and an out-of-memory fallback.
package sugar

import (
	"path/filepath"
	"strconv"

	"github.com/edgrmdna/gaussian-splatting/internal/config"
)

// Vertex budgets for the low/high polygon presets.
const (
	lowPolyVertices  = 200000
	highPolyVertices = 1000000
)

// Build constructs the complete argument slice for invoking SuGaR's train.py
// against a trained model. The retry state supplies the effective polygon
// preset, which may have been downgraded after an out-of-memory failure.
func Build(cfg *config.MeshConfig, sourcePath, modelPath string, rs *RetryState) []string {
	lowPoly := cfg.LowPoly || rs.ForcedLowPoly

	regularizer := "sdf"
	if lowPoly {
		regularizer = "density"
	}

	args := []string{
		cfg.Python, filepath.Join(cfg.SugarDir, "train.py"),
		"-s", sourcePath,
		"-c", modelPath,
		"-r", regularizer,
		"--refinement_time", string(cfg.Refinement),
		"--export_ply", "True",
	}

	if cfg.ExportOBJ {
		args = append(args, "--export_obj", "True")
	}

	switch {
	case cfg.HighPoly && !lowPoly:
		args = append(args, "--n_vertices_in_mesh", strconv.Itoa(highPolyVertices))
	case lowPoly:
		args = append(args, "--n_vertices_in_mesh", strconv.Itoa(lowPolyVertices))
	}

	if cfg.SquareSize > 0 {
		args = append(args, "--square_size", strconv.FormatFloat(cfg.SquareSize, 'g', -1, 64))
	}

	return args
}
