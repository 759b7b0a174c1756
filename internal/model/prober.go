// Package model inspects a trained Gaussian Splatting model directory:
// checkpoint iterations under point_cloud/, and the source dataset path
// recorded in the run's serialized cfg_args.
package model

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Info is the probed state of a model directory.
type Info struct {
	Path       string
	Iterations []int  // Checkpoint iterations found, sorted ascending.
	SourcePath string // source_path scraped from cfg_args; "" when absent.
}

// Probe scans modelPath for checkpoints and the cfg_args record. A model
// with no checkpoints yields an Info with empty Iterations, not an error;
// the caller decides whether that is fatal.
func Probe(modelPath string) (*Info, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model path: %w", err)
	}

	info := &Info{Path: modelPath}

	entries, err := os.ReadDir(filepath.Join(modelPath, "point_cloud"))
	if err == nil {
		for _, e := range entries {
			n, ok := parseIterationDir(e.Name())
			if !ok {
				continue
			}
			info.Iterations = append(info.Iterations, n)
		}
		sort.Ints(info.Iterations)
	}

	if data, err := os.ReadFile(filepath.Join(modelPath, "cfg_args")); err == nil {
		info.SourcePath = ParseCfgArgs(string(data))
	}

	return info, nil
}

// Latest returns the highest checkpoint iteration, or 0 when none exist.
func (in *Info) Latest() int {
	if len(in.Iterations) == 0 {
		return 0
	}
	return in.Iterations[len(in.Iterations)-1]
}

// HasIteration reports whether iteration n was found.
func (in *Info) HasIteration(n int) bool {
	for _, it := range in.Iterations {
		if it == n {
			return true
		}
	}
	return false
}

// CheckpointDir returns the directory of checkpoint iteration n.
func (in *Info) CheckpointDir(n int) string {
	return filepath.Join(in.Path, "point_cloud", fmt.Sprintf("iteration_%d", n))
}

// parseIterationDir extracts N from a directory name of the form
// "iteration_N". Anything else is ignored.
func parseIterationDir(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "iteration_")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseCfgArgs scrapes the source_path value out of a cfg_args record.
// The record is a Python argparse namespace serialized with repr(), so the
// value appears as source_path='...' or source_path="...". Returns "" when
// the key is absent or not quoted.
func ParseCfgArgs(content string) string {
	const key = "source_path="
	start := strings.Index(content, key)
	if start < 0 {
		return ""
	}
	rest := content[start+len(key):]
	if rest == "" {
		return ""
	}

	quote := rest[0]
	if quote != '\'' && quote != '"' {
		return ""
	}
	end := strings.IndexByte(rest[1:], quote)
	if end < 0 {
		return ""
	}
	return rest[1 : 1+end]
}
