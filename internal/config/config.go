// Package config holds runtime configuration for the dataset tools:
// defaults, CLI flag parsing, preset files, and validation. Defaults match
// the legacy Python scripts for parity.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings for the subsample tool. It is populated
// by [DefaultConfig] and then mutated by [ParseFlags] before being passed
// (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args).
	SourceDir string // Undistorted dataset root (contains images/ and sparse/).
	OutputDir string // Destination root for the subsampled dataset.

	// Shot selection.
	KeepEvery int // Keep every Nth shot. Default: 4 (25% of data).
	Offset    int // Start index into the sorted shot list. Default: 0.

	// Shot discovery.
	Extensions []string // Recognized image extensions, lowercase with dot.
	Separator  string   // Lens-suffix separator in image base names. Default: "_".

	// Behavior flags.
	DryRun bool // Report the selection without writing anything.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check dataset diagnostics and exit.

	// Preset file (applied during flag parsing; flags win over preset values).
	PresetFile string
}

// DefaultConfig returns a Config with all defaults matching the legacy
// subsample script. Used as the base before [ParseFlags] applies overrides.
func DefaultConfig() Config {
	return Config{
		KeepEvery:  4,
		Offset:     0,
		Extensions: []string{".png", ".jpg", ".jpeg"},
		Separator:  "_",
		DryRun:     false,
		Verbose:    false,
		ColorMode:  ColorAuto,
		CheckOnly:  false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks stride/offset ranges, the extension list, and the lens
// separator. When not in CheckOnly mode, it also requires that both source
// and output paths are non-empty.
func (c *Config) Validate() error {
	if c.KeepEvery < 1 {
		return fmt.Errorf("keep-every must be >= 1 (got %d)", c.KeepEvery)
	}
	if c.Offset < 0 || c.Offset >= c.KeepEvery {
		return fmt.Errorf("offset must be in [0, keep-every) (got offset=%d, keep-every=%d)",
			c.Offset, c.KeepEvery)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if len(c.Extensions) == 0 {
		return errors.New("extension list must not be empty")
	}
	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("invalid extension %q (use leading dot, e.g. .png)", c.Extensions[i])
		}
		c.Extensions[i] = ext
	}

	if len([]rune(c.Separator)) != 1 {
		return fmt.Errorf("separator must be a single character (got %q)", c.Separator)
	}

	if c.CheckOnly {
		return c.requireSource()
	}
	if c.SourceDir == "" || c.OutputDir == "" {
		return errors.New("need exactly source_dir and output_dir")
	}
	return nil
}

func (c *Config) requireSource() error {
	if c.SourceDir == "" {
		return errors.New("need source_dir")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved source directory. This prevents the tool from discovering
// its own output images on a re-run. Both arguments must be absolute,
// symlink-resolved paths.
func (c *Config) ValidatePaths(sourceAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == sourceAbs || strings.HasPrefix(outputAbs+sep, sourceAbs+sep) {
		return errors.New("output directory must not be inside source directory")
	}
	return nil
}
