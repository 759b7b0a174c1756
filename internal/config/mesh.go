package config

// Configuration and flag parsing for the extractmesh tool (SuGaR wrapper).

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

// Refinement selects the SuGaR refinement duration.
type Refinement string

const (
	RefinementShort  Refinement = "short"  // ~15 min (default).
	RefinementMedium Refinement = "medium" // ~1 hr.
	RefinementLong   Refinement = "long"   // ~2 hr.
)

// MeshConfig holds runtime settings for the extractmesh tool.
type MeshConfig struct {
	ModelDir  string // Trained Gaussian Splatting model (required).
	SourceDir string // COLMAP source dataset; auto-detected from cfg_args when empty.
	OutputDir string // Default: <ModelDir>/mesh.
	SugarDir  string // SuGaR checkout. Default: "submodules/SuGaR".
	Python    string // Python interpreter. Default: "python3".

	Iteration  int        // Checkpoint iteration; 0 means latest.
	Refinement Refinement // Default: "short".
	ExportOBJ  bool       // Also export a textured OBJ mesh.
	LowPoly    bool       // Density regularizer, 200k vertex budget.
	HighPoly   bool       // 1M vertex budget.
	SquareSize float64    // Marching-cubes voxel size; 0 means SuGaR default.

	Verbose   bool
	ColorMode ColorMode
	LogFile   string
}

// DefaultMeshConfig returns a MeshConfig with defaults matching the legacy
// extract_mesh script.
func DefaultMeshConfig() MeshConfig {
	return MeshConfig{
		SugarDir:   "submodules/SuGaR",
		Python:     "python3",
		Refinement: RefinementShort,
		ColorMode:  ColorAuto,
	}
}

// Validate checks the refinement enum and option combinations.
func (c *MeshConfig) Validate() error {
	switch c.Refinement {
	case RefinementShort, RefinementMedium, RefinementLong:
		// valid
	default:
		return errors.New("invalid refinement (use 'short', 'medium' or 'long')")
	}
	if c.LowPoly && c.HighPoly {
		return errors.New("--low-poly and --high-poly are mutually exclusive")
	}
	if c.SquareSize < 0 {
		return fmt.Errorf("square size must be positive (got %g)", c.SquareSize)
	}
	if c.Iteration < 0 {
		return fmt.Errorf("iteration must be positive (got %d)", c.Iteration)
	}
	if c.ModelDir == "" {
		return errors.New("need -m/--model <model_dir>")
	}
	return nil
}

// ParseMeshFlags parses os.Args into cfg. On --help or --version it prints
// and exits.
func ParseMeshFlags(cfg *MeshConfig, version string) error {
	fs := flag.NewFlagSet("extractmesh", flag.ContinueOnError)
	fs.Usage = func() { printMeshUsage(version) }

	var forceColor, noColor, showVersion, showHelp bool

	fs.StringVar(&cfg.ModelDir, "model", "", "Trained model directory")
	fs.StringVar(&cfg.ModelDir, "m", "", "Same as --model")
	fs.StringVar(&cfg.SourceDir, "source", "", "COLMAP source dataset (auto-detected if omitted)")
	fs.StringVar(&cfg.SourceDir, "s", "", "Same as --source")
	fs.StringVar(&cfg.OutputDir, "output", "", "Mesh output directory (default: <model>/mesh)")
	fs.StringVar(&cfg.OutputDir, "o", "", "Same as --output")
	fs.StringVar(&cfg.SugarDir, "sugar", cfg.SugarDir, "Path to the SuGaR checkout")
	fs.StringVar(&cfg.Python, "python", cfg.Python, "Python interpreter to invoke")

	fs.IntVar(&cfg.Iteration, "iteration", 0, "Checkpoint iteration (default: latest)")
	fs.Var(&refinementValue{&cfg.Refinement}, "refinement", "Refinement duration: short | medium | long")
	fs.BoolVar(&cfg.ExportOBJ, "export-obj", false, "Also export a textured OBJ mesh")
	fs.BoolVar(&cfg.LowPoly, "low-poly", false, "Lower polygon count (faster, less detail)")
	fs.BoolVar(&cfg.HighPoly, "high-poly", false, "Higher polygon count (slower, more detail)")
	fs.Float64Var(&cfg.SquareSize, "square-size", 0, "Marching-cubes voxel size (smaller = more detail)")

	fs.BoolVar(&forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if showHelp {
		printMeshUsage(version)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "extractmesh v"+version)
		os.Exit(0)
	}

	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}

	if len(fs.Args()) != 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return nil
}

func printMeshUsage(version string) {
	const col1 = 28
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "extractmesh v" + version + " — SuGaR mesh extraction for trained splat models"},
		{"", ""},
		{"  extractmesh -m <model_dir> [OPTIONS]", ""},
		{"", ""},
		{"Inputs", ""},
		{"  -m, --model <dir>", "Trained model directory (required)"},
		{"  -s, --source <dir>", "COLMAP source dataset (auto-detected if omitted)"},
		{"  -o, --output <dir>", "Mesh output directory (default: <model>/mesh)"},
		{"  --sugar <dir>", "SuGaR checkout (default: submodules/SuGaR)"},
		{"  --python <bin>", "Python interpreter (default: python3)"},
		{"", ""},
		{"Extraction", ""},
		{"  --iteration <N>", "Checkpoint iteration (default: latest)"},
		{"  --refinement <dur>", "short | medium | long (default: short)"},
		{"  --export-obj", "Also export a textured OBJ mesh"},
		{"  --low-poly", "Lower polygon count (faster)"},
		{"  --high-poly", "Higher polygon count (slower)"},
		{"  --square-size <f>", "Marching-cubes voxel size"},
		{"", ""},
		{"Display & utility", ""},
		{"  --color / --no-color", "Force / disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}
	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// refinementValue adapts Refinement to flag.Value.
type refinementValue struct{ p *Refinement }

func (r *refinementValue) String() string {
	if r.p == nil {
		return ""
	}
	return string(*r.p)
}

func (r *refinementValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "short":
		*r.p = RefinementShort
	case "medium":
		*r.p = RefinementMedium
	case "long":
		*r.p = RefinementLong
	default:
		return fmt.Errorf("invalid refinement %q (use 'short', 'medium' or 'long')", s)
	}
	return nil
}
