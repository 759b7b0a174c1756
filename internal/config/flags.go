package config

// This file implements CLI flag parsing and help text for the subsample tool.
// Boolean overrides (e.g. --no-color) are applied after Parse so Config
// defaults hold unless the user passes the flag.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, missing positional
// args, unreadable preset file).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("subsample", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var over overrideFlags
	defineSelectionFlags(fs, cfg)
	defineDiscoveryFlags(fs, cfg, &over)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &over)
	defineUtilityFlags(fs, &over)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if over.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if over.showVersion {
		fmt.Fprintln(os.Stdout, "subsample v"+version)
		os.Exit(0)
	}

	setFlags := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	applyOverrideFlags(cfg, &over)

	if cfg.PresetFile != "" {
		p, err := LoadPreset(cfg.PresetFile)
		if err != nil {
			return err
		}
		p.Apply(cfg, setFlags)
	}

	return parsePositionalArgs(fs, cfg)
}

// overrideFlags holds boolean flags that are applied after Parse.
// These either invert a default (noColor) or trigger exit (showHelp, showVersion).
type overrideFlags struct {
	extensions  string
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineSelectionFlags registers -n/--keep-every and --offset.
func defineSelectionFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.KeepEvery, "keep-every", cfg.KeepEvery, "Keep every Nth shot")
	fs.IntVar(&cfg.KeepEvery, "n", cfg.KeepEvery, "Same as --keep-every")
	fs.IntVar(&cfg.Offset, "offset", cfg.Offset, "Start offset into the sorted shot list")
}

// defineDiscoveryFlags registers --extensions, --separator, and --preset.
func defineDiscoveryFlags(fs *flag.FlagSet, cfg *Config, o *overrideFlags) {
	fs.StringVar(&o.extensions, "extensions", "", "Comma-separated image extensions (default: .png,.jpg,.jpeg)")
	fs.StringVar(&cfg.Separator, "separator", cfg.Separator, "Lens-suffix separator in image names")
	fs.StringVar(&cfg.PresetFile, "preset", "", "YAML curation preset file")
}

// defineBehaviorFlags registers -d/--dry-run.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview the selection; do not copy or filter")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, o *overrideFlags) {
	fs.BoolVar(&o.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Inspect the dataset layout and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, o *overrideFlags) {
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&o.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&o.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&o.showHelp, "h", false, "Same as --help")
}

// applyOverrideFlags copies override flag values into cfg.
func applyOverrideFlags(cfg *Config, o *overrideFlags) {
	if o.extensions != "" {
		var exts []string
		for _, e := range strings.Split(o.extensions, ",") {
			e = strings.TrimSpace(e)
			if e == "" {
				continue
			}
			exts = append(exts, e)
		}
		cfg.Extensions = exts
	}
	if o.noColor {
		cfg.ColorMode = ColorNever
	} else if o.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets SourceDir and OutputDir from the positional args.
// CheckOnly mode needs only the source.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		if len(args) < 1 {
			return fmt.Errorf("need source_dir")
		}
		cfg.SourceDir = NormalizeDirArg(args[0])
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly source_dir and output_dir")
	}
	cfg.SourceDir = NormalizeDirArg(args[0])
	cfg.OutputDir = NormalizeDirArg(args[1])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "subsample v" + version + " — shot-aware COLMAP dataset subsampler"},
		{"", ""},
		{"  subsample [OPTIONS] <source_dir> <output_dir>", ""},
		{"", ""},
		{"Selection", ""},
		{"  -n, --keep-every <N>", "Keep every Nth shot (default: 4 = 25% of data)"},
		{"  --offset <index>", "Start offset into the sorted shot list (default: 0)"},
		{"", ""},
		{"Discovery", ""},
		{"  --extensions <list>", "Image extensions, comma-separated (default: .png,.jpg,.jpeg)"},
		{"  --separator <char>", "Lens-suffix separator (default: _)"},
		{"  --preset <path>", "YAML curation preset (flags win over preset values)"},
		{"", ""},
		{"Output & behavior", ""},
		{"  -d, --dry-run", "Preview the selection; do not copy or filter"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check <source_dir>", "Inspect the dataset layout and exit"},
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
