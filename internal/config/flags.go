package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagQuick       = flag.Bool("quick", false, "Quick search: faster, but might not find everything")
	flagDistance    = flag.Float64("distance", 0, "Distance in units between a light and a patch center (default from config, 1)")
	flagNoHDR       = flag.Bool("no-hdr", false, "Never fall back to HDR world lights")
	flagLogFile     = flag.String("log-file", "", "Also write logs to this file")
	flagCatalog     = flag.String("catalog", "", "Record results in this SQLite database")
	flagOut         = flag.String("out", "", "Directory for lights files (default: next to each map)")
	flagVersion     = flag.Bool("version", false, "Print version and exit")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
)

func init() {
	flag.BoolVar(flagQuick, "q", false, "Shorthand for -quick")
	flag.Float64Var(flagDistance, "d", 0, "Shorthand for -distance")
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Args returns the map paths left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ShowVersion reports whether -version was given.
func ShowVersion() bool {
	return *flagVersion
}

// WriteConfigPath returns the -write-config target, if any.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// setFlags returns the names of the flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFlags applies CLI flag overrides to the config. Value flags only
// override when set, so an explicit zero still wins over the file.
func applyFlags(cfg *Config, set map[string]bool) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagQuick {
		cfg.Extraction.QuickSearch = true
	}
	if set["distance"] || set["d"] {
		cfg.Extraction.SearchDistance = *flagDistance
	}
	if *flagNoHDR {
		cfg.Extraction.IncludeHDRLights = false
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagCatalog != "" {
		cfg.Catalog.Path = *flagCatalog
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
}
