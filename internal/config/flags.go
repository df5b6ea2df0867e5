package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagShape   = flag.String("shape", "", "Surface shape: plane, cube or sphere")
	flagReshape = flag.Int("level", 0, "Reshape level")
	flagTop     = flag.Int("top", 0, "Top level")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagShape != "" {
		cfg.Surface.Shape = *flagShape
	}
	if *flagReshape > 0 {
		cfg.Levels.Reshape = *flagReshape
	}
	if *flagTop > 0 {
		cfg.Levels.Top = *flagTop
	}
}
