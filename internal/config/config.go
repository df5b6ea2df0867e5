// Package config handles configuration for the reshape tools.
package config

// Config holds all gridprobe settings.
type Config struct {
	Surface SurfaceConfig `yaml:"surface"`
	Levels  LevelsConfig  `yaml:"levels"`
	Logging LoggingConfig `yaml:"logging"`
}

// SurfaceConfig selects the built-in base mesh and limit surface the tool
// builds its reshape context over.
type SurfaceConfig struct {
	// Shape is one of "plane", "cube" or "sphere".
	Shape string `yaml:"shape"`
	// Size is the primitive side length (sphere: diameter).
	Size float64 `yaml:"size"`
}

// LevelsConfig holds the subdivision levels of the context.
type LevelsConfig struct {
	Reshape int `yaml:"reshape"`
	Top     int `yaml:"top"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Surface: SurfaceConfig{
			Shape: "plane",
			Size:  2.0,
		},
		Levels: LevelsConfig{
			Reshape: 2,
			Top:     3,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
