package model

import "time"

// Config holds the tool configuration, populated from defaults, the config
// file, TDPREP_* environment variables, and CLI flags (in increasing
// priority).
type Config struct {
	Mode     Mode           `yaml:"mode" json:"mode"`
	Compiler CompilerConfig `yaml:"compiler" json:"compiler"`
	Cache    CacheConfig    `yaml:"cache" json:"cache"`
	Output   OutputConfig   `yaml:"output" json:"output"`
}

// CompilerConfig describes the expression-compilation capability of the
// target solver runtime. The tool does not compile expressions itself; it
// validates documents against the declared capability.
type CompilerConfig struct {
	Available bool   `yaml:"available" json:"available"`
	Version   string `yaml:"version" json:"version"`
}

// CacheConfig controls classification memoization.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode: ModeDetailed,
		Compiler: CompilerConfig{
			Available: true,
			Version:   "0.14",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
