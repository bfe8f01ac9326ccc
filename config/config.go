// Package config handles tool configuration loading.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all tool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Build   BuildConfig   `yaml:"build"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// BuildConfig holds BVH build settings.
type BuildConfig struct {
	// Subtrees above this depth are built concurrently. Zero disables
	// parallel builds.
	ParallelDepth int `yaml:"parallel_depth"`
}

// OutputConfig holds compiled tree output settings.
type OutputConfig struct {
	Suffix string `yaml:"suffix"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "notice",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Build: BuildConfig{
			ParallelDepth: 0,
		},
		Output: OutputConfig{
			Suffix: ".bvh.zip",
		},
	}
}

// Load returns the defaults overlaid with the contents of the YAML file at
// path. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config for values that cannot be used.
func (c *Config) Validate() error {
	if c.Build.ParallelDepth < 0 {
		return fmt.Errorf("build.parallel_depth must not be negative; got %d", c.Build.ParallelDepth)
	}
	if c.Output.Suffix == "" {
		return fmt.Errorf("output.suffix must not be empty")
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 {
		return fmt.Errorf("logging rotation settings must not be negative")
	}
	return nil
}
