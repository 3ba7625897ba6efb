// Package config handles lightsrad configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/lightsrad/internal/extract"
	"github.com/Faultbox/lightsrad/internal/radfile"
	"github.com/Faultbox/lightsrad/pkg/geometry"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all extraction settings.
type Config struct {
	Extraction  ExtractionConfig  `yaml:"extraction"`
	Subdivision SubdivisionConfig `yaml:"subdivision"`
	Output      OutputConfig      `yaml:"output"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ExtractionConfig holds light matching settings.
type ExtractionConfig struct {
	QuickSearch      bool    `yaml:"quick_search"`       // first light face per texture only
	SearchDistance   float64 `yaml:"search_distance"`    // light to patch tolerance, in units
	IncludeHDRLights bool    `yaml:"include_hdr_lights"` // fall back to HDR world lights
}

// SubdivisionConfig holds patch subdivision settings.
type SubdivisionConfig struct {
	Chop     float64 `yaml:"chop"`
	MinChop  float64 `yaml:"min_chop"`
	Epsilon  float64 `yaml:"epsilon"`
	MaxDepth int     `yaml:"max_depth"`
}

// OutputConfig holds where lights files are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"` // empty writes next to each map
	Prefix string `yaml:"prefix"`
}

// CatalogConfig holds the results database settings.
type CatalogConfig struct {
	Path string `yaml:"path"` // empty disables the catalog
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the original tool's defaults.
func Default() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			QuickSearch:      false,
			SearchDistance:   1,
			IncludeHDRLights: true,
		},
		Subdivision: SubdivisionConfig{
			Chop:     geometry.DefaultSubdivider.Chop,
			MinChop:  geometry.DefaultSubdivider.MinChop,
			Epsilon:  geometry.DefaultSubdivider.Epsilon,
			MaxDepth: geometry.DefaultSubdivider.MaxDepth,
		},
		Output: OutputConfig{
			Prefix: radfile.DefaultPrefix,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	s := c.Subdivision
	switch {
	case c.Extraction.SearchDistance < 0:
		return fmt.Errorf("%w: search_distance %g is negative", ErrInvalidConfig, c.Extraction.SearchDistance)
	case s.Chop <= 0:
		return fmt.Errorf("%w: chop %g must be positive", ErrInvalidConfig, s.Chop)
	case s.MinChop <= 0:
		return fmt.Errorf("%w: min_chop %g must be positive", ErrInvalidConfig, s.MinChop)
	case s.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon %g must be positive", ErrInvalidConfig, s.Epsilon)
	case s.MaxDepth <= 0:
		return fmt.Errorf("%w: max_depth %d must be positive", ErrInvalidConfig, s.MaxDepth)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}

// ExtractOptions converts the extraction and subdivision sections.
func (c *Config) ExtractOptions() extract.Options {
	return extract.Options{
		QuickSearch:      c.Extraction.QuickSearch,
		SearchDistance:   c.Extraction.SearchDistance,
		IncludeHDRLights: c.Extraction.IncludeHDRLights,
		Subdivider: geometry.Subdivider{
			Chop:     c.Subdivision.Chop,
			MinChop:  c.Subdivision.MinChop,
			Epsilon:  c.Subdivision.Epsilon,
			MaxDepth: c.Subdivision.MaxDepth,
		},
	}
}
