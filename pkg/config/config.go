// Package config loads the YAML configuration of the community analysis tools.
package config

import (
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-codegraph/pkg/algorithms"
	"github.com/dd0wney/cluso-codegraph/pkg/community"
	"github.com/dd0wney/cluso-codegraph/pkg/logging"
	"github.com/dd0wney/cluso-codegraph/pkg/recommend"
	"github.com/dd0wney/cluso-codegraph/pkg/report"
	"github.com/dd0wney/cluso-codegraph/pkg/validation"
)

// DetectionConfig selects the algorithm and its parameters
type DetectionConfig struct {
	Algorithm     string   `yaml:"algorithm"`
	Resolution    float64  `yaml:"resolution"`
	K             int      `yaml:"k"`
	MaxIterations int      `yaml:"max_iterations"`
	Disabled      []string `yaml:"disabled"`
}

// ReportConfig controls report output
type ReportConfig struct {
	MinDescriptionSize int `yaml:"min_description_size"`
}

// Config is the top-level configuration
type Config struct {
	Detection       DetectionConfig      `yaml:"detection"`
	Recommendations recommend.Thresholds `yaml:"recommendations"`
	Report          ReportConfig         `yaml:"report"`
	Workers         int                  `yaml:"workers"`
	LogLevel        string               `yaml:"log_level"`
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

const maxWorkers = 256

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Detection: DetectionConfig{
			Algorithm:     string(community.Leiden),
			Resolution:    algorithms.DefaultResolution,
			MaxIterations: algorithms.DefaultMaxIterations,
		},
		Recommendations: recommend.DefaultThresholds(),
		Report:          ReportConfig{MinDescriptionSize: report.DefaultMinDescriptionSize},
		Workers:         runtime.NumCPU(),
		LogLevel:        "info",
	}
}

// Load reads a YAML file over the defaults. LOG_LEVEL overrides log_level.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ApplyEnv()
	if err := validation.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides
func (c *Config) ApplyEnv() {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

// Validate checks every field, reporting all failures together
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Required("detection.algorithm", c.Detection.Algorithm).
		When(c.Detection.Algorithm != "", func(cv *validation.ConfigValidator) {
			cv.Custom("detection.algorithm", func() error {
				_, err := community.ParseAlgorithm(c.Detection.Algorithm)
				return err
			})
		}).
		Finite("detection.resolution", c.Detection.Resolution).
		NonNegativeFloat("detection.resolution", c.Detection.Resolution).
		NonNegative("detection.k", c.Detection.K).
		RangeInt("detection.max_iterations", c.Detection.MaxIterations, 0, validation.MaxMaxIterations).
		Custom("detection.disabled", func() error {
			disabled, err := community.ParseAlgorithms(c.Detection.Disabled)
			if err != nil {
				return err
			}
			if slices.Contains(disabled, community.Identity) {
				return fmt.Errorf("%s cannot be disabled", community.Identity)
			}
			return nil
		}).
		Custom("recommendations", c.Recommendations.Validate).
		NonNegative("report.min_description_size", c.Report.MinDescriptionSize).
		MinInt("workers", c.Workers, 1).
		OneOf("log_level", strings.ToLower(c.LogLevel), logLevels).
		Validate()
}

// Algorithm returns the configured algorithm. The configuration must be valid.
func (c *Config) Algorithm() community.Algorithm {
	a, _ := community.ParseAlgorithm(c.Detection.Algorithm)
	return a
}

// Parameters returns the configured detection parameters
func (c *Config) Parameters() community.Parameters {
	return community.Parameters{
		Resolution:    c.Detection.Resolution,
		K:             c.Detection.K,
		MaxIterations: c.Detection.MaxIterations,
	}
}

// Level returns the configured log level
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(strings.ToLower(c.LogLevel))
}

// EngineOptions returns the engine options implied by the configuration
func (c *Config) EngineOptions() []community.Option {
	disabled, _ := community.ParseAlgorithms(c.Detection.Disabled)
	return []community.Option{
		community.WithDisabled(disabled...),
		community.WithWorkers(validation.ClampInt(validation.DefaultOrInt(c.Workers, runtime.NumCPU()), 1, maxWorkers)),
	}
}

// Advisor returns a recommendation engine with the configured thresholds
func (c *Config) Advisor() *recommend.Engine {
	return recommend.NewEngine(c.Recommendations)
}
