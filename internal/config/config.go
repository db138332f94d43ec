// Package config provides configuration management for partir using Viper
// for flexible loading from files, environment variables and command-line
// flags.
//
// Configuration comes from .partir.yml, environment variables with the
// PARTIR_ prefix, and flags bound by the cmd package. Defaults follow the
// render option defaults (five priority tiers, 500KB artifacts, threshold
// of 100 components); everything is validated before use.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/partirhq/partir/internal/types"
)

// Config is the root configuration document.
type Config struct {
	Render  types.RenderOptions `mapstructure:"render" yaml:"render"`
	Preview PreviewConfig       `mapstructure:"preview" yaml:"preview"`
	Output  OutputConfig        `mapstructure:"output" yaml:"output"`
	Log     LogConfig           `mapstructure:"log" yaml:"log"`
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	Host      string `mapstructure:"host" yaml:"host"`
	Port      int    `mapstructure:"port" yaml:"port" validate:"gte=1,lte=65535"`
	CacheSize int    `mapstructure:"cache_size" yaml:"cache_size" validate:"gte=1"`
}

// OutputConfig configures where the render command writes artifacts.
type OutputConfig struct {
	Dir      string `mapstructure:"dir" yaml:"dir"`
	Manifest bool   `mapstructure:"manifest" yaml:"manifest"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

var validate = validator.New()

// Load builds the configuration from viper's current state, applies
// defaults and validates the result.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults fills every zero field with its standard value.
func applyDefaults(config *Config) {
	defaults := types.DefaultRenderOptions()
	if config.Render.PriorityLevels == 0 {
		config.Render.PriorityLevels = defaults.PriorityLevels
	}
	if config.Render.ArtifactMaxSize == 0 {
		config.Render.ArtifactMaxSize = defaults.ArtifactMaxSize
	}
	if !viper.IsSet("render.split_threshold") && config.Render.SplitThreshold == 0 {
		config.Render.SplitThreshold = defaults.SplitThreshold
	}

	if config.Preview.Host == "" {
		config.Preview.Host = "localhost"
	}
	if config.Preview.Port == 0 {
		config.Preview.Port = 8130
	}
	if config.Preview.CacheSize == 0 {
		config.Preview.CacheSize = 32
	}

	if config.Output.Dir == "" {
		config.Output.Dir = "artifacts"
	}
	if !viper.IsSet("output.manifest") {
		config.Output.Manifest = true
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}
}
