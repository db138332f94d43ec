// Package cmd provides the command-line interface for partir.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --max-size, etc.) - highest priority
//	2. PARTIR_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (PARTIR_RENDER_ARTIFACT_MAX_SIZE, etc.)
//	4. Configuration files (.partir.yml) - lowest priority
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/partirhq/partir/internal/config"
	"github.com/partirhq/partir/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "partir",
	Short: "Progressive artifact renderer for HTML templates",
	Long: `Partir renders HTML templates into self-contained artifacts, splitting
large or complex outputs into independently viewable parts with navigation.

Key Features:
  • Template complexity analysis and split planning
  • Logical splitting along header, main and footer sections
  • Automatic size-based splitting with byte-exact reconstruction
  • Priority-tiered progressive rendering with skeleton placeholders
  • Live preview server with file watching and browser reload

Quick Start:
  partir render template.html    Render a template into artifacts
  partir analyze template.html   Inspect complexity and split plan
  partir preview template.html   Serve a live preview

Command Aliases (for faster typing):
  render (r), analyze (a), preview (p)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .partir.yml, can also use PARTIR_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. PARTIR_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .partir.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("PARTIR_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".partir")
	}

	// PARTIR_RENDER_ARTIFACT_MAX_SIZE, PARTIR_PREVIEW_PORT, and so on.
	viper.SetEnvPrefix("PARTIR")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing or malformed config file falls back to defaults.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfigAndLogger resolves the effective configuration and builds the
// root logger every subcommand shares.
func loadConfigAndLogger() (*config.Config, logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	return cfg, logger, nil
}
