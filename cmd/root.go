// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"vidurl/internal/config"
	"vidurl/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagConfig   string
	flagListen   string
	flagResolver string
	flagDebug    bool
)

// cfg holds the loaded configuration (merged: defaults < config file < env < flags).
var cfg *config.Config

// logger is built from cfg once flags are parsed.
var logger *logrus.Logger

var rootCmd = &cobra.Command{
	Use:   "vidurl",
	Short: "Resolve social-media posts into direct video URLs",
	Long: `vidurl resolves a social-media post URL into a direct, playable MP4 URL.
Run without a subcommand to start the HTTP API, or use "vidurl resolve" for a one-off lookup.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              serveRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default: $XDG_CONFIG_HOME/vidurl/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagListen, "listen", "l", "", "HTTP listen address")
	rootCmd.PersistentFlags().StringVarP(&flagResolver, "resolver", "r", "", "Resolver: ytdlp | opengraph")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < env < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagListen != "" {
		cfg.Listen = flagListen
	}
	if flagResolver != "" {
		cfg.Resolver = flagResolver
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	logger = logging.Setup(level, cfg.LogJSON)

	return nil
}
