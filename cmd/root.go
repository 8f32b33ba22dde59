// Package cmd implements the CLI commands for SelfFix using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/selffix-ai/repairguide/config"
)

// Persistent flag variables and shared state.
var (
	flagConfig  string
	flagVerbose bool

	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "selffix",
	Short: "SelfFix: turn AI appliance diagnoses into readable repair guides",
	Long: `SelfFix asks a diagnosis service about an appliance fault and turns the
loosely formatted repair steps it returns into a clean guide: headings,
numbered steps, lists and safety callouts, rendered for the terminal or
written as Markdown, HTML, JSON or PDF.

Usage:
  selffix diagnose --appliance <type> --description <text> [flags]
  selffix render [file] [flags]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if flagVerbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		loaded, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		cfg = loaded
		logger.Debug("Configuration loaded",
			zap.String("endpoint", cfg.Endpoint),
			zap.String("format", cfg.Format),
			zap.Duration("timeout", cfg.Timeout))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
