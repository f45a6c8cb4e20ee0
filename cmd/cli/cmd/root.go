// Package cmd implements the coverage-analysis command line interface.
package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coverage-analysis/pkg/config"
	"github.com/coverage-analysis/pkg/telemetry"
	"github.com/coverage-analysis/pkg/utils"
)

var (
	// Global flags
	configFile string
	verbose    bool

	logger utils.Logger
	cfg    *config.Config

	telemetryShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "coverage-analysis",
	Short: "A parallel parser for functional coverage reports",
	Long: `coverage-analysis ingests large EDA functional coverage reports
(covergroups, hierarchical instances, module lists, assertions and
dashboard summaries), parses them with a chunked parallel engine, and
reports aggregate coverage scores.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := utils.LevelInfo
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stdout)

		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}

		telemetryShutdown, err = telemetry.Init(cmd.Context())
		if err != nil {
			logger.Warn("Failed to initialize telemetry: %v", err)
			telemetryShutdown = nil
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if telemetryShutdown != nil {
			return telemetryShutdown(context.Background())
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	binName := BinName()
	rootCmd.Example = `  # Parse a covergroup report with 8 workers
  ` + binName + ` parse -i ./reports/groups.txt -f groups --workers 8

  # Parse a gzipped hierarchy report and save the summary
  ` + binName + ` parse -i ./reports/hier.txt.gz -f hierarchy -o summary.json

  # Fetch a report from object storage before parsing
  ` + binName + ` parse --remote runs/2026/groups.txt -f groups

  # Show recent parse runs
  ` + binName + ` runs --limit 20`
}

// GetLogger returns the configured logger.
func GetLogger() utils.Logger {
	return logger
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return cfg
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
