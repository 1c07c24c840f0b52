package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/winclean/internal/cleaner"
	"github.com/fenilsonani/winclean/internal/config"
	"github.com/fenilsonani/winclean/internal/logging"
	"github.com/fenilsonani/winclean/internal/platform"
	"github.com/fenilsonani/winclean/internal/reporter"
	"github.com/fenilsonani/winclean/internal/runner"
	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	verbose    bool
	dryRun     bool
	assumeYes  bool
	noPause    bool
	outputFmt  string
	reportFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "winclean",
	Short: "Clean Windows temp files and browser caches",
	Long: `winclean deletes temporary files, browser caches, old prefetch files and the
Explorer thumbnail cache, then reports how much space was freed.

Files that are locked or otherwise undeletable are counted and skipped.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Close()

		clnr := cleaner.New(cfg)
		clnr.SetLogger(logger.Component("cleaner"))

		r := runner.New(cfg,
			runner.WithLogger(logger.Component("runner")),
			runner.WithCleaner(clnr),
			runner.WithResolver(platform.NewResolver(nil, nil)),
		)

		summary, err := r.Run()
		if err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}

		if summary != nil && reportFile != "" {
			if err := reporter.SaveToFile(summary, reportFile, reportFormat(reportFile)); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			logger.Info("report saved", "path", reportFile)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "winclean %s\n", rootCmd.Version)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic logging")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "", "report format (summary, table, json, yaml)")

	// Cleanup flags
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be deleted without actually deleting")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.Flags().BoolVar(&noPause, "no-pause", false, "exit without waiting for Enter")
	rootCmd.Flags().StringVar(&reportFile, "report-file", "", "also save the report to this file (.yaml/.yml for YAML, JSON otherwise)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and applies command-line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if flags.Changed("yes") {
		cfg.AssumeYes = assumeYes
	}
	if flags.Changed("no-pause") {
		cfg.PauseOnExit = !noPause
	}
	if outputFmt != "" {
		cfg.Output = outputFmt
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	logger, err := logging.New(cfg.Logging, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return logger, nil
}

// reportFormat picks the saved report's format from the file extension
func reportFormat(path string) reporter.OutputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return reporter.FormatYAML
	default:
		return reporter.FormatJSON
	}
}
