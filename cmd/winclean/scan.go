package main

import (
	"fmt"

	"github.com/fenilsonani/winclean/internal/platform"
	"github.com/fenilsonani/winclean/internal/reporter"
	"github.com/fenilsonani/winclean/internal/scanner"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Show how much each location would free",
	Long:  `Measures every cleanup location and reports what a run would delete, without making any changes.`,
	Args:  cobra.NoArgs,
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

		format, err := reporter.ParseFormat(cfg.Output)
		if err != nil {
			return err
		}

		scnr := scanner.New(cfg, platform.NewResolver(nil, nil))
		results := scnr.ScanAll(cmd.Context())
		logger.Component("scanner").Info("scan finished", "targets", len(results))

		if err := reporter.New(cmd.OutOrStdout(), format).ReportScan(results); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
		return nil
	},
}
