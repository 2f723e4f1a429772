package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"MacroSentinel/internal/collector"
	"MacroSentinel/internal/evaluator"
	"MacroSentinel/internal/report"
)

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Fetch all indicators and print the report without sending mail",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			// No SMTP validation here: preview works without credentials.

			now := time.Now()
			col := collector.New(collector.DefaultFetchers(cfg.Proxy)...)
			result := col.Collect(cmd.Context())

			table := cfg.Indicators()
			statuses := evaluator.Evaluate(result, table, cfg.Report.Order)
			overall := evaluator.Rollup(statuses)
			log.Printf("[INFO] subject would be: %s", evaluator.Subject(now, overall))

			fmt.Fprint(cmd.OutOrStdout(), report.Text(statuses, overall, table, now))
			return nil
		},
	}
}
