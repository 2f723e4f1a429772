package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"MacroSentinel/internal/collector"
	"MacroSentinel/internal/config"
	"MacroSentinel/internal/evaluator"
	"MacroSentinel/internal/mailer"
	"MacroSentinel/internal/report"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Fetch all indicators and email the report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}
			return runReport(cmd.Context(), cfg)
		},
	}
}

// runReport executes the full pipeline: fetch, evaluate, format, send.
// Fetch failures only shape the report content; a mail failure is the only
// error returned (and the only non-zero exit).
func runReport(ctx context.Context, cfg *config.Config) error {
	log.Println("[INFO] MacroSentinel report run starting")
	now := time.Now()

	subject, htmlBody, textBody, err := buildReport(ctx, cfg, now)
	if err != nil {
		return err
	}

	if cfg.Report.File != "" {
		if err := os.WriteFile(cfg.Report.File, []byte(htmlBody), 0o644); err != nil {
			log.Printf("[WARN] save report to %s: %v", cfg.Report.File, err)
		} else {
			log.Printf("[INFO] report saved to %s", cfg.Report.File)
		}
	}

	m := mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.To)
	if err := m.Send(ctx, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("mail report: %w", err)
	}
	log.Printf("[INFO] report sent to %v", cfg.SMTP.To)
	return nil
}

// buildReport runs the fetch/evaluate/format stages shared by run, preview,
// and serve.
func buildReport(ctx context.Context, cfg *config.Config, now time.Time) (subject, htmlBody, textBody string, err error) {
	col := collector.New(collector.DefaultFetchers(cfg.Proxy)...)
	result := col.Collect(ctx)

	table := cfg.Indicators()
	statuses := evaluator.Evaluate(result, table, cfg.Report.Order)
	overall := evaluator.Rollup(statuses)
	log.Printf("[INFO] assessment: %s", overall.Summary)

	htmlBody, err = report.HTML(statuses, overall, table, now)
	if err != nil {
		return "", "", "", err
	}
	textBody = report.Text(statuses, overall, table, now)
	subject = evaluator.Subject(now, overall)
	return subject, htmlBody, textBody, nil
}
