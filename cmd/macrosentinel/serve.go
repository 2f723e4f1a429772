package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"MacroSentinel/internal/scheduler"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the report on the configured cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sched, err := scheduler.New(cfg.Schedule.Cron, func() {
				if err := runReport(ctx, cfg); err != nil {
					log.Printf("[ERROR] scheduled report: %v", err)
				}
			})
			if err != nil {
				return err
			}

			sched.Start()
			defer sched.Stop()
			log.Printf("[INFO] serving on schedule %q, press Ctrl+C to stop", cfg.Schedule.Cron)

			if os.Getenv("RUN_ON_START") == "true" {
				log.Println("[INFO] RUN_ON_START enabled, sending a report now")
				if err := runReport(ctx, cfg); err != nil {
					log.Printf("[ERROR] initial report: %v", err)
				}
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			log.Println("[INFO] shutdown signal received, stopping")
			return nil
		},
	}
}
