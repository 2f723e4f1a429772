package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the report pipeline on a cron schedule for serve mode.
// One-shot invocation via an external scheduler remains the primary way to
// run the monitor; this exists for hosts without a cron of their own.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a Scheduler. The spec uses the six-field form with seconds.
func New(spec string, task func()) (*Scheduler, error) {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(spec, task); err != nil {
		return nil, fmt.Errorf("register report task: %w", err)
	}
	return &Scheduler{cron: c}, nil
}

// Start starts the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron loop gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[INFO] scheduler stopped")
}
