package collector

import (
	"context"
	"log"

	"MacroSentinel/internal/fetcher"
	"MacroSentinel/internal/model"
)

// Result holds everything one run fetched, keyed by indicator id.
type Result struct {
	Readings map[string]model.Reading
	Failures map[string]string // indicator id -> failure reason
}

// Reading returns the reading for id, or nil if it is unavailable this run.
func (r *Result) Reading(id string) *model.Reading {
	if reading, ok := r.Readings[id]; ok {
		return &reading
	}
	return nil
}

// Collector runs the configured fetchers in sequence and gathers their
// readings. A failed source never aborts the run; its indicators are simply
// marked unavailable.
type Collector struct {
	Fetchers []fetcher.Fetcher
}

// New creates a Collector over the given fetchers.
func New(fetchers ...fetcher.Fetcher) *Collector {
	return &Collector{Fetchers: fetchers}
}

// DefaultFetchers returns all production data sources in fetch order.
func DefaultFetchers(proxyURL string) []fetcher.Fetcher {
	return []fetcher.Fetcher{
		fetcher.NewCOFERFetcher(proxyURL),
		fetcher.NewTreasuryFetcher(proxyURL),
		fetcher.NewDXYFetcher(proxyURL),
		fetcher.NewDebtGDPFetcher(proxyURL),
		fetcher.NewInterestRevenueFetcher(proxyURL),
		fetcher.NewInterestDefenseFetcher(proxyURL),
		fetcher.NewTradeBalanceFetcher(proxyURL),
		fetcher.NewPerformanceFetcher(proxyURL),
	}
}

// Collect fetches every source one at a time.
func (c *Collector) Collect(ctx context.Context) *Result {
	result := &Result{
		Readings: make(map[string]model.Reading),
		Failures: make(map[string]string),
	}

	for _, f := range c.Fetchers {
		log.Printf("[INFO] fetching %s", f.Name())
		readings, err := f.Fetch(ctx)
		if err != nil {
			log.Printf("[WARN] %s fetch failed: %v", f.Name(), err)
			for _, id := range f.Covers() {
				result.Failures[id] = err.Error()
			}
			continue
		}
		for _, r := range readings {
			result.Readings[r.Indicator] = r
			log.Printf("[INFO] %s: %s = %g%s (%s)", f.Name(), r.Indicator, r.Value, r.Unit, r.Period)
		}
		// A source can succeed while still missing one of its rows, e.g.
		// a country absent from the TIC table.
		for _, id := range f.Covers() {
			if _, ok := result.Readings[id]; !ok {
				if _, failed := result.Failures[id]; !failed {
					result.Failures[id] = "no data in " + f.Name() + " response"
					log.Printf("[WARN] %s: no data for %s", f.Name(), id)
				}
			}
		}
	}

	return result
}
