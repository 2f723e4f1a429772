package model

import "time"

// Stat is one label/value context row shown under an indicator
// (for example "1-year change: -0.8%").
type Stat struct {
	Label string
	Value string
}

// Reading is a single fetched indicator value for one run.
type Reading struct {
	Indicator string // indicator id, e.g. "usd_reserve_share"
	Value     float64
	Unit      string // "%", "B", or ""
	Period    string // reporting period of the value, e.g. "2025-Q1"
	Source    string // human-readable data source
	FetchedAt time.Time
	Detail    []Stat
}
