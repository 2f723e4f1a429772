package model

// Classification is the three-level status of an indicator, plus the two
// out-of-band states: informational (never assessed) and unknown (fetch failed).
type Classification string

const (
	StatusStable   Classification = "stable"
	StatusWarning  Classification = "warning"
	StatusCritical Classification = "critical"
	StatusInfo     Classification = "info"
	StatusUnknown  Classification = "unknown"
)

// IndicatorStatus pairs a reading with its classification under the threshold
// table in effect for the run. Reading is nil when the fetch failed; Err then
// carries the reason.
type IndicatorStatus struct {
	ID      string
	Title   string
	Reading *Reading
	Class   Classification
	Err     string
}

// Overall is the report-level rollup across all assessed indicators.
type Overall struct {
	Level    string // "green", "amber", "red", or "gray"
	Summary  string
	Stable   int
	Warning  int
	Critical int
	Unknown  int
}
