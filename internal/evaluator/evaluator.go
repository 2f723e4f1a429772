package evaluator

import (
	"fmt"
	"time"

	"MacroSentinel/internal/collector"
	"MacroSentinel/internal/config"
	"MacroSentinel/internal/model"
)

// Classify maps a value onto the three-level status for one indicator.
// Pure and deterministic; the threshold pair and direction come from the
// static indicator table in effect for the run.
func Classify(value float64, ind config.Indicator) model.Classification {
	if ind.Informational {
		return model.StatusInfo
	}
	switch ind.Direction {
	case config.DirectionBelow:
		switch {
		case value < ind.Critical:
			return model.StatusCritical
		case value < ind.Warning:
			return model.StatusWarning
		}
	case config.DirectionAbove:
		switch {
		case value > ind.Critical:
			return model.StatusCritical
		case value > ind.Warning:
			return model.StatusWarning
		}
	}
	return model.StatusStable
}

// Evaluate derives one IndicatorStatus per ordered indicator. Indicators
// whose fetch failed come out as unknown with the failure reason attached.
func Evaluate(res *collector.Result, table map[string]config.Indicator, order []string) []model.IndicatorStatus {
	statuses := make([]model.IndicatorStatus, 0, len(order))
	for _, id := range order {
		ind, ok := table[id]
		if !ok {
			continue
		}
		st := model.IndicatorStatus{ID: id, Title: ind.Title}
		if reading := res.Reading(id); reading != nil {
			st.Reading = reading
			st.Class = Classify(reading.Value, ind)
		} else {
			st.Class = model.StatusUnknown
			st.Err = res.Failures[id]
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// Rollup computes the report-level assessment. Informational indicators are
// never counted; unknowns count only toward the unavailable total.
func Rollup(statuses []model.IndicatorStatus) model.Overall {
	var o model.Overall
	for _, st := range statuses {
		switch st.Class {
		case model.StatusStable:
			o.Stable++
		case model.StatusWarning:
			o.Warning++
		case model.StatusCritical:
			o.Critical++
		case model.StatusUnknown:
			o.Unknown++
		}
	}

	assessed := o.Stable + o.Warning + o.Critical
	switch {
	case o.Critical >= 2 || (o.Critical >= 1 && o.Warning >= 2) || o.Warning >= 3:
		o.Level = "red"
		o.Summary = fmt.Sprintf("HIGH ALERT: %d critical, %d warning out of %d metrics", o.Critical, o.Warning, assessed)
	case o.Critical >= 1:
		o.Level = "amber"
		o.Summary = fmt.Sprintf("Elevated concern: %d critical, %d warning out of %d metrics", o.Critical, o.Warning, assessed)
	case o.Warning >= 2:
		o.Level = "amber"
		o.Summary = fmt.Sprintf("Elevated concern: %d warnings out of %d metrics", o.Warning, assessed)
	case o.Warning == 1:
		o.Level = "green"
		o.Summary = fmt.Sprintf("All %d metrics stable (1 warning)", assessed)
	case assessed > 0:
		o.Level = "green"
		o.Summary = fmt.Sprintf("All %d metrics stable", assessed)
	default:
		o.Level = "gray"
		o.Summary = "Data unavailable"
	}
	return o
}

// Subject builds the email subject line from the rollup.
func Subject(now time.Time, o model.Overall) string {
	month := now.Format("January 2006")
	switch {
	case o.Critical > 0:
		return fmt.Sprintf("MacroSentinel: %d CRITICAL - %s", o.Critical, month)
	case o.Warning > 0:
		return fmt.Sprintf("MacroSentinel: %d Warning - %s", o.Warning, month)
	case o.Stable > 0:
		return fmt.Sprintf("MacroSentinel: All Stable - %s", month)
	default:
		return fmt.Sprintf("MacroSentinel: Data Unavailable - %s", month)
	}
}
