package report

import (
	"fmt"
	"strconv"
	"time"

	"MacroSentinel/internal/config"
	"MacroSentinel/internal/model"
)

// card is one rendered indicator block, shared by the HTML and text outputs.
type card struct {
	Title         string
	Class         string
	Value         string
	Period        string
	Detail        []model.Stat
	Freshness     string
	ThresholdNote string
	Context       string
	Err           string
	Informational bool
}

func buildCards(statuses []model.IndicatorStatus, table map[string]config.Indicator) []card {
	cards := make([]card, 0, len(statuses))
	for _, st := range statuses {
		ind := table[st.ID]
		c := card{
			Title:         st.Title,
			Class:         string(st.Class),
			Context:       ind.Context,
			Informational: ind.Informational,
		}
		if !ind.Informational {
			c.ThresholdNote = thresholdNote(ind)
		}
		if st.Reading != nil {
			c.Value = formatValue(st.Reading.Value, st.Reading.Unit)
			c.Period = st.Reading.Period
			c.Detail = st.Reading.Detail
			c.Freshness = fmt.Sprintf("Data as of: %s | Source: %s", st.Reading.Period, st.Reading.Source)
		} else {
			c.Value = "N/A"
			c.Err = fmt.Sprintf("Could not fetch data: %s", st.Err)
		}
		cards = append(cards, c)
	}
	return cards
}

// formatValue renders a numeric value with its unit: "58.4%", "$480B", "92.5".
func formatValue(v float64, unit string) string {
	n := strconv.FormatFloat(v, 'f', -1, 64)
	switch unit {
	case "B":
		return "$" + n + "B"
	default:
		return n + unit
	}
}

func thresholdNote(ind config.Indicator) string {
	return fmt.Sprintf("Warning: %s %s | Critical: %s %s",
		ind.Direction, formatValue(ind.Warning, ind.Unit),
		ind.Direction, formatValue(ind.Critical, ind.Unit))
}

// levelColor maps the overall level to the banner color.
func levelColor(level string) string {
	switch level {
	case "red":
		return "#dc3545"
	case "amber":
		return "#f39c12"
	case "green":
		return "#27ae60"
	default:
		return "#95a5a6"
	}
}

// nextReport names the next scheduled quarterly run (Jan, Apr, Jul, Oct).
func nextReport(now time.Time) string {
	year := now.Year()
	for _, m := range []time.Month{time.January, time.April, time.July, time.October} {
		if m > now.Month() {
			return fmt.Sprintf("%s %d", m, year)
		}
	}
	return fmt.Sprintf("%s %d", time.January, year+1)
}
