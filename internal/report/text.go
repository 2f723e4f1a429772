package report

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"MacroSentinel/internal/config"
	"MacroSentinel/internal/model"
)

// Text renders the plain-text version of the report, used as the email's
// text alternative and for the preview command.
func Text(statuses []model.IndicatorStatus, overall model.Overall, table map[string]config.Indicator, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "MacroSentinel Report | %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "Status: %s\n\n", overall.Summary)

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDICATOR\tSTATUS\tVALUE\tPERIOD")
	for _, c := range buildCards(statuses, table) {
		status := strings.ToUpper(c.Class)
		if c.Informational {
			status = "CONTEXT"
		}
		period := c.Period
		if period == "" {
			period = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Title, status, c.Value, period)
	}
	w.Flush()

	for _, c := range buildCards(statuses, table) {
		b.WriteString("\n" + c.Title + "\n")
		for _, d := range c.Detail {
			fmt.Fprintf(&b, "  %s: %s\n", d.Label, d.Value)
		}
		if c.Err != "" {
			fmt.Fprintf(&b, "  %s\n", c.Err)
		}
		if c.ThresholdNote != "" {
			fmt.Fprintf(&b, "  %s\n", c.ThresholdNote)
		}
	}

	fmt.Fprintf(&b, "\nNext scheduled report: %s\n", nextReport(now))
	return b.String()
}
