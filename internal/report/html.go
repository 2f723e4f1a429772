package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"MacroSentinel/internal/config"
	"MacroSentinel/internal/model"
)

type htmlData struct {
	Date         string
	OverallColor string
	Summary      string
	Assessed     []card
	Context      []card
	NextReport   string
}

// HTML renders the full email body. Indicator order follows the statuses
// slice, which the evaluator builds from the configured order.
func HTML(statuses []model.IndicatorStatus, overall model.Overall, table map[string]config.Indicator, now time.Time) (string, error) {
	data := htmlData{
		Date:         now.Format("January 2, 2006"),
		OverallColor: levelColor(overall.Level),
		Summary:      overall.Summary,
		NextReport:   nextReport(now),
	}
	for _, c := range buildCards(statuses, table) {
		if c.Informational {
			data.Context = append(data.Context, c)
		} else {
			data.Assessed = append(data.Assessed, c)
		}
	}

	var b strings.Builder
	if err := htmlTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return b.String(), nil
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
         max-width: 700px; margin: 0 auto; padding: 20px; color: #333; line-height: 1.5; }
  h1 { color: #1a1a1a; border-bottom: 2px solid #ddd; padding-bottom: 10px; }
  h2 { color: #444; margin-top: 30px; font-size: 18px; }
  .overall-status { background: {{.OverallColor}}; color: white; padding: 15px;
                    border-radius: 6px; margin: 20px 0; font-size: 16px; }
  .indicator { background: #f8f9fa; padding: 15px; margin: 15px 0;
               border-radius: 6px; border-left: 4px solid #ddd; }
  .indicator.critical { border-left-color: #dc3545; }
  .indicator.warning { border-left-color: #f39c12; }
  .indicator.stable { border-left-color: #27ae60; }
  .indicator.info { border-left-color: #3498db; }
  .indicator.unknown { border-left-color: #95a5a6; }
  .indicator-title { font-weight: bold; margin-bottom: 8px; }
  .indicator-value { font-size: 24px; font-weight: bold; margin: 10px 0; }
  .indicator-details { font-size: 14px; color: #555; }
  .data-freshness { font-size: 11px; color: #888; margin-top: 8px; font-style: italic; }
  .threshold-note { font-size: 12px; color: #777; margin-top: 10px;
                    padding-top: 10px; border-top: 1px solid #eee; }
  .status-label { display: inline-block; padding: 2px 8px; border-radius: 3px;
                  font-size: 12px; font-weight: bold; text-transform: uppercase; }
  .status-critical { background: #dc3545; color: white; }
  .status-warning { background: #f39c12; color: white; }
  .status-stable { background: #27ae60; color: white; }
  .status-info { background: #3498db; color: white; }
  .status-unknown { background: #95a5a6; color: white; }
  table { width: 100%; border-collapse: collapse; margin: 10px 0; font-size: 14px; }
  td { padding: 5px 0; }
  td:last-child { text-align: right; }
  .footer { margin-top: 40px; padding-top: 20px; border-top: 1px solid #ddd;
            font-size: 12px; color: #666; }
  .error-note { font-size: 12px; color: #dc3545; margin-top: 5px; }
</style>
</head>
<body>
<h1>MacroSentinel Report</h1>
<p>Report Date: {{.Date}}</p>

<div class="overall-status"><strong>Status:</strong> {{.Summary}}</div>
{{range .Assessed}}
<div class="indicator {{.Class}}">
  <div class="indicator-title">{{.Title}}
    <span class="status-label status-{{.Class}}">{{.Class}}</span>
  </div>
  <div class="indicator-value">{{.Value}}</div>
  <div class="indicator-details">
    {{if .Detail}}<table>
      {{range .Detail}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
      {{end}}</table>{{end}}
    {{if .Err}}<div class="error-note">{{.Err}}</div>{{end}}
  </div>
  {{if .Freshness}}<div class="data-freshness">{{.Freshness}}</div>{{end}}
  <div class="threshold-note">{{.ThresholdNote}}<br>{{.Context}}</div>
</div>
{{end}}
{{if .Context}}
<h2>Market Context</h2>
<p style="font-size: 14px; color: #666;">Informational metrics that provide context but don't trigger warnings.</p>
{{range .Context}}
<div class="indicator info">
  <div class="indicator-title">{{.Title}}
    <span class="status-label status-info">context</span>
  </div>
  <div class="indicator-value">{{.Value}}</div>
  <div class="indicator-details">
    {{if .Detail}}<table>
      {{range .Detail}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
      {{end}}</table>{{end}}
    {{if .Err}}<div class="error-note">{{.Err}}</div>{{end}}
  </div>
  {{if .Freshness}}<div class="data-freshness">{{.Freshness}}</div>{{end}}
  <div class="threshold-note">{{.Context}}</div>
</div>
{{end}}
{{end}}
<h2>Decision Framework</h2>
<div class="indicator stable">
  <p><strong>What to do with this information:</strong></p>
  <ul>
    <li><strong>All stable:</strong> No action needed. Check back next quarter.</li>
    <li><strong>1-2 warnings:</strong> Note it, but don't react to a single report. Watch for trends across multiple reports.</li>
    <li><strong>Warnings for 2-3 consecutive reports:</strong> Consider gradually shifting from 65/35 to 50/50 domestic/international.</li>
    <li><strong>Multiple critical signals:</strong> More aggressive rebalancing toward international may be warranted.</li>
  </ul>
  <p>Remember: these are slow-moving structural indicators. Monetary system changes happen over decades, not months. The goal is to catch sustained trends, not react to noise.</p>
</div>

<div class="footer">
  <p>Generated automatically by MacroSentinel.<br>
  Informational only, not financial advice.<br>
  Next scheduled report: {{.NextReport}}</p>
</div>
</body>
</html>
`))
