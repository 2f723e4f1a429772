package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"MacroSentinel/internal/model"
)

// TreasuryFetcher fetches foreign holdings of US Treasuries from the TIC
// SLT Table 5 file, a tab-separated text table updated monthly with a ~6 week
// lag. One fetch yields the China and Japan readings.
type TreasuryFetcher struct {
	URL    string
	Client *http.Client
}

// NewTreasuryFetcher creates a fetcher with optional proxy support.
func NewTreasuryFetcher(proxyURL string) *TreasuryFetcher {
	return &TreasuryFetcher{
		URL:    "https://ticdata.treasury.gov/resource-center/data-chart-center/tic/Documents/slt_table5.txt",
		Client: newHTTPClient(proxyURL),
	}
}

func (f *TreasuryFetcher) Name() string { return "Treasury TIC" }
func (f *TreasuryFetcher) Covers() []string {
	return []string{"china_treasury", "japan_treasury"}
}

// countryRow maps each tracked TIC row label to its indicator id.
var countryRow = map[string]string{
	"china, mainland": "china_treasury",
	"japan":           "japan_treasury",
}

func (f *TreasuryFetcher) Fetch(ctx context.Context) ([]model.Reading, error) {
	resp, err := get(ctx, f.Client, f.URL, userAgent)
	if err != nil {
		return nil, fmt.Errorf("fetch table: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	readings, err := parseSLTTable(string(body))
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, fmt.Errorf("no tracked countries found in table")
	}
	return readings, nil
}

// noisePrefixes are the title and footnote lines surrounding the data rows.
var noisePrefixes = []string{
	"Table 5:", "Holdings at", "Billions", "Link:",
	"Notes:", "The data in", "overseas", "(see TIC",
	"Estimated", "International", "as reported", "and on TIC",
}

// parseSLTTable extracts the tracked country rows from the tab-separated
// SLT Table 5 text. Columns run newest-first; the header row carries the
// month labels.
func parseSLTTable(text string) ([]model.Reading, error) {
	var (
		readings []model.Reading
		dataDate string
	)
	now := time.Now()

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isNoise(line) {
			continue
		}

		parts := strings.Split(line, "\t")
		label := strings.TrimSpace(parts[0])

		if label == "Country" {
			for _, p := range parts[1:] {
				if p = strings.TrimSpace(p); p != "" {
					dataDate = p
					break
				}
			}
			continue
		}

		id, ok := countryRow[strings.ToLower(label)]
		if !ok {
			continue
		}

		// Blank cells are dropped, unparseable cells become gaps, same
		// as the published file's own placeholder handling.
		var values []*float64
		for _, p := range parts[1:] {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(p, ",", ""), 64)
			if err != nil {
				values = append(values, nil)
				continue
			}
			values = append(values, &v)
		}
		if len(values) == 0 || values[0] == nil {
			continue
		}

		r := model.Reading{
			Indicator: id,
			Value:     *values[0],
			Unit:      "B",
			Period:    dataDate,
			Source:    "Treasury TIC SLT Table 5",
			FetchedAt: now,
		}
		var change12 *float64
		if len(values) > 6 && values[6] != nil {
			d := r.Value - *values[6]
			r.Detail = append(r.Detail, model.Stat{Label: "6-month change", Value: signed(d, "B")})
		}
		if len(values) > 12 && values[12] != nil {
			d := r.Value - *values[12]
			change12 = &d
			r.Detail = append(r.Detail, model.Stat{Label: "12-month change", Value: signed(d, "B")})
		}
		r.Detail = append(r.Detail, model.Stat{Label: "Trend", Value: holdingsTrend(change12)})
		readings = append(readings, r)
	}

	return readings, nil
}

func isNoise(line string) bool {
	for _, p := range noisePrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// holdingsTrend labels a 12-month change; swings under $10B are noise.
func holdingsTrend(change12 *float64) string {
	switch {
	case change12 == nil:
		return "Unknown"
	case *change12 < -10:
		return "Selling"
	case *change12 > 10:
		return "Accumulating"
	default:
		return "Stable"
	}
}
