package fetcher

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"MacroSentinel/internal/model"
)

// FRED series exposed as fredgraph.csv; no API key needed.
const (
	seriesDebtGDP        = "GFDEGDQ188S"     // federal debt as % of GDP, quarterly
	seriesFiscalInterest = "FYOINT"          // interest outlays, fiscal year, millions
	seriesFiscalRevenue  = "FYFR"            // federal receipts, fiscal year, millions
	seriesInterestSAAR   = "A091RC1Q027SBEA" // interest payments, quarterly SAAR, billions
	seriesDefenseSAAR    = "FDEFX"           // defense spending, quarterly SAAR, billions
	seriesTradeBalance   = "BOPGSTB"         // goods & services balance, monthly, millions
	seriesGDP            = "GDP"             // quarterly, billions
)

// fredClient fetches and parses fredgraph.csv series. Embedded by the
// concrete FRED-backed fetchers.
type fredClient struct {
	BaseURL string
	Client  *http.Client
}

func newFREDClient(proxyURL string) fredClient {
	return fredClient{
		BaseURL: "https://fred.stlouisfed.org",
		Client:  newHTTPClient(proxyURL),
	}
}

type observation struct {
	Date  string
	Value float64
}

// fetchSeries returns all usable observations for a series, oldest first.
// FRED marks not-yet-published periods with ".".
func (c fredClient) fetchSeries(ctx context.Context, id string) ([]observation, error) {
	u := fmt.Sprintf("%s/graph/fredgraph.csv?id=%s", c.BaseURL, id)
	resp, err := get(ctx, c.Client, u, userAgent)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", id, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", id, err)
	}

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	var obs []observation
	for i, line := range lines {
		if i == 0 { // header row
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}
		raw := strings.TrimSpace(parts[1])
		if raw == "" || raw == "." {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		obs = append(obs, observation{Date: strings.TrimSpace(parts[0]), Value: v})
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("series %s: no usable observations", id)
	}
	return obs, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// DebtGDPFetcher fetches the federal debt to GDP ratio.
type DebtGDPFetcher struct{ fredClient }

func NewDebtGDPFetcher(proxyURL string) *DebtGDPFetcher {
	return &DebtGDPFetcher{newFREDClient(proxyURL)}
}

func (f *DebtGDPFetcher) Name() string     { return "FRED debt/GDP" }
func (f *DebtGDPFetcher) Covers() []string { return []string{"debt_to_gdp"} }

func (f *DebtGDPFetcher) Fetch(ctx context.Context) ([]model.Reading, error) {
	obs, err := f.fetchSeries(ctx, seriesDebtGDP)
	if err != nil {
		return nil, err
	}
	latest := obs[len(obs)-1]
	return []model.Reading{{
		Indicator: "debt_to_gdp",
		Value:     round1(latest.Value),
		Unit:      "%",
		Period:    latest.Date,
		Source:    fmt.Sprintf("FRED (%s)", seriesDebtGDP),
		FetchedAt: time.Now(),
	}}, nil
}

// InterestRevenueFetcher computes federal interest outlays as a share of
// receipts from the fiscal-year OMB series.
type InterestRevenueFetcher struct{ fredClient }

func NewInterestRevenueFetcher(proxyURL string) *InterestRevenueFetcher {
	return &InterestRevenueFetcher{newFREDClient(proxyURL)}
}

func (f *InterestRevenueFetcher) Name() string     { return "FRED interest/revenue" }
func (f *InterestRevenueFetcher) Covers() []string { return []string{"interest_to_revenue"} }

func (f *InterestRevenueFetcher) Fetch(ctx context.Context) ([]model.Reading, error) {
	interest, err := f.fetchSeries(ctx, seriesFiscalInterest)
	if err != nil {
		return nil, err
	}
	revenue, err := f.fetchSeries(ctx, seriesFiscalRevenue)
	if err != nil {
		return nil, err
	}

	ratio := func(back int) (float64, bool) {
		i, r := len(interest)-1-back, len(revenue)-1-back
		if i < 0 || r < 0 || revenue[r].Value == 0 {
			return 0, false
		}
		return interest[i].Value / revenue[r].Value * 100, true
	}

	current, ok := ratio(0)
	if !ok {
		return nil, fmt.Errorf("interest/revenue: no overlapping observations")
	}
	latest := interest[len(interest)-1]

	r := model.Reading{
		Indicator: "interest_to_revenue",
		Value:     round1(current),
		Unit:      "%",
		Period:    "FY " + latest.Date[:4],
		Source:    fmt.Sprintf("FRED (%s / %s)", seriesFiscalInterest, seriesFiscalRevenue),
		FetchedAt: time.Now(),
		Detail: []model.Stat{
			// FY series are in millions
			{Label: "Interest outlays", Value: fmt.Sprintf("$%.1fB", latest.Value/1000)},
			{Label: "Federal receipts", Value: fmt.Sprintf("$%.1fB", revenue[len(revenue)-1].Value/1000)},
		},
	}
	if prev, ok := ratio(1); ok {
		r.Detail = append(r.Detail, model.Stat{Label: "1-year change", Value: signed(round1(current-prev), "%")})
	}
	if prev, ok := ratio(5); ok {
		r.Detail = append(r.Detail, model.Stat{Label: "5-year change", Value: signed(round1(current-prev), "%")})
	}
	return []model.Reading{r}, nil
}

// InterestDefenseFetcher computes interest payments as a share of defense
// spending from the quarterly SAAR series.
type InterestDefenseFetcher struct{ fredClient }

func NewInterestDefenseFetcher(proxyURL string) *InterestDefenseFetcher {
	return &InterestDefenseFetcher{newFREDClient(proxyURL)}
}

func (f *InterestDefenseFetcher) Name() string     { return "FRED interest/defense" }
func (f *InterestDefenseFetcher) Covers() []string { return []string{"interest_to_defense"} }

func (f *InterestDefenseFetcher) Fetch(ctx context.Context) ([]model.Reading, error) {
	interest, err := f.fetchSeries(ctx, seriesInterestSAAR)
	if err != nil {
		return nil, err
	}
	defense, err := f.fetchSeries(ctx, seriesDefenseSAAR)
	if err != nil {
		return nil, err
	}

	ratio := func(back int) (float64, bool) {
		i, d := len(interest)-1-back, len(defense)-1-back
		if i < 0 || d < 0 || defense[d].Value == 0 {
			return 0, false
		}
		return interest[i].Value / defense[d].Value * 100, true
	}

	current, ok := ratio(0)
	if !ok {
		return nil, fmt.Errorf("interest/defense: no overlapping observations")
	}
	latest := interest[len(interest)-1]

	r := model.Reading{
		Indicator: "interest_to_defense",
		Value:     round1(current),
		Unit:      "%",
		Period:    latest.Date,
		Source:    fmt.Sprintf("FRED (%s / %s)", seriesInterestSAAR, seriesDefenseSAAR),
		FetchedAt: time.Now(),
		Detail: []model.Stat{
			{Label: "Interest payments (SAAR)", Value: fmt.Sprintf("$%.1fB", latest.Value)},
			{Label: "Defense spending (SAAR)", Value: fmt.Sprintf("$%.1fB", defense[len(defense)-1].Value)},
		},
	}
	// quarterly series: four quarters back
	if prev, ok := ratio(4); ok {
		r.Detail = append(r.Detail, model.Stat{Label: "1-year change", Value: signed(round1(current-prev), "%")})
	}
	return []model.Reading{r}, nil
}

// TradeBalanceFetcher computes the trade balance as % of GDP: the monthly
// goods & services balance averaged over three months, annualized, against
// the latest quarterly GDP.
type TradeBalanceFetcher struct{ fredClient }

func NewTradeBalanceFetcher(proxyURL string) *TradeBalanceFetcher {
	return &TradeBalanceFetcher{newFREDClient(proxyURL)}
}

func (f *TradeBalanceFetcher) Name() string     { return "FRED trade balance" }
func (f *TradeBalanceFetcher) Covers() []string { return []string{"trade_balance_gdp"} }

func (f *TradeBalanceFetcher) Fetch(ctx context.Context) ([]model.Reading, error) {
	trade, err := f.fetchSeries(ctx, seriesTradeBalance)
	if err != nil {
		return nil, err
	}
	gdp, err := f.fetchSeries(ctx, seriesGDP)
	if err != nil {
		return nil, err
	}

	// annualized billions from a window of monthly observations in millions
	annualized := func(window []observation) float64 {
		sum := 0.0
		for _, o := range window {
			sum += o.Value
		}
		return sum / float64(len(window)) / 1000 * 12
	}

	recent := trade
	if len(trade) > 3 {
		recent = trade[len(trade)-3:]
	}
	tradeAnnual := annualized(recent)
	latestGDP := gdp[len(gdp)-1]
	if latestGDP.Value == 0 {
		return nil, fmt.Errorf("trade/GDP: zero GDP observation")
	}
	current := tradeAnnual / latestGDP.Value * 100

	r := model.Reading{
		Indicator: "trade_balance_gdp",
		Value:     round2(current),
		Unit:      "%",
		Period:    recent[len(recent)-1].Date,
		Source:    fmt.Sprintf("FRED (%s / %s)", seriesTradeBalance, seriesGDP),
		FetchedAt: time.Now(),
		Detail: []model.Stat{
			{Label: "Trade balance (annualized)", Value: fmt.Sprintf("$%.1fB", tradeAnnual)},
			{Label: "GDP", Value: fmt.Sprintf("$%.1fB", latestGDP.Value)},
		},
	}
	if len(trade) >= 15 && len(gdp) >= 5 {
		prevAnnual := annualized(trade[len(trade)-15 : len(trade)-12])
		if prevGDP := gdp[len(gdp)-5].Value; prevGDP != 0 {
			prev := prevAnnual / prevGDP * 100
			r.Detail = append(r.Detail, model.Stat{Label: "1-year change", Value: signed2(round2(current-prev), "%")})
		}
	}
	return []model.Reading{r}, nil
}
