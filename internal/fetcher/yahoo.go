package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"MacroSentinel/internal/model"
)

// Yahoo rejects non-browser user agents.
const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Roughly 252 trading days per year.
const (
	barsPerYear   = 252
	barsFiveYears = 756
)

// yahooClient fetches daily closes from the Yahoo Finance chart API.
type yahooClient struct {
	BaseURL string
	Client  *http.Client
}

func newYahooClient(proxyURL string) yahooClient {
	return yahooClient{
		BaseURL: "https://query1.finance.yahoo.com",
		Client:  newHTTPClient(proxyURL),
	}
}

// yahooChart is the response structure from the Yahoo chart API. Close values
// are null on holidays, hence interface{}.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type point struct {
	Time  time.Time
	Close float64
}

// fetchCloses returns five years of daily closes for symbol, oldest first,
// null bars dropped.
func (c yahooClient) fetchCloses(ctx context.Context, symbol string) ([]point, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5y", c.BaseURL, url.PathEscape(symbol))
	resp, err := get(ctx, c.Client, u, browserUA)
	if err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	var chart yahooChart
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("yahoo %s: decode: %w", symbol, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo %s: api error: %s", symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo %s: no data returned", symbol)
	}

	result := chart.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	points := make([]point, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) {
			break
		}
		v, ok := toFloat(closes[i])
		if !ok {
			continue
		}
		points = append(points, point{Time: time.Unix(ts, 0), Close: v})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("yahoo %s: no usable closes", symbol)
	}
	return points, nil
}

// DXYFetcher fetches the US Dollar Index level.
type DXYFetcher struct {
	Symbol string
	yahooClient
}

func NewDXYFetcher(proxyURL string) *DXYFetcher {
	return &DXYFetcher{Symbol: "DX-Y.NYB", yahooClient: newYahooClient(proxyURL)}
}

func (f *DXYFetcher) Name() string     { return "Yahoo DXY" }
func (f *DXYFetcher) Covers() []string { return []string{"dxy"} }

func (f *DXYFetcher) Fetch(ctx context.Context) ([]model.Reading, error) {
	points, err := f.fetchCloses(ctx, f.Symbol)
	if err != nil {
		return nil, err
	}
	latest := points[len(points)-1]

	r := model.Reading{
		Indicator: "dxy",
		Value:     round2(latest.Close),
		Period:    latest.Time.Format("2006-01-02"),
		Source:    fmt.Sprintf("Yahoo Finance (%s)", f.Symbol),
		FetchedAt: time.Now(),
	}
	if len(points) > barsPerYear {
		yearAgo := points[len(points)-barsPerYear]
		r.Detail = append(r.Detail,
			model.Stat{
				Label: "1-year ago",
				Value: fmt.Sprintf("%.2f (%s)", yearAgo.Close, yearAgo.Time.Format("2006-01-02")),
			},
			model.Stat{
				Label: "1-year change",
				Value: signed(round1((latest.Close-yearAgo.Close)/yearAgo.Close*100), "%"),
			},
		)
	}
	if len(points) > barsFiveYears {
		threeYearAgo := points[len(points)-barsFiveYears]
		r.Detail = append(r.Detail, model.Stat{
			Label: "3-year change",
			Value: signed(round1((latest.Close-threeYearAgo.Close)/threeYearAgo.Close*100), "%"),
		})
	}
	return []model.Reading{r}, nil
}

// PerformanceFetcher compares international (VXUS) against US (VTI) equity
// returns over three years. Informational only: it never trips a threshold.
type PerformanceFetcher struct {
	IntlSymbol string
	USSymbol   string
	yahooClient
}

func NewPerformanceFetcher(proxyURL string) *PerformanceFetcher {
	return &PerformanceFetcher{
		IntlSymbol:  "VXUS",
		USSymbol:    "VTI",
		yahooClient: newYahooClient(proxyURL),
	}
}

func (f *PerformanceFetcher) Name() string     { return "Yahoo VXUS/VTI" }
func (f *PerformanceFetcher) Covers() []string { return []string{"intl_vs_us"} }

func (f *PerformanceFetcher) Fetch(ctx context.Context) ([]model.Reading, error) {
	intl, err := f.fetchCloses(ctx, f.IntlSymbol)
	if err != nil {
		return nil, err
	}
	us, err := f.fetchCloses(ctx, f.USSymbol)
	if err != nil {
		return nil, err
	}
	if len(intl) <= barsFiveYears || len(us) <= barsFiveYears {
		return nil, fmt.Errorf("insufficient price history for 3-year comparison")
	}

	pctReturn := func(points []point, back int) float64 {
		then := points[len(points)-back].Close
		return (points[len(points)-1].Close/then - 1) * 100
	}
	intl3y := pctReturn(intl, barsFiveYears)
	us3y := pctReturn(us, barsFiveYears)
	diff3y := round1(intl3y - us3y)
	latest := intl[len(intl)-1]

	direction := "Roughly even"
	if diff3y > 0 {
		direction = "International outperforming"
	} else if diff3y < 0 {
		direction = "US outperforming"
	}

	r := model.Reading{
		Indicator: "intl_vs_us",
		Value:     diff3y,
		Unit:      "%",
		Period:    latest.Time.Format("2006-01-02"),
		Source:    fmt.Sprintf("Yahoo Finance (%s vs %s)", f.IntlSymbol, f.USSymbol),
		FetchedAt: time.Now(),
		Detail: []model.Stat{
			{Label: fmt.Sprintf("International 3yr return (%s)", f.IntlSymbol), Value: signed(round1(intl3y), "%")},
			{Label: fmt.Sprintf("US 3yr return (%s)", f.USSymbol), Value: signed(round1(us3y), "%")},
		},
	}
	if len(intl) > barsPerYear && len(us) > barsPerYear {
		diff1y := round1(pctReturn(intl, barsPerYear) - pctReturn(us, barsPerYear))
		r.Detail = append(r.Detail, model.Stat{Label: "1-year difference", Value: signed(diff1y, "%")})
	}
	r.Detail = append(r.Detail, model.Stat{Label: "Direction", Value: direction})
	return []model.Reading{r}, nil
}
