package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fredServer serves a canned fredgraph.csv body per series id.
func fredServer(t *testing.T, series map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := series[r.URL.Query().Get("id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
}

func TestFetchSeries_SkipsPlaceholders(t *testing.T) {
	srv := fredServer(t, map[string]string{
		"GFDEGDQ188S": "DATE,GFDEGDQ188S\n2025-01-01,120.0\n2025-04-01,.\n2025-07-01,121.94\n",
	})
	defer srv.Close()

	c := fredClient{BaseURL: srv.URL, Client: srv.Client()}
	obs, err := c.fetchSeries(context.Background(), "GFDEGDQ188S")
	if err != nil {
		t.Fatalf("fetchSeries: %v", err)
	}
	if len(obs) != 2 {
		t.Fatalf("expected 2 observations (placeholder skipped), got %d", len(obs))
	}
	if obs[1].Date != "2025-07-01" || obs[1].Value != 121.94 {
		t.Errorf("latest observation = %+v", obs[1])
	}
}

func TestFetchSeries_Empty(t *testing.T) {
	srv := fredServer(t, map[string]string{"X": "DATE,X\n2025-01-01,.\n"})
	defer srv.Close()

	c := fredClient{BaseURL: srv.URL, Client: srv.Client()}
	if _, err := c.fetchSeries(context.Background(), "X"); err == nil {
		t.Fatal("expected error for series with no usable observations")
	}
}

func TestDebtGDPFetcher(t *testing.T) {
	srv := fredServer(t, map[string]string{
		seriesDebtGDP: "DATE,GFDEGDQ188S\n2025-01-01,120.0\n2025-04-01,121.94\n",
	})
	defer srv.Close()

	f := &DebtGDPFetcher{fredClient{BaseURL: srv.URL, Client: srv.Client()}}
	readings, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	r := readings[0]
	if r.Indicator != "debt_to_gdp" || r.Value != 121.9 || r.Unit != "%" {
		t.Errorf("reading = %+v", r)
	}
	if r.Period != "2025-04-01" {
		t.Errorf("period = %q", r.Period)
	}
}

func TestInterestRevenueFetcher(t *testing.T) {
	srv := fredServer(t, map[string]string{
		seriesFiscalInterest: "DATE,FYOINT\n2024-01-01,800000\n2025-01-01,1000000\n",
		seriesFiscalRevenue:  "DATE,FYFR\n2024-01-01,4800000\n2025-01-01,5000000\n",
	})
	defer srv.Close()

	f := &InterestRevenueFetcher{fredClient{BaseURL: srv.URL, Client: srv.Client()}}
	readings, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	r := readings[0]
	if r.Value != 20.0 {
		t.Errorf("ratio = %g, want 20", r.Value)
	}
	if r.Period != "FY 2025" {
		t.Errorf("period = %q, want FY 2025", r.Period)
	}
	if got := detail(r, "Interest outlays"); got != "$1000.0B" {
		t.Errorf("interest outlays = %q", got)
	}
	// 800000/4800000 = 16.67%, so the ratio rose 3.3 points year over year
	if got := detail(r, "1-year change"); got != "+3.3%" {
		t.Errorf("1-year change = %q", got)
	}
	if got := detail(r, "5-year change"); got != "" {
		t.Errorf("unexpected 5-year change %q with only two fiscal years", got)
	}
}

func TestInterestDefenseFetcher(t *testing.T) {
	srv := fredServer(t, map[string]string{
		seriesInterestSAAR: "DATE,A091RC1Q027SBEA\n2025-04-01,1000\n",
		seriesDefenseSAAR:  "DATE,FDEFX\n2025-04-01,900\n",
	})
	defer srv.Close()

	f := &InterestDefenseFetcher{fredClient{BaseURL: srv.URL, Client: srv.Client()}}
	readings, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	r := readings[0]
	if r.Value != 111.1 {
		t.Errorf("ratio = %g, want 111.1", r.Value)
	}
	if got := detail(r, "Interest payments (SAAR)"); got != "$1000.0B" {
		t.Errorf("interest payments = %q", got)
	}
}

func TestTradeBalanceFetcher(t *testing.T) {
	srv := fredServer(t, map[string]string{
		seriesTradeBalance: "DATE,BOPGSTB\n2026-04-01,-70000\n2026-05-01,-80000\n2026-06-01,-90000\n",
		seriesGDP:          "DATE,GDP\n2026-04-01,30000\n",
	})
	defer srv.Close()

	f := &TradeBalanceFetcher{fredClient{BaseURL: srv.URL, Client: srv.Client()}}
	readings, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	r := readings[0]
	// avg -80000M over 3 months, annualized = -960B, against 30000B GDP
	if r.Value != -3.2 {
		t.Errorf("trade/GDP = %g, want -3.2", r.Value)
	}
	if got := detail(r, "Trade balance (annualized)"); got != "$-960.0B" {
		t.Errorf("annualized balance = %q", got)
	}
	if r.Period != "2026-06-01" {
		t.Errorf("period = %q", r.Period)
	}
}
