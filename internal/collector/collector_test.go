package collector

import (
	"context"
	"errors"
	"testing"

	"MacroSentinel/internal/fetcher"
	"MacroSentinel/internal/model"
)

func TestCollect_FailedSourceDoesNotAbortRun(t *testing.T) {
	c := New(
		&fetcher.MockFetcher{
			Source: "FRED",
			IDs:    []string{"debt_to_gdp"},
			Readings: []model.Reading{
				{Indicator: "debt_to_gdp", Value: 121.9, Unit: "%"},
			},
		},
		&fetcher.MockFetcher{
			Source: "Treasury TIC",
			IDs:    []string{"china_treasury", "japan_treasury"},
			Err:    errors.New("status 503"),
		},
		&fetcher.MockFetcher{
			Source: "Yahoo Finance",
			IDs:    []string{"dxy"},
			Readings: []model.Reading{
				{Indicator: "dxy", Value: 104.2},
			},
		},
	)

	res := c.Collect(context.Background())

	if len(res.Readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(res.Readings))
	}
	if res.Reading("debt_to_gdp") == nil || res.Reading("dxy") == nil {
		t.Error("readings from healthy sources missing")
	}
	for _, id := range []string{"china_treasury", "japan_treasury"} {
		if res.Failures[id] != "status 503" {
			t.Errorf("%s: failure reason = %q, want %q", id, res.Failures[id], "status 503")
		}
	}
	if res.Reading("china_treasury") != nil {
		t.Error("failed indicator should have no reading")
	}
}

func TestCollect_SourceSucceedsButRowMissing(t *testing.T) {
	c := New(&fetcher.MockFetcher{
		Source: "Treasury TIC",
		IDs:    []string{"china_treasury", "japan_treasury"},
		Readings: []model.Reading{
			{Indicator: "japan_treasury", Value: 1134.1, Unit: "B"},
		},
	})

	res := c.Collect(context.Background())

	if res.Reading("japan_treasury") == nil {
		t.Error("japan reading missing")
	}
	if got := res.Failures["china_treasury"]; got != "no data in Treasury TIC response" {
		t.Errorf("china failure = %q", got)
	}
}

func TestResult_ReadingCopies(t *testing.T) {
	res := &Result{
		Readings: map[string]model.Reading{"dxy": {Indicator: "dxy", Value: 100}},
		Failures: map[string]string{},
	}
	r := res.Reading("dxy")
	r.Value = 1
	if res.Readings["dxy"].Value != 100 {
		t.Error("Reading must return a copy, not a reference into the map")
	}
}

func TestDefaultFetchers_CoverAllIndicators(t *testing.T) {
	covered := map[string]bool{}
	for _, f := range DefaultFetchers("") {
		for _, id := range f.Covers() {
			if covered[id] {
				t.Errorf("indicator %s covered by more than one fetcher", id)
			}
			covered[id] = true
		}
	}
	want := []string{
		"usd_reserve_share", "china_treasury", "japan_treasury", "dxy",
		"debt_to_gdp", "interest_to_revenue", "interest_to_defense",
		"trade_balance_gdp", "intl_vs_us",
	}
	for _, id := range want {
		if !covered[id] {
			t.Errorf("no fetcher covers %s", id)
		}
	}
}
