package config

// Direction controls which side of the threshold pair is the bad side.
const (
	DirectionBelow = "below" // dropping under the threshold is bad
	DirectionAbove = "above" // rising over the threshold is bad
)

// Indicator is the static definition of one monitored indicator: display
// metadata plus its warning/critical threshold pair. Informational indicators
// are shown for context and never assessed.
type Indicator struct {
	ID            string
	Title         string
	Unit          string
	Warning       float64
	Critical      float64
	Direction     string
	Context       string
	Informational bool
}

// Defaults returns a fresh copy of the built-in indicator table.
func Defaults() map[string]Indicator {
	table := map[string]Indicator{
		"usd_reserve_share": {
			Title:     "USD Share of Global Reserves",
			Unit:      "%",
			Warning:   55.0,
			Critical:  50.0,
			Direction: DirectionBelow,
			Context:   "Peaked at 71% in 2000. Declined to ~58% by 2024. Below 50% would be unprecedented since tracking began in 1999.",
		},
		"china_treasury": {
			Title:     "China Treasury Holdings",
			Unit:      "B",
			Warning:   700.0,
			Critical:  500.0,
			Direction: DirectionBelow,
			Context:   "Peaked at $1.32T in Nov 2013. Has been steadily declining since 2018. Below $500B would signal aggressive divestment.",
		},
		"japan_treasury": {
			Title:     "Japan Treasury Holdings",
			Unit:      "B",
			Warning:   1000.0,
			Critical:  850.0,
			Direction: DirectionBelow,
			Context:   "Largest foreign holder. Peaked at $1.29T in Nov 2021. Selling often reflects yen defense rather than dedollarization.",
		},
		"dxy": {
			Title:     "Dollar Index (DXY)",
			Unit:      "",
			Warning:   90.0,
			Critical:  80.0,
			Direction: DirectionBelow,
			Context:   "Created 1973 at 100. All-time high: 164.7 (Feb 1985). All-time low: 70.7 (Mar 2008). Measures USD vs EUR (57.6%), JPY (13.6%), GBP (11.9%), CAD (9.1%), SEK (4.2%), CHF (3.6%).",
		},
		"debt_to_gdp": {
			Title:     "US Debt-to-GDP Ratio",
			Unit:      "%",
			Warning:   130.0,
			Critical:  150.0,
			Direction: DirectionAbove,
			Context:   "Was 55% in 2000, crossed 100% in 2013, peaked at 126% in 2020. For comparison: Japan ~260%, Italy ~140%, UK ~100%, Germany ~65%.",
		},
		"interest_to_revenue": {
			Title:     "Interest Payments as % of Revenue",
			Unit:      "%",
			Warning:   20.0,
			Critical:  22.0,
			Direction: DirectionAbove,
			Context:   "Previous peak was ~18% in 1991. Fell to ~6% by 2015 due to low rates. Japan at ~260% debt/GDP only pays ~8% of revenue to interest due to BoJ ownership and near-zero rates.",
		},
		"interest_to_defense": {
			Title:     "Interest vs Defense Spending (Guns vs Debt)",
			Unit:      "%",
			Warning:   100.0,
			Critical:  120.0,
			Direction: DirectionAbove,
			Context:   "Crossed 100% for the first time in 2024 (~$880B interest vs ~$820B defense). Great powers historically decline when debt service exceeds military spending: Hapsburg Spain, ancien regime France, the Ottomans, the British Empire.",
		},
		"trade_balance_gdp": {
			Title:     "Trade Balance as % of GDP",
			Unit:      "%",
			Warning:   -1.5,
			Critical:  -0.5,
			Direction: DirectionAbove,
			Context:   "The US has run continuous deficits since 1976. Peak deficit was -5.7% in 2006. A rapid move toward zero would signal the world is no longer willing to finance US consumption.",
		},
		"intl_vs_us": {
			Title:         "International vs US Stocks (3-Year)",
			Unit:          "%",
			Informational: true,
			Context:       "Positive = international outperforming. US has outperformed international for most of 2010-2024. Sustained reversal may signal dollar weakness or valuation normalization.",
		},
	}
	for id, ind := range table {
		ind.ID = id
		table[id] = ind
	}
	return table
}

// DefaultOrder is the fixed display order of indicators in the report.
func DefaultOrder() []string {
	return []string{
		"usd_reserve_share",
		"china_treasury",
		"japan_treasury",
		"dxy",
		"debt_to_gdp",
		"interest_to_revenue",
		"interest_to_defense",
		"trade_balance_gdp",
		"intl_vs_us",
	}
}
