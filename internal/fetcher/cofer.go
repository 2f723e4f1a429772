package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"MacroSentinel/internal/model"
)

// coferSeries is the IMF COFER series key for the USD share of allocated
// reserves, quarterly, world aggregate.
const coferSeries = "Q.W00.RAXGFXARUSDRT_PT"

// COFERFetcher fetches the USD share of global FX reserves. DBnomics mirrors
// the IMF COFER dataset and is the primary source; the direct IMF SDMX API is
// the fallback.
type COFERFetcher struct {
	DBnomicsURL string
	IMFURL      string
	Client      *http.Client
}

// NewCOFERFetcher creates a fetcher with optional proxy support.
func NewCOFERFetcher(proxyURL string) *COFERFetcher {
	return &COFERFetcher{
		DBnomicsURL: "https://api.db.nomics.world",
		IMFURL:      "https://dataservices.imf.org",
		Client:      newHTTPClient(proxyURL),
	}
}

func (f *COFERFetcher) Name() string     { return "IMF COFER" }
func (f *COFERFetcher) Covers() []string { return []string{"usd_reserve_share"} }

func (f *COFERFetcher) Fetch(ctx context.Context) ([]model.Reading, error) {
	r, err := f.fetchDBnomics(ctx)
	if err == nil {
		return []model.Reading{*r}, nil
	}
	log.Printf("[WARN] DBnomics fetch failed: %v, trying IMF directly", err)

	r, imfErr := f.fetchIMF(ctx)
	if imfErr != nil {
		return nil, fmt.Errorf("dbnomics: %w; imf fallback: %v", err, imfErr)
	}
	return []model.Reading{*r}, nil
}

// dbnomicsResponse is the subset of the DBnomics v22 series response we use.
// Values may be null for quarters the IMF has not published yet.
type dbnomicsResponse struct {
	Series struct {
		Docs []struct {
			Period []string   `json:"period"`
			Value  []*float64 `json:"value"`
		} `json:"docs"`
	} `json:"series"`
}

func (f *COFERFetcher) fetchDBnomics(ctx context.Context) (*model.Reading, error) {
	u := fmt.Sprintf("%s/v22/series/IMF/COFER/%s?observations=1", f.DBnomicsURL, coferSeries)
	resp, err := get(ctx, f.Client, u, userAgent)
	if err != nil {
		return nil, fmt.Errorf("fetch series: %w", err)
	}
	defer resp.Body.Close()

	var body dbnomicsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(body.Series.Docs) == 0 {
		return nil, fmt.Errorf("no series returned")
	}
	doc := body.Series.Docs[0]

	// Latest non-null observation; the IMF trails by a quarter or two.
	latest := len(doc.Value) - 1
	for latest >= 0 && doc.Value[latest] == nil {
		latest--
	}
	if latest < 0 || latest >= len(doc.Period) {
		return nil, fmt.Errorf("no observations")
	}

	r := &model.Reading{
		Indicator: "usd_reserve_share",
		Value:     *doc.Value[latest],
		Unit:      "%",
		Period:    doc.Period[latest],
		Source:    "IMF COFER via DBnomics",
		FetchedAt: time.Now(),
	}
	r.Detail = append(r.Detail, model.Stat{Label: "Period", Value: r.Period})
	if latest >= 4 && doc.Value[latest-4] != nil {
		r.Detail = append(r.Detail, model.Stat{
			Label: "1-year change",
			Value: signed2(r.Value-*doc.Value[latest-4], "%"),
		})
	}
	if latest >= 20 && doc.Value[latest-20] != nil {
		r.Detail = append(r.Detail, model.Stat{
			Label: "5-year change",
			Value: signed2(r.Value-*doc.Value[latest-20], "%"),
		})
	}
	return r, nil
}

// imfObs handles the SDMX-JSON quirk of returning either an object or an
// array for Obs, and numbers encoded as strings.
type imfObs struct {
	Period string      `json:"@TIME_PERIOD"`
	Value  interface{} `json:"@OBS_VALUE"`
}

func (f *COFERFetcher) fetchIMF(ctx context.Context) (*model.Reading, error) {
	u := fmt.Sprintf("%s/REST/SDMX_JSON.svc/CompactData/COFER/%s", f.IMFURL, coferSeries)
	resp, err := get(ctx, f.Client, u, userAgent)
	if err != nil {
		return nil, fmt.Errorf("fetch series: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		CompactData struct {
			DataSet struct {
				Series struct {
					Obs json.RawMessage `json:"Obs"`
				} `json:"Series"`
			} `json:"DataSet"`
		} `json:"CompactData"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var observations []imfObs
	raw := body.CompactData.DataSet.Series.Obs
	if err := json.Unmarshal(raw, &observations); err != nil {
		var single imfObs
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("decode observations: %w", err)
		}
		observations = []imfObs{single}
	}
	if len(observations) == 0 {
		return nil, fmt.Errorf("no observations")
	}

	latest := observations[len(observations)-1]
	value, ok := toFloat(latest.Value)
	if !ok {
		return nil, fmt.Errorf("unparseable observation value")
	}

	r := &model.Reading{
		Indicator: "usd_reserve_share",
		Value:     value,
		Unit:      "%",
		Period:    latest.Period,
		Source:    "IMF COFER direct API",
		FetchedAt: time.Now(),
	}
	r.Detail = append(r.Detail, model.Stat{Label: "Period", Value: r.Period})
	if len(observations) >= 5 {
		if prev, ok := toFloat(observations[len(observations)-5].Value); ok {
			r.Detail = append(r.Detail, model.Stat{Label: "1-year change", Value: signed2(value-prev, "%")})
		}
	}
	if len(observations) >= 21 {
		if prev, ok := toFloat(observations[len(observations)-21].Value); ok {
			r.Detail = append(r.Detail, model.Stat{Label: "5-year change", Value: signed2(value-prev, "%")})
		}
	}
	return r, nil
}
