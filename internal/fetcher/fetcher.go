package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"MacroSentinel/internal/model"
)

// userAgent is sent on every data-source request. Some sources (SEC, IMF)
// want an identifiable agent; Yahoo wants a browser one, see yahoo.go.
const userAgent = "MacroSentinel/1.0 (macro indicator monitor)"

// Fetcher retrieves the latest value(s) for one data source.
type Fetcher interface {
	// Name identifies the source in logs.
	Name() string
	// Covers lists the indicator ids this source produces, so a failed
	// fetch can be attributed to the right report entries.
	Covers() []string
	// Fetch returns the most recent readings, or an error if the source
	// is unreachable, malformed, or missing the expected period.
	Fetch(ctx context.Context) ([]model.Reading, error)
}

// newHTTPClient builds the shared client with optional proxy support.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

// get issues a GET with the given User-Agent and returns the response after
// checking for a 200.
func get(ctx context.Context, client *http.Client, rawURL, ua string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return resp, nil
}

// signed formats a change value with an explicit sign, e.g. "+0.5%".
func signed(v float64, unit string) string {
	if v > 0 {
		return fmt.Sprintf("+%.1f%s", v, unit)
	}
	return fmt.Sprintf("%.1f%s", v, unit)
}

// signed2 is signed with two decimals, used for slow-moving shares.
func signed2(v float64, unit string) string {
	if v > 0 {
		return fmt.Sprintf("+%.2f%s", v, unit)
	}
	return fmt.Sprintf("%.2f%s", v, unit)
}

// toFloat coerces the mixed number/string/null values some JSON APIs return.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		var f float64
		if _, err := fmt.Sscanf(n, "%f", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}
