package fetcher

import (
	"context"

	"MacroSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Source   string
	IDs      []string
	Readings []model.Reading
	Err      error
}

func (m *MockFetcher) Name() string     { return m.Source }
func (m *MockFetcher) Covers() []string { return m.IDs }

func (m *MockFetcher) Fetch(_ context.Context) ([]model.Reading, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Readings, nil
}
