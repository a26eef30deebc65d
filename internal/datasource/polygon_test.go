package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	apperrors "github.com/rxtech-lab/argo-signals/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// mockPolygonAPIClient implements PolygonAPIClient for testing.
type mockPolygonAPIClient struct {
	iterator PolygonAggsIterator
	params   *models.ListAggsParams
}

func (m *mockPolygonAPIClient) ListAggs(_ context.Context, params *models.ListAggsParams, _ ...models.RequestOption) PolygonAggsIterator {
	m.params = params

	return m.iterator
}

// mockPolygonIterator implements PolygonAggsIterator for testing.
type mockPolygonIterator struct {
	aggs  []models.Agg
	index int
	err   error
}

func (m *mockPolygonIterator) Next() bool {
	if m.index < len(m.aggs) {
		m.index++

		return true
	}

	return false
}

func (m *mockPolygonIterator) Item() models.Agg {
	if m.index > 0 && m.index <= len(m.aggs) {
		return m.aggs[m.index-1]
	}

	return models.Agg{}
}

func (m *mockPolygonIterator) Err() error {
	return m.err
}

type PolygonFetcherTestSuite struct {
	suite.Suite
	start time.Time
	end   time.Time
}

func TestPolygonFetcherSuite(t *testing.T) {
	suite.Run(t, new(PolygonFetcherTestSuite))
}

func (suite *PolygonFetcherTestSuite) SetupTest() {
	suite.start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.end = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
}

func agg(t time.Time, c float64) models.Agg {
	//nolint:exhaustruct
	return models.Agg{
		Timestamp: models.Millis(t),
		Open:      c - 1,
		High:      c + 1,
		Low:       c - 2,
		Close:     c,
		Volume:    1000,
	}
}

func (suite *PolygonFetcherTestSuite) TestNewPolygonFetcher() {
	fetcher, err := NewPolygonFetcher("test-api-key", 0, "", nil)
	suite.Require().NoError(err)
	suite.NotNil(fetcher.apiClient)
	suite.Equal(1, fetcher.multiplier)
	suite.Equal(models.Day, fetcher.timespan)
}

func (suite *PolygonFetcherTestSuite) TestNewPolygonFetcher_EmptyApiKey() {
	fetcher, err := NewPolygonFetcher("", 1, models.Day, nil)
	suite.Nil(fetcher)
	suite.Equal(apperrors.ErrCodeMissingParameter, apperrors.GetCode(err))
}

func (suite *PolygonFetcherTestSuite) TestFetch() {
	iterator := &mockPolygonIterator{aggs: []models.Agg{
		agg(suite.start.AddDate(0, 0, 1), 101),
		agg(suite.start, 100),
	}}
	api := &mockPolygonAPIClient{iterator: iterator}

	fetcher := NewPolygonFetcherWithAPI(api, 5, models.Minute, nil)
	series, err := fetcher.Fetch(context.Background(), "SPY", suite.start, suite.end)
	suite.Require().NoError(err)

	suite.Equal([]float64{100, 101}, series.Closes())
	suite.Equal(suite.start, series.Bars[0].Time)
	suite.Equal("SPY", api.params.Ticker)
	suite.Equal(5, api.params.Multiplier)
	suite.Equal(models.Minute, api.params.Timespan)
}

func (suite *PolygonFetcherTestSuite) TestFetchErrors() {
	tests := []struct {
		name     string
		iterator *mockPolygonIterator
		start    time.Time
		code     apperrors.ErrorCode
	}{
		{
			name:     "iterator error",
			iterator: &mockPolygonIterator{err: errors.New("rate limited")},
			start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			code:     apperrors.ErrCodeMarketDataFetchFailed,
		},
		{
			name:     "no aggregates",
			iterator: &mockPolygonIterator{},
			start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			code:     apperrors.ErrCodeNoDataFound,
		},
		{
			name:     "missing start",
			iterator: &mockPolygonIterator{},
			code:     apperrors.ErrCodeMissingParameter,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			fetcher := NewPolygonFetcherWithAPI(&mockPolygonAPIClient{iterator: tc.iterator}, 1, models.Day, nil)
			_, err := fetcher.Fetch(context.Background(), "SPY", tc.start, suite.end)
			suite.Equal(tc.code, apperrors.GetCode(err))
		})
	}
}
