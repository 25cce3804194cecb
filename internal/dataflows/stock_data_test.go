package dataflows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyike/TickerTalk/internal/models"
)

type fakeProvider struct {
	info    map[string]map[string]any
	history map[string][]models.PricePoint
	err     error

	lastStart, lastEnd time.Time
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Info(_ context.Context, symbol string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	bag, ok := f.info[symbol]
	if !ok {
		return nil, errors.New("unknown symbol")
	}
	return bag, nil
}

func (f *fakeProvider) History(_ context.Context, symbol string, start, end time.Time) ([]models.PricePoint, error) {
	f.lastStart, f.lastEnd = start, end
	if f.err != nil {
		return nil, f.err
	}
	return f.history[symbol], nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func point(date string, price float64) models.PricePoint {
	return models.PricePoint{Date: day(date), Close: decimal.NewFromFloat(price)}
}

func TestStockData_FetchAttribute(t *testing.T) {
	t.Parallel()

	bag := map[string]any{
		"currentPrice": 612.77,
		"sector":       "Communication Services",
		"marketCap":    float64(1540000000000),
	}
	sd := NewStockData(&fakeProvider{info: map[string]map[string]any{"META": bag}})

	for key, want := range bag {
		got, err := sd.FetchAttribute(context.Background(), "meta", key)
		require.NoError(t, err)
		assert.True(t, got.Found, key)
		assert.Equal(t, want, got.Value, key)
		assert.Equal(t, "META", got.Symbol)
	}
}

func TestStockData_FetchAttribute_InvalidKey(t *testing.T) {
	t.Parallel()

	sd := NewStockData(&fakeProvider{info: map[string]map[string]any{"META": {"currentPrice": 612.77}}})

	got, err := sd.FetchAttribute(context.Background(), "META", "favouriteColour")
	require.NoError(t, err)
	assert.False(t, got.Found)
	assert.Equal(t, "Invalid key", got.String())
}

func TestStockData_FetchAttribute_ProviderFailure(t *testing.T) {
	t.Parallel()

	sd := NewStockData(&fakeProvider{err: errors.New("connection reset")})

	_, err := sd.FetchAttribute(context.Background(), "META", "currentPrice")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestStockData_FetchAttribute_EmptySymbol(t *testing.T) {
	t.Parallel()

	sd := NewStockData(&fakeProvider{})

	_, err := sd.FetchAttribute(context.Background(), "  ", "currentPrice")
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestStockData_FetchHistory_FiltersAndSorts(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{history: map[string][]models.PricePoint{
		"NVDA": {
			point("2024-03-05", 859.64),
			point("2024-02-28", 776.63),
			point("2024-03-01", 822.79),
			point("2024-03-11", 857.74),
			point("2024-02-29", 791.12),
		},
	}}
	sd := NewStockData(provider)

	start, end := day("2024-02-29"), day("2024-03-05")
	series, err := sd.FetchHistory(context.Background(), "nvda", start, end)
	require.NoError(t, err)

	assert.Equal(t, "NVDA", series.Symbol)
	require.Equal(t, 3, series.Len())
	for i, p := range series.Points {
		assert.False(t, p.Date.Before(start), "point %d before start", i)
		assert.False(t, p.Date.After(end), "point %d after end", i)
		if i > 0 {
			assert.False(t, p.Date.Before(series.Points[i-1].Date), "points not ordered at %d", i)
		}
	}
	assert.True(t, series.Points[0].Close.Equal(decimal.NewFromFloat(791.12)))
}

func TestStockData_FetchHistory_DefaultStart(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{history: map[string][]models.PricePoint{}}
	sd := NewStockData(provider)

	_, err := sd.FetchHistory(context.Background(), "MSFT", time.Time{}, day("2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, 1900, provider.lastStart.Year())
}

func TestStockData_FetchHistory_ProviderFailure(t *testing.T) {
	t.Parallel()

	sd := NewStockData(&fakeProvider{err: errors.New("404 not found")})

	_, err := sd.FetchHistory(context.Background(), "ZZZZ", day("2024-01-01"), day("2024-02-01"))
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestLongportSymbol(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "AAPL.US", longportSymbol("AAPL"))
	assert.Equal(t, "700.HK", longportSymbol("700.HK"))
}

func TestLongportLocation(t *testing.T) {
	t.Parallel()

	// 2024-03-03T16:30Z is after midnight in Hong Kong and still Sunday in New York.
	const ts = 1709483400
	assert.Equal(t, day("2024-03-04"), exchangeDay(ts, longportLocation("700.HK")))
	assert.Equal(t, day("2024-03-03"), exchangeDay(ts, longportLocation("AAPL.US")))
	assert.Equal(t, day("2024-03-03"), exchangeDay(ts, longportLocation("AAPL")))
}
