package dataflows

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	_ "time/tzdata"

	"github.com/piquette/finance-go/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cannedBackend answers finance-go calls from fixed JSON bodies keyed by path
// prefix.
type cannedBackend struct {
	payloads map[string]string
	queries  []string
}

func (c *cannedBackend) Call(path string, body *form.Values, _ *context.Context, v interface{}) error {
	if body != nil {
		c.queries = append(c.queries, body.Encode())
	}
	for prefix, payload := range c.payloads {
		if strings.HasPrefix(path, prefix) {
			return json.Unmarshal([]byte(payload), v)
		}
	}
	return errors.New("error response recieved from upstream api")
}

const nvdaQuote = `{"quoteResponse":{"result":[{"symbol":"NVDA","regularMarketPrice":822.79,"regularMarketPreviousClose":791.12,"currency":"USD","exchangeTimezoneName":"America/New_York"}],"error":null}}`

func TestYahooFinanceClient_Info(t *testing.T) {
	t.Parallel()

	backend := &cannedBackend{payloads: map[string]string{yahooQuotePath: nvdaQuote}}
	client := NewYahooFinanceClientWithBackend(backend)

	bag, err := client.Info(context.Background(), "NVDA")
	require.NoError(t, err)

	assert.Equal(t, 822.79, bag["regularMarketPrice"])
	assert.Equal(t, 822.79, bag["currentPrice"])
	assert.Equal(t, 791.12, bag["previousClose"])
	assert.Equal(t, "USD", bag["financialCurrency"])
	assert.Equal(t, "America/New_York", bag["timeZoneFullName"])
	require.Len(t, backend.queries, 1)
	assert.Contains(t, backend.queries[0], "symbols=NVDA")
}

func TestYahooFinanceClient_UnreportedKeysStayAbsent(t *testing.T) {
	t.Parallel()

	backend := &cannedBackend{payloads: map[string]string{yahooQuotePath: nvdaQuote}}
	sd := NewStockData(NewYahooFinanceClientWithBackend(backend))

	for _, key := range []string{"forwardPE", "trailingPE", "marketCap", "bookValue", "volume"} {
		v, err := sd.FetchAttribute(context.Background(), "NVDA", key)
		require.NoError(t, err, key)
		assert.False(t, v.Found, key)
		assert.Equal(t, "Invalid key", v.String(), key)
	}

	v, err := sd.FetchAttribute(context.Background(), "NVDA", "currentPrice")
	require.NoError(t, err)
	assert.True(t, v.Found)
	assert.Equal(t, "822.79", v.String())
}

func TestYahooFinanceClient_NoQuote(t *testing.T) {
	t.Parallel()

	backend := &cannedBackend{payloads: map[string]string{
		yahooQuotePath: `{"quoteResponse":{"result":[],"error":null}}`,
	}}
	_, err := NewStockData(NewYahooFinanceClientWithBackend(backend)).FetchAttribute(context.Background(), "ZZZZ", "currentPrice")
	assert.ErrorIs(t, err, ErrFetchFailed)

	_, err = NewYahooFinanceClientWithBackend(&cannedBackend{}).Info(context.Background(), "NVDA")
	assert.Error(t, err)
}

func TestYahooFinanceClient_HistoryUsesExchangeDate(t *testing.T) {
	t.Parallel()

	// 2024-03-03T21:00Z and 2024-03-04T21:00Z are the following mornings in Auckland.
	backend := &cannedBackend{payloads: map[string]string{
		"v8/finance/chart/": `{"chart":{"result":[{
			"meta":{"currency":"NZD","symbol":"AIR.NZ","gmtoffset":46800,"timezone":"NZDT","exchangeTimezoneName":"Pacific/Auckland"},
			"timestamp":[1709499600,1709586000],
			"indicators":{
				"quote":[{"open":[0.6,0.61],"low":[0.59,0.6],"high":[0.62,0.63],"close":[0.605,0.615],"volume":[1000,2000]}],
				"adjclose":[{"adjclose":[0.605,0.615]}]
			}}],"error":null}}`,
	}}
	client := NewYahooFinanceClientWithBackend(backend)

	points, err := client.History(context.Background(), "AIR.NZ", day("2024-03-01"), day("2024-03-06"))
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, day("2024-03-04"), points[0].Date)
	assert.Equal(t, day("2024-03-05"), points[1].Date)
	assert.Equal(t, "0.605", points[0].Close.String())

	series, err := NewStockData(client).FetchHistory(context.Background(), "AIR.NZ", day("2024-03-04"), day("2024-03-04"))
	require.NoError(t, err)
	require.Len(t, series.Points, 1)
	assert.Equal(t, "2024-03-04", series.Points[0].Date.Format("2006-01-02"))
}

func TestYahooFinanceClient_HistoryFailure(t *testing.T) {
	t.Parallel()

	client := NewYahooFinanceClientWithBackend(&cannedBackend{})
	_, err := client.History(context.Background(), "NVDA", day("2024-03-01"), day("2024-03-06"))
	assert.Error(t, err)
}
