package dataflows

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFinnhubServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid API key"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/quote":
			if r.URL.Query().Get("symbol") == "ZZZZ" {
				_, _ = w.Write([]byte(`{"c":0,"d":null,"dp":null,"h":0,"l":0,"o":0,"pc":0,"t":0}`))
				return
			}
			_, _ = w.Write([]byte(`{"c":612.77,"d":3.1,"dp":0.51,"h":615,"l":601.2,"o":605.5,"pc":609.67,"t":1760600000}`))
		case "/stock/profile2":
			if r.URL.Query().Get("symbol") == "ZZZZ" {
				_, _ = w.Write([]byte(`{}`))
				return
			}
			_, _ = w.Write([]byte(`{"country":"US","currency":"USD","exchange":"NASDAQ NMS - GLOBAL MARKET","finnhubIndustry":"Media","marketCapitalization":1540000.5,"name":"Meta Platforms Inc","shareOutstanding":2520.1,"ticker":"META","weburl":"https://investor.fb.com"}`))
		case "/stock/candle":
			if r.URL.Query().Get("resolution") != "D" {
				t.Errorf("expected resolution D, got %s", r.URL.Query().Get("resolution"))
			}
			if r.URL.Query().Get("symbol") == "EMPTY" {
				_, _ = w.Write([]byte(`{"s":"no_data"}`))
				return
			}
			_, _ = w.Write([]byte(`{"c":[180.5,182.25],"t":[1709251200,1709510400],"s":"ok"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestFinnhubClient_Info(t *testing.T) {
	t.Parallel()

	server := newFinnhubServer(t)
	defer server.Close()

	client := NewFinnhubClient("test-key", server.URL, 5*time.Second)
	bag, err := client.Info(context.Background(), "META")
	require.NoError(t, err)

	assert.Equal(t, 612.77, bag["currentPrice"])
	assert.Equal(t, 609.67, bag["previousClose"])
	assert.Equal(t, "Meta Platforms Inc", bag["longName"])
	assert.Equal(t, "Media", bag["industry"])
	assert.Equal(t, int64(1540000500000), bag["marketCap"])
	assert.Equal(t, int64(2520100000), bag["sharesOutstanding"])
}

func TestFinnhubClient_UnknownSymbol(t *testing.T) {
	t.Parallel()

	server := newFinnhubServer(t)
	defer server.Close()

	client := NewFinnhubClient("test-key", server.URL, 5*time.Second)
	_, err := client.Info(context.Background(), "ZZZZ")
	require.Error(t, err)

	_, err = NewStockData(client).FetchAttribute(context.Background(), "ZZZZ", "currentPrice")
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestFinnhubClient_History(t *testing.T) {
	t.Parallel()

	server := newFinnhubServer(t)
	defer server.Close()

	client := NewFinnhubClient("test-key", server.URL, 5*time.Second)
	points, err := client.History(context.Background(), "MSFT", day("2024-03-01"), day("2024-03-05"))
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-03-01", points[0].Date.Format("2006-01-02"))
	assert.Equal(t, "182.25", points[1].Close.String())

	points, err = client.History(context.Background(), "EMPTY", day("2024-03-01"), day("2024-03-05"))
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestFinnhubClient_APIError(t *testing.T) {
	t.Parallel()

	server := newFinnhubServer(t)
	defer server.Close()

	client := NewFinnhubClient("wrong-key", server.URL, 5*time.Second)
	_, err := client.Info(context.Background(), "META")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestFinnhubClient_MissingKey(t *testing.T) {
	t.Parallel()

	client := NewFinnhubClient("", "http://127.0.0.1:0", time.Second)
	_, err := client.History(context.Background(), "META", day("2024-03-01"), day("2024-03-05"))
	require.Error(t, err)
}
