package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/dyike/TickerTalk/consts"
	"github.com/dyike/TickerTalk/internal/models"
)

// FinnhubClient handles Finnhub API operations
type FinnhubClient struct {
	client *resty.Client
	apiKey string
}

// NewFinnhubClient creates a new Finnhub client
func NewFinnhubClient(apiKey, baseURL string, timeout time.Duration) *FinnhubClient {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)

	return &FinnhubClient{
		client: client,
		apiKey: apiKey,
	}
}

// FinnhubQuote represents /quote
type FinnhubQuote struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// FinnhubProfile represents /stock/profile2
type FinnhubProfile struct {
	Country           string  `json:"country"`
	Currency          string  `json:"currency"`
	Exchange          string  `json:"exchange"`
	Industry          string  `json:"finnhubIndustry"`
	IPO               string  `json:"ipo"`
	Logo              string  `json:"logo"`
	MarketCap         float64 `json:"marketCapitalization"` // millions
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	SharesOutstanding float64 `json:"shareOutstanding"` // millions
	Ticker            string  `json:"ticker"`
	WebURL            string  `json:"weburl"`
}

// FinnhubCandles represents /stock/candle
type FinnhubCandles struct {
	Close     []float64 `json:"c"`
	Timestamp []int64   `json:"t"`
	Status    string    `json:"s"`
}

func (fc *FinnhubClient) Name() string {
	return consts.MarketDataFinnhub
}

func (fc *FinnhubClient) get(ctx context.Context, path string, params map[string]string, out any) error {
	if fc.apiKey == "" {
		return fmt.Errorf("Finnhub API key not configured")
	}

	resp, err := fc.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("token", fc.apiKey).
		Get(path)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", path, err)
	}
	return nil
}

// Info merges the quote and the company profile into one attribute bag
func (fc *FinnhubClient) Info(ctx context.Context, symbol string) (map[string]any, error) {
	var q FinnhubQuote
	if err := fc.get(ctx, "/quote", map[string]string{"symbol": symbol}, &q); err != nil {
		return nil, err
	}

	var p FinnhubProfile
	if err := fc.get(ctx, "/stock/profile2", map[string]string{"symbol": symbol}, &p); err != nil {
		return nil, err
	}

	// Unknown symbols come back as an all-zero quote and an empty profile.
	if q.Timestamp == 0 && p.Ticker == "" {
		return nil, fmt.Errorf("no quote or profile for %s", symbol)
	}

	bag := map[string]any{
		"symbol":                     symbol,
		"currentPrice":               q.Current,
		"regularMarketPrice":         q.Current,
		"open":                       q.Open,
		"regularMarketOpen":          q.Open,
		"dayHigh":                    q.High,
		"regularMarketDayHigh":       q.High,
		"dayLow":                     q.Low,
		"regularMarketDayLow":        q.Low,
		"previousClose":              q.PreviousClose,
		"regularMarketPreviousClose": q.PreviousClose,
	}

	if p.Ticker != "" {
		bag["shortName"] = p.Name
		bag["longName"] = p.Name
		bag["country"] = p.Country
		bag["currency"] = p.Currency
		bag["financialCurrency"] = p.Currency
		bag["exchange"] = p.Exchange
		bag["industry"] = p.Industry
		bag["industryDisp"] = p.Industry
		bag["phone"] = p.Phone
		bag["website"] = p.WebURL
		bag["marketCap"] = decimal.NewFromFloat(p.MarketCap).Shift(6).Round(0).IntPart()
		bag["sharesOutstanding"] = decimal.NewFromFloat(p.SharesOutstanding).Shift(6).Round(0).IntPart()
	}

	return bag, nil
}

// History gets daily candles and keeps the closing prices
func (fc *FinnhubClient) History(ctx context.Context, symbol string, start, end time.Time) ([]models.PricePoint, error) {
	var candles FinnhubCandles
	err := fc.get(ctx, "/stock/candle", map[string]string{
		"symbol":     symbol,
		"resolution": "D",
		"from":       strconv.FormatInt(start.Unix(), 10),
		"to":         strconv.FormatInt(end.Unix(), 10),
	}, &candles)
	if err != nil {
		return nil, err
	}

	switch candles.Status {
	case "ok":
	case "no_data":
		return []models.PricePoint{}, nil
	default:
		return nil, fmt.Errorf("unexpected candle status %q for %s", candles.Status, symbol)
	}

	if len(candles.Close) != len(candles.Timestamp) {
		return nil, fmt.Errorf("malformed candles for %s: %d closes, %d timestamps", symbol, len(candles.Close), len(candles.Timestamp))
	}

	result := make([]models.PricePoint, 0, len(candles.Close))
	for i, c := range candles.Close {
		result = append(result, models.PricePoint{
			Date:  exchangeDay(candles.Timestamp[i], time.UTC),
			Close: decimal.NewFromFloat(c),
		})
	}
	return result, nil
}
