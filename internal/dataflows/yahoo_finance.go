package dataflows

import (
	"context"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/form"

	"github.com/dyike/TickerTalk/consts"
	"github.com/dyike/TickerTalk/internal/models"
)

// yahooQuotePath is the quote endpoint the equity package reads from.
const yahooQuotePath = "/v6/finance/quote"

// yahooAliases maps the attribute names the chat tool exposes onto the field
// names of the Yahoo quote payload.
var yahooAliases = map[string]string{
	"currentPrice":        "regularMarketPrice",
	"previousClose":       "regularMarketPreviousClose",
	"open":                "regularMarketOpen",
	"dayLow":              "regularMarketDayLow",
	"dayHigh":             "regularMarketDayHigh",
	"volume":              "regularMarketVolume",
	"averageVolume":       "averageDailyVolume3Month",
	"averageVolume10days": "averageDailyVolume10Day",
	"trailingEps":         "epsTrailingTwelveMonths",
	"forwardEps":          "epsForward",
	"dividendRate":        "trailingAnnualDividendRate",
	"dividendYield":       "trailingAnnualDividendYield",
	"timeZoneFullName":    "exchangeTimezoneName",
	"timeZoneShortName":   "exchangeTimezoneShortName",
	"financialCurrency":   "currency",
}

// yahooQuoteResponse keeps each quote result as a raw field map so that fields
// Yahoo did not report stay absent instead of decoding to zero values.
type yahooQuoteResponse struct {
	Inner struct {
		Result []map[string]any    `json:"result"`
		Error  *finance.YfinError `json:"error"`
	} `json:"quoteResponse"`
}

// YahooFinanceClient handles Yahoo Finance data operations
type YahooFinanceClient struct {
	backend finance.Backend
}

// NewYahooFinanceClient creates a new Yahoo Finance client on the default
// finance-go backend
func NewYahooFinanceClient() *YahooFinanceClient {
	return &YahooFinanceClient{}
}

// NewYahooFinanceClientWithBackend creates a client that sends its requests
// through b
func NewYahooFinanceClientWithBackend(b finance.Backend) *YahooFinanceClient {
	return &YahooFinanceClient{backend: b}
}

func (yf *YahooFinanceClient) Name() string {
	return consts.MarketDataYahoo
}

func (yf *YahooFinanceClient) b() finance.Backend {
	if yf.backend != nil {
		return yf.backend
	}
	return finance.GetBackend(finance.YFinBackend)
}

// Info gets the equity quote for a symbol as an attribute bag
func (yf *YahooFinanceClient) Info(ctx context.Context, symbol string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body := &form.Values{}
	body.Add("symbols", symbol)

	var resp yahooQuoteResponse
	if err := yf.b().Call(yahooQuotePath, body, &ctx, &resp); err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	if resp.Inner.Error != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, resp.Inner.Error)
	}
	if len(resp.Inner.Result) == 0 || resp.Inner.Result[0] == nil {
		return nil, fmt.Errorf("no quote returned for %s", symbol)
	}

	bag := resp.Inner.Result[0]
	for to, from := range yahooAliases {
		copyAlias(bag, from, to)
	}

	return bag, nil
}

// History gets daily closing prices for a symbol, dated in the exchange's
// own time zone
func (yf *YahooFinanceClient) History(ctx context.Context, symbol string, start, end time.Time) ([]models.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}
	params.Context = &ctx

	iter := chart.Client{B: yf.b()}.Get(params)

	bars := make([]*finance.ChartBar, 0)
	for iter.Next() {
		bars = append(bars, iter.Bar())
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get historical data for %s: %w", symbol, err)
	}

	loc := time.UTC
	if len(bars) > 0 {
		loc = chartLocation(iter.Meta())
	}

	result := make([]models.PricePoint, 0, len(bars))
	for _, bar := range bars {
		result = append(result, models.PricePoint{
			Date:  exchangeDay(int64(bar.Timestamp), loc),
			Close: bar.Close,
		})
	}

	return result, nil
}

// chartLocation resolves the exchange time zone of a chart, falling back to
// its fixed GMT offset.
func chartLocation(meta finance.ChartMeta) *time.Location {
	if meta.ExchangeTimezoneName != "" {
		if loc, err := time.LoadLocation(meta.ExchangeTimezoneName); err == nil {
			return loc
		}
	}
	if meta.Gmtoffset != 0 {
		return time.FixedZone(meta.Timezone, meta.Gmtoffset)
	}
	return time.UTC
}
