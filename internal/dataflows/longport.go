package dataflows

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	lpconfig "github.com/longportapp/openapi-go/config"
	"github.com/longportapp/openapi-go/quote"
	"github.com/shopspring/decimal"

	"github.com/dyike/TickerTalk/config"
	"github.com/dyike/TickerTalk/consts"
	"github.com/dyike/TickerTalk/internal/models"
)

// maxLongportSticks is the largest count the candlestick endpoint accepts.
const maxLongportSticks = 1000

type LongportClient struct {
	quoteCtx *quote.QuoteContext
	now      func() time.Time
}

func NewLongportClient(cfg *config.Config) (*LongportClient, error) {
	if cfg.LongportAppKey == "" || cfg.LongportAppSecret == "" || cfg.LongportAccessToken == "" {
		return nil, errors.New("longport API credentials not configured")
	}

	conf, err := lpconfig.New(lpconfig.WithConfigKey(cfg.LongportAppKey, cfg.LongportAppSecret, cfg.LongportAccessToken))
	if err != nil {
		return nil, err
	}

	quoteContext, err := quote.NewFromCfg(conf)
	if err != nil {
		return nil, err
	}

	return &LongportClient{
		quoteCtx: quoteContext,
		now:      time.Now,
	}, nil
}

func (lpc *LongportClient) Name() string {
	return consts.MarketDataLongport
}

// Info combines the static security info with the latest daily close
func (lpc *LongportClient) Info(ctx context.Context, symbol string) (map[string]any, error) {
	if lpc.quoteCtx == nil {
		return nil, errors.New("quote context is nil")
	}
	lpSymbol := longportSymbol(symbol)

	infos, err := lpc.quoteCtx.StaticInfo(ctx, []string{lpSymbol})
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 || infos[0] == nil {
		return nil, fmt.Errorf("no static info for %s", lpSymbol)
	}
	info := infos[0]

	bag := map[string]any{
		"symbol":    symbol,
		"shortName": info.NameEn,
		"longName":  info.NameEn,
		"exchange":  info.Exchange,
		"currency":  info.Currency,
		"lotSize":   info.LotSize,
	}

	sticks, err := lpc.quoteCtx.Candlesticks(ctx, lpSymbol, quote.PeriodDay, 1, quote.AdjustTypeNo)
	if err != nil {
		return nil, err
	}
	if len(sticks) > 0 {
		last, _ := sticks[len(sticks)-1].Close.Float64()
		bag["currentPrice"] = last
		bag["regularMarketPrice"] = last
	}

	return bag, nil
}

// History fetches enough daily sticks to cover start and keeps their closes
func (lpc *LongportClient) History(ctx context.Context, symbol string, start, end time.Time) ([]models.PricePoint, error) {
	if lpc.quoteCtx == nil {
		return nil, errors.New("quote context is nil")
	}

	days := math.Ceil(lpc.now().Sub(start).Hours()/24) + 1
	count := int32(maxLongportSticks)
	if days < maxLongportSticks {
		count = int32(days)
	}
	if count < 1 {
		count = 1
	}

	lpSymbol := longportSymbol(symbol)
	sticks, err := lpc.quoteCtx.Candlesticks(ctx, lpSymbol, quote.PeriodDay, count, quote.AdjustTypeNo)
	if err != nil {
		return nil, err
	}

	loc := longportLocation(lpSymbol)
	result := make([]models.PricePoint, 0, len(sticks))
	for _, stick := range sticks {
		closePrice, _ := stick.Close.Float64()
		result = append(result, models.PricePoint{
			Date:  exchangeDay(stick.Timestamp, loc),
			Close: decimal.NewFromFloat(closePrice),
		})
	}
	return result, nil
}

// longportSymbol appends the US market suffix to bare tickers.
func longportSymbol(symbol string) string {
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".US"
}

// longportMarketZones maps market suffixes to exchange time zones.
var longportMarketZones = map[string]string{
	"US": "America/New_York",
	"HK": "Asia/Hong_Kong",
	"SH": "Asia/Shanghai",
	"SZ": "Asia/Shanghai",
	"SG": "Asia/Singapore",
}

// longportLocation is the exchange time zone of a suffixed symbol, UTC when
// the market is unknown.
func longportLocation(lpSymbol string) *time.Location {
	i := strings.LastIndex(lpSymbol, ".")
	if i < 0 {
		return time.UTC
	}
	name, ok := longportMarketZones[lpSymbol[i+1:]]
	if !ok {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
