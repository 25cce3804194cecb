package dataflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dyike/TickerTalk/config"
	"github.com/dyike/TickerTalk/consts"
	"github.com/dyike/TickerTalk/internal/models"
)

var (
	ErrFetchFailed         = errors.New("market data fetch failed")
	ErrUnsupportedProvider = errors.New("unsupported market data provider")
)

// Provider is an external market-data source.
type Provider interface {
	Name() string
	// Info returns the attribute bag of a symbol, keyed by attribute name.
	Info(ctx context.Context, symbol string) (map[string]any, error)
	// History returns daily closing prices between start and end.
	History(ctx context.Context, symbol string, start, end time.Time) ([]models.PricePoint, error)
}

// NewProvider builds the provider selected by cfg.MarketDataProvider.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.MarketDataProvider {
	case consts.MarketDataYahoo, "":
		return NewYahooFinanceClient(), nil
	case consts.MarketDataFinnhub:
		return NewFinnhubClient(cfg.FinnhubAPIKey, consts.FinnhubBaseURL, cfg.HTTPTimeout), nil
	case consts.MarketDataLongport:
		return NewLongportClient(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.MarketDataProvider)
	}
}
