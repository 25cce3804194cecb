package dataflows

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/dyike/TickerTalk/consts"
	"github.com/dyike/TickerTalk/internal/models"
)

// StockData answers the two lookups the chat tools need on top of a Provider.
type StockData struct {
	provider Provider
}

func NewStockData(provider Provider) *StockData {
	return &StockData{provider: provider}
}

func (s *StockData) ProviderName() string {
	return s.provider.Name()
}

// FetchAttribute looks up one field of the symbol's attribute bag. A key the
// provider does not report is not an error: the returned value has Found=false
// and renders as "Invalid key".
func (s *StockData) FetchAttribute(ctx context.Context, symbol, key string) (models.AttributeValue, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return models.AttributeValue{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	symbol = NormalizeSymbol(symbol)

	log.Printf("[StockData] Fetching stock info for symbol: %s, key: %s", symbol, key)

	bag, err := s.provider.Info(ctx, symbol)
	if err != nil {
		return models.AttributeValue{}, fmt.Errorf("%w: %s info for %s: %w", ErrFetchFailed, s.provider.Name(), symbol, err)
	}

	value, ok := bag[key]
	return models.AttributeValue{
		Symbol: symbol,
		Key:    key,
		Value:  value,
		Found:  ok,
	}, nil
}

// FetchHistory returns the closing prices of symbol between start and end,
// oldest first. A zero start means all available history.
func (s *StockData) FetchHistory(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	symbol = NormalizeSymbol(symbol)

	if start.IsZero() {
		start, _ = time.Parse(consts.DateLayout, consts.DefaultHistoryStart)
	}

	log.Printf("[StockData] Fetching historical prices for %s (%s)", symbol, FormatDateRange(start, end))

	points, err := s.provider.History(ctx, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %s history for %s: %w", ErrFetchFailed, s.provider.Name(), symbol, err)
	}

	first, last := dayOf(start), dayOf(end)
	kept := make([]models.PricePoint, 0, len(points))
	for _, p := range points {
		d := dayOf(p.Date)
		if d.Before(first) || d.After(last) {
			continue
		}
		kept = append(kept, models.PricePoint{Date: d, Close: p.Close})
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Date.Before(kept[j].Date)
	})

	return &models.PriceSeries{Symbol: symbol, Points: kept}, nil
}

// dayOf truncates t to its UTC calendar date.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
