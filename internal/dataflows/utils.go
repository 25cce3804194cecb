package dataflows

import (
	"fmt"
	"strings"
	"time"

	"github.com/dyike/TickerTalk/consts"
)

// ValidateSymbol checks if a stock symbol is valid format
func ValidateSymbol(symbol string) error {
	symbol = strings.TrimSpace(strings.ToUpper(symbol))
	if len(symbol) == 0 {
		return fmt.Errorf("symbol cannot be empty")
	}
	if len(symbol) > 12 {
		return fmt.Errorf("symbol too long: %s", symbol)
	}
	return nil
}

// NormalizeSymbol converts symbol to standard format
func NormalizeSymbol(symbol string) string {
	return strings.TrimSpace(strings.ToUpper(symbol))
}

// FormatDateRange creates a human-readable date range string
func FormatDateRange(start, end time.Time) string {
	return fmt.Sprintf("%s to %s",
		start.Format(consts.DateLayout),
		end.Format(consts.DateLayout))
}

// copyAlias sets bag[to] from bag[from] unless the provider already reports to.
func copyAlias(bag map[string]any, from, to string) {
	if _, exists := bag[to]; exists {
		return
	}
	if v, ok := bag[from]; ok {
		bag[to] = v
	}
}

// exchangeDay returns the calendar date of Unix time ts as seen in loc,
// expressed as UTC midnight.
func exchangeDay(ts int64, loc *time.Location) time.Time {
	t := time.Unix(ts, 0).In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
