// Package charts merges per-symbol price histories and draws them.
package charts

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dyike/TickerTalk/internal/models"
)

// MergedSeries is the outer join on date of several price series. Values[s][i]
// is the close of symbol s on Dates[i]; cells without data are not Valid.
type MergedSeries struct {
	Dates   []time.Time
	Symbols []string
	Values  map[string][]decimal.NullDecimal
}

// Row is one date of a MergedSeries with a cell per symbol, in Symbols order.
type Row struct {
	Date  time.Time
	Cells []decimal.NullDecimal
}

// Merge outer-joins series on exact date. Symbols keep their first-appearance
// order; a symbol given twice is folded into one column, earlier values win.
func Merge(series ...*models.PriceSeries) *MergedSeries {
	m := &MergedSeries{Values: make(map[string][]decimal.NullDecimal)}

	bySymbol := make(map[string]map[time.Time]decimal.Decimal)
	dateSet := make(map[time.Time]struct{})

	for _, s := range series {
		if s == nil {
			continue
		}
		prices, ok := bySymbol[s.Symbol]
		if !ok {
			prices = make(map[time.Time]decimal.Decimal, len(s.Points))
			bySymbol[s.Symbol] = prices
			m.Symbols = append(m.Symbols, s.Symbol)
		}
		for _, p := range s.Points {
			key := p.Date.UTC()
			if _, exists := prices[key]; !exists {
				prices[key] = p.Close
			}
			dateSet[key] = struct{}{}
		}
	}

	m.Dates = make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		m.Dates = append(m.Dates, d)
	}
	sort.Slice(m.Dates, func(i, j int) bool { return m.Dates[i].Before(m.Dates[j]) })

	for _, symbol := range m.Symbols {
		prices := bySymbol[symbol]
		column := make([]decimal.NullDecimal, len(m.Dates))
		for i, d := range m.Dates {
			if v, ok := prices[d]; ok {
				column[i] = decimal.NullDecimal{Decimal: v, Valid: true}
			}
		}
		m.Values[symbol] = column
	}

	return m
}

// Columns returns the table header: "Date" followed by one column per symbol.
func (m *MergedSeries) Columns() []string {
	return append([]string{"Date"}, m.Symbols...)
}

func (m *MergedSeries) Rows() []Row {
	rows := make([]Row, len(m.Dates))
	for i, d := range m.Dates {
		cells := make([]decimal.NullDecimal, len(m.Symbols))
		for j, symbol := range m.Symbols {
			cells[j] = m.Values[symbol][i]
		}
		rows[i] = Row{Date: d, Cells: cells}
	}
	return rows
}

func (m *MergedSeries) Empty() bool {
	return len(m.Symbols) == 0
}
