package charts

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyike/TickerTalk/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func series(symbol string, points map[string]float64) *models.PriceSeries {
	s := &models.PriceSeries{Symbol: symbol}
	for d, v := range points {
		s.Points = append(s.Points, models.PricePoint{Date: day(d), Close: decimal.NewFromFloat(v)})
	}
	return s
}

func dates(m *MergedSeries) []string {
	out := make([]string, len(m.Dates))
	for i, d := range m.Dates {
		out[i] = d.Format("2006-01-02")
	}
	return out
}

func TestMerge_OuterJoinOnDate(t *testing.T) {
	t.Parallel()

	nvda := series("NVDA", map[string]float64{
		"2024-03-01": 822.79,
		"2024-03-04": 852.37,
		"2024-03-05": 859.64,
	})
	msft := series("MSFT", map[string]float64{
		"2024-02-29": 413.64,
		"2024-03-04": 414.92,
		"2024-03-06": 402.09,
	})

	m := Merge(nvda, msft)

	assert.Equal(t, []string{"Date", "NVDA", "MSFT"}, m.Columns())
	assert.Equal(t, []string{"2024-02-29", "2024-03-01", "2024-03-04", "2024-03-05", "2024-03-06"}, dates(m))

	require.Len(t, m.Values["NVDA"], 5)
	require.Len(t, m.Values["MSFT"], 5)

	// no forward fill: NVDA has nothing on 02-29 or 03-06
	assert.False(t, m.Values["NVDA"][0].Valid)
	assert.True(t, m.Values["NVDA"][1].Valid)
	assert.False(t, m.Values["NVDA"][4].Valid)
	assert.False(t, m.Values["MSFT"][1].Valid)
	assert.False(t, m.Values["MSFT"][3].Valid)
	assert.True(t, m.Values["MSFT"][2].Decimal.Equal(decimal.NewFromFloat(414.92)))
}

func TestMerge_DuplicateSymbolIsOneColumn(t *testing.T) {
	t.Parallel()

	first := series("AAPL", map[string]float64{"2024-01-02": 185.64})
	second := series("AAPL", map[string]float64{"2024-01-02": 999, "2024-01-03": 184.25})

	m := Merge(first, second)

	assert.Equal(t, []string{"AAPL"}, m.Symbols)
	assert.Equal(t, []string{"2024-01-02", "2024-01-03"}, dates(m))
	assert.True(t, m.Values["AAPL"][0].Decimal.Equal(decimal.NewFromFloat(185.64)))
	assert.True(t, m.Values["AAPL"][1].Valid)
}

func TestMerge_ExactDatesOnly(t *testing.T) {
	t.Parallel()

	a := &models.PriceSeries{Symbol: "A", Points: []models.PricePoint{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: decimal.NewFromInt(1)},
	}}
	b := &models.PriceSeries{Symbol: "B", Points: []models.PricePoint{
		{Date: time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC), Close: decimal.NewFromInt(2)},
	}}

	m := Merge(a, b)
	assert.Len(t, m.Dates, 2)
}

func TestMerge_Rows(t *testing.T) {
	t.Parallel()

	m := Merge(
		series("NVDA", map[string]float64{"2024-03-01": 822.79}),
		series("MSFT", map[string]float64{"2024-03-04": 414.92}),
	)

	rows := m.Rows()
	require.Len(t, rows, 2)
	require.Len(t, rows[0].Cells, 2)
	assert.True(t, rows[0].Cells[0].Valid)
	assert.False(t, rows[0].Cells[1].Valid)
	assert.False(t, rows[1].Cells[0].Valid)
	assert.True(t, rows[1].Cells[1].Valid)
}

func TestMerge_Empty(t *testing.T) {
	t.Parallel()

	m := Merge()
	assert.True(t, m.Empty())
	assert.Empty(t, m.Dates)
	assert.Empty(t, m.Rows())

	m = Merge(&models.PriceSeries{Symbol: "IPO"})
	assert.False(t, m.Empty())
	assert.Empty(t, m.Dates)
}
