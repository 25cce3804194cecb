package charts

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"

	"github.com/dyike/TickerTalk/consts"
	"github.com/dyike/TickerTalk/internal/models"
)

// missingValue is how echarts marks an empty cell; the line is not bridged.
const missingValue = "-"

// HTMLRenderer writes one standalone HTML page per chart into Dir, and the
// merged price table next to it as CSV.
type HTMLRenderer struct {
	Dir string

	newID func() string
}

func NewHTMLRenderer(dir string) *HTMLRenderer {
	return &HTMLRenderer{Dir: dir, newID: uuid.NewString}
}

// Render merges series and writes the price chart. It returns the file path.
func (r *HTMLRenderer) Render(ctx context.Context, series []*models.PriceSeries) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	merged := Merge(series...)
	if merged.Empty() {
		return "", fmt.Errorf("no price series to render")
	}

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}

	newID := r.newID
	if newID == nil {
		newID = uuid.NewString
	}
	id := newID()
	path := filepath.Join(r.Dir, id+".html")
	csvPath := filepath.Join(r.Dir, id+".csv")

	err := writeFile(path, func(w io.Writer) error {
		if err := NewPriceChart(merged).Render(w); err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if err := writeFile(csvPath, func(w io.Writer) error { return WriteCSV(w, merged) }); err != nil {
		_ = os.Remove(path)
		return "", err
	}

	log.Printf("[Charts] Rendered %s for %s", path, strings.Join(merged.Symbols, ", "))
	return path, nil
}

// writeFile creates path and fills it with write. On any failure, including
// the close, the partial file is removed.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Title is the chart heading for a merged table.
func Title(m *MergedSeries) string {
	return "Stock Price Over Time: " + strings.Join(m.Symbols, ", ")
}

// NewPriceChart builds a line-with-markers trace per symbol on a shared date axis.
func NewPriceChart(m *MergedSeries) *echarts.Line {
	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			PageTitle:       "Stock Price Over Time",
			Width:           "1200px",
			Height:          "600px",
			BackgroundColor: "gray",
		}),
		echarts.WithTitleOpts(opts.Title{
			Title:    Title(m),
			Subtitle: "Stock Symbol",
		}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		echarts.WithXAxisOpts(opts.XAxis{
			Name:        "Date",
			SplitNumber: 20,
			AxisLabel:   &opts.AxisLabel{Rotate: 45},
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Name:      "Stock Price (USD)",
			AxisLabel: &opts.AxisLabel{Formatter: "${value}"},
		}),
	)

	dates := make([]string, len(m.Dates))
	for i, d := range m.Dates {
		dates[i] = d.Format(consts.DateLayout)
	}
	line.SetXAxis(dates)

	for _, symbol := range m.Symbols {
		column := m.Values[symbol]
		data := make([]opts.LineData, len(column))
		for i, cell := range column {
			if !cell.Valid {
				data[i] = opts.LineData{Value: missingValue}
				continue
			}
			data[i] = opts.LineData{Value: cell.Decimal.Round(2).InexactFloat64()}
		}
		line.AddSeries(symbol, data, echarts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	}

	return line
}
