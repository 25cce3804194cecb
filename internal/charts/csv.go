package charts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dyike/TickerTalk/consts"
)

// WriteCSV writes the merged table with a Date column first. Missing cells
// are left empty.
func WriteCSV(w io.Writer, m *MergedSeries) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(m.Columns()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, row := range m.Rows() {
		record := make([]string, 0, len(row.Cells)+1)
		record = append(record, row.Date.Format(consts.DateLayout))
		for _, cell := range row.Cells {
			if !cell.Valid {
				record = append(record, "")
				continue
			}
			record = append(record, cell.Decimal.String())
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
