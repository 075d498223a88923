package archive

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/GoogleCloudPlatform/survey-data-archiver/internal/extract"
)

// EncodeCSV renders a table as CSV: header row, then data rows.
func EncodeCSV(table *extract.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(table.Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
