package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/mortgage-forecast/internal/forecast"
	"github.com/shopspring/decimal"
)

// CSVHeader returns the column labels of the export: the year and month
// followed by every exported record field.
func CSVHeader() []string {
	fields := forecast.ExportFields()
	header := make([]string, 0, len(fields)+2)
	header = append(header, "Year", "Month")
	for _, f := range fields {
		header = append(header, f.Label())
	}
	return header
}

// CSVRow formats one record. Amounts are rounded to whole currency units.
func CSVRow(r forecast.MonthRecord) []string {
	fields := forecast.ExportFields()
	row := make([]string, 0, len(fields)+2)
	row = append(row, strconv.Itoa(r.Year), strconv.Itoa(r.Month))
	for _, f := range fields {
		row = append(row, roundWhole(f.Value(r)))
	}
	return row
}

// WriteCSV writes the header and one row per record to w.
func WriteCSV(w io.Writer, records []forecast.MonthRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, r := range records {
		if err := writer.Write(CSVRow(r)); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func roundWhole(value float64) string {
	return decimal.NewFromFloat(value).Round(0).String()
}
