package pipeline

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"recovres/internal"
)

// WriteCSV writes a header row and one line per record. By default a field
// containing a comma is wrapped in double quotes and nothing else is escaped,
// which is the format downstream spreadsheets were built against. strict
// switches to RFC 4180 quoting.
func WriteCSV(w io.Writer, records []internal.Record, tracksCapacity, strict bool) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, internal.Columns(tracksCapacity))
	for _, r := range records {
		rows = append(rows, r.Values(tracksCapacity))
	}

	if strict {
		cw := csv.NewWriter(w)
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		return cw.Error()
	}

	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				bw.WriteByte(',')
			}
			if strings.Contains(field, ",") {
				field = `"` + field + `"`
			}
			bw.WriteString(field)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func ExportRecordsCSV(records []internal.Record, tracksCapacity, strict bool, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, records, tracksCapacity, strict); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// SplitCSVLine splits one line of WriteCSV output on commas outside quotes.
func SplitCSVLine(line string) []string {
	var (
		out     []string
		field   strings.Builder
		inQuote bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ',' && !inQuote:
			out = append(out, field.String())
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	return append(out, field.String())
}

func ExportRecordsXLSX(records []internal.Record, tracksCapacity bool, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range internal.Columns(tracksCapacity) {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, rec := range records {
		for j, value := range rec.Values(tracksCapacity) {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 32) // email
	_ = f.SetColWidth(sheet, "B", "C", 22)
	_ = f.SetColWidth(sheet, "D", "E", 40) // residence, organization

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
