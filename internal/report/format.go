package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/comps/internal/engine"
	"github.com/xuri/excelize/v2"
)

// Format is an output file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const sheetName = "Report"

// ParseFormat accepts "csv" or "xlsx" in any case. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want csv or xlsx)", s)
	}
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// FileName names the output for a report: "<report><year>" for a full
// year and "<report>Q<quarter>" otherwise.
func FileName(report string, quarter engine.Quarter, year int, format Format) string {
	if quarter == engine.FullYear {
		return report + strconv.Itoa(year) + format.Extension()
	}
	return report + "Q" + strconv.Itoa(int(quarter)) + format.Extension()
}

// Encode writes the table in format f.
func Encode(w io.Writer, t Table, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// WriteCSV writes the table as comma-separated values, quoting cells that
// contain commas or quotes.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	for _, row := range t {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the table to a single-sheet workbook.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	// The rules section ends at the first blank row; its values are text.
	inRules := true
	for i, row := range t {
		if len(row) == 0 {
			inRules = false
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			if inRules {
				values[j] = v
				continue
			}
			values[j] = xlsxValue(v)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// xlsxValue stores plain counts as numbers so spreadsheets can sum them.
// Digit strings with a leading zero stay text.
func xlsxValue(v string) any {
	if len(v) > 1 && v[0] == '0' {
		return v
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return v
}
