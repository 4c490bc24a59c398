package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"bulkgen/internal/logger"
)

// ErrUnsupportedFormat is returned for export formats other than xlsx and
// csv. Unlike validation failures this is a hard error.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// SheetName is the worksheet the bulk rows land on.
const SheetName = "Sponsored Products"

const timestampLayout = "20060102_150405"

// Writer saves assembled tables under the output directory with timestamped
// file names.
type Writer struct {
	dir string
	log *logger.Logger
}

func NewWriter(dir string, log *logger.Logger) *Writer {
	return &Writer{dir: dir, log: log}
}

// Write exports the table in the requested format and returns the written
// path. Format is matched case-insensitively.
func (w *Writer) Write(t *Table, format string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	timestamp := time.Now().Format(timestampLayout)
	switch strings.ToLower(format) {
	case "xlsx":
		return w.writeExcel(t, timestamp)
	case "csv":
		return w.writeCSV(t, timestamp)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (w *Writer) writeExcel(t *Table, timestamp string) (string, error) {
	path := filepath.Join(w.dir, fmt.Sprintf("amazon_bulk_upload_%s.xlsx", timestamp))

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return "", fmt.Errorf("failed to name worksheet: %w", err)
	}

	widths := make([]int, len(Columns))
	for i, col := range Columns {
		addr, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return "", fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, addr, col); err != nil {
			return "", fmt.Errorf("failed to write header cell: %w", err)
		}
		widths[i] = len(col)
	}

	for rowIdx, record := range t.Records() {
		for colIdx, value := range record {
			if value == "" {
				continue
			}
			addr, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return "", fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(SheetName, addr, value); err != nil {
				return "", fmt.Errorf("failed to write cell: %w", err)
			}
			if len(value) > widths[colIdx] {
				widths[colIdx] = len(value)
			}
		}
	}

	// Column widths track the longest value plus padding, matching the
	// sheet layout sellers are used to.
	for i := range Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return "", fmt.Errorf("failed to resolve column name: %w", err)
		}
		if err := f.SetColWidth(SheetName, name, name, float64(widths[i]+2)); err != nil {
			return "", fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save excel file: %w", err)
	}
	w.log.Info("Saved Excel file: %s", path)
	return path, nil
}

func (w *Writer) writeCSV(t *Table, timestamp string) (string, error) {
	path := filepath.Join(w.dir, fmt.Sprintf("amazon_bulk_upload_%s.csv", timestamp))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(Columns); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, record := range t.Records() {
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv file: %w", err)
	}
	w.log.Info("Saved CSV file: %s", path)
	return path, nil
}
