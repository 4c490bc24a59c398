package sheet

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bulkgen/internal/logger"
)

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, logger.NewNop())

	path, err := w.Write(Assemble(sampleRows(t)), "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "amazon_bulk_upload_"))
	assert.True(t, strings.HasSuffix(path, ".csv"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7, "header plus six rows")
	assert.Equal(t, Columns, records[0])
	assert.Equal(t, "Campaign", records[1][1])
	assert.Equal(t, "10.00", records[1][15])
	assert.Equal(t, "", records[1][4], "blank cells stay blank")
}

func TestWriteExcel(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, logger.NewNop())

	path, err := w.Write(Assemble(sampleRows(t)), "xlsx")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".xlsx"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	header, err := f.GetCellValue(SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Product", header)

	entity, err := f.GetCellValue(SheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Campaign", entity)

	budget, err := f.GetCellValue(SheetName, "P2")
	require.NoError(t, err)
	assert.Equal(t, "10.00", budget)

	width, err := f.GetColWidth(SheetName, "A")
	require.NoError(t, err)
	assert.Greater(t, width, float64(len("Sponsored Products")), "columns sized to content")
}

func TestWriteFormatCaseInsensitive(t *testing.T) {
	w := NewWriter(t.TempDir(), logger.NewNop())
	path, err := w.Write(Assemble(sampleRows(t)), "XLSX")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".xlsx"))
}

func TestWriteUnsupportedFormat(t *testing.T) {
	w := NewWriter(t.TempDir(), logger.NewNop())
	_, err := w.Write(Assemble(sampleRows(t)), "pdf")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "pdf")
}

func TestWriteCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	w := NewWriter(dir, logger.NewNop())
	path, err := w.Write(Assemble(sampleRows(t)), "csv")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
}
