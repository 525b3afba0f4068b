package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestXLSXReader_Read(t *testing.T) {
	content := workbookBytes(t, [][]interface{}{
		{"GSTIN of supplier", "Invoice number", "Taxable Value", "Integrated Tax"},
		{"27AABCU9603R1ZM", "INV-001", "1000.00", "180.00"},
		{"", "INV-002", "500.00", ""},
	})

	reader := NewXLSXReader(zap.NewNop())
	rows, err := reader.Read(bytes.NewReader(content))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "27AABCU9603R1ZM", rows[0]["GSTIN of supplier"])
	assert.Equal(t, "INV-001", rows[0]["Invoice number"])
	assert.Equal(t, "180.00", rows[0]["Integrated Tax"])
	assert.Equal(t, "", rows[1]["GSTIN of supplier"])
	assert.Equal(t, "500.00", rows[1]["Taxable Value"])
}

func TestXLSXReader_SkipsLeadingAndEmptyRows(t *testing.T) {
	content := workbookBytes(t, [][]interface{}{
		{"", "", ""},
		{"Invoice number", "Taxable Value"},
		{"INV-001", "100"},
		{"", ""},
		{"INV-002", "200"},
	})

	reader := NewXLSXReader(zap.NewNop())
	rows, err := reader.Read(bytes.NewReader(content))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "INV-001", rows[0]["Invoice number"])
	assert.Equal(t, "INV-002", rows[1]["Invoice number"])
}

func TestXLSXReader_TrimsHeaderAndCells(t *testing.T) {
	content := workbookBytes(t, [][]interface{}{
		{"  Invoice number  ", " Taxable Value "},
		{" INV-001 ", " 100 "},
	})

	reader := NewXLSXReader(zap.NewNop())
	rows, err := reader.Read(bytes.NewReader(content))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "INV-001", rows[0]["Invoice number"])
	assert.Equal(t, "100", rows[0]["Taxable Value"])
}

func TestXLSXReader_NotAWorkbook(t *testing.T) {
	reader := NewXLSXReader(zap.NewNop())

	_, err := reader.Read(strings.NewReader("this is not xlsx content"))
	require.Error(t, err)
}

func TestXLSXReader_HeaderOnly(t *testing.T) {
	content := workbookBytes(t, [][]interface{}{
		{"Invoice number", "Taxable Value"},
	})

	reader := NewXLSXReader(zap.NewNop())
	rows, err := reader.Read(bytes.NewReader(content))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
