package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

// XLSXReader parses a GSTR-2A xlsx extract into ordered raw invoice
// rows. Columns are keyed by the header row, so their order in the file
// does not matter.
type XLSXReader struct {
	logger *zap.Logger
}

// NewXLSXReader creates an XLSXReader.
func NewXLSXReader(logger *zap.Logger) *XLSXReader {
	return &XLSXReader{logger: logger}
}

// Read parses the first sheet of the workbook. The first non-empty row
// is taken as the header; every following non-empty row becomes one raw
// invoice row.
func (x *XLSXReader) Read(r io.Reader) ([]entity.RawInvoiceRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheetName := sheets[0]

	cells, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	var (
		header  []string
		rawRows []entity.RawInvoiceRow
	)
	for _, cellRow := range cells {
		if emptyRow(cellRow) {
			continue
		}
		if header == nil {
			header = make([]string, len(cellRow))
			for i, h := range cellRow {
				header[i] = strings.TrimSpace(h)
			}
			continue
		}

		raw := make(entity.RawInvoiceRow, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			value := ""
			if i < len(cellRow) {
				value = strings.TrimSpace(cellRow[i])
			}
			raw[name] = value
		}
		rawRows = append(rawRows, raw)
	}

	if header == nil {
		return nil, fmt.Errorf("workbook has no header row")
	}

	x.logger.Info("Parsed invoice extract",
		zap.String("sheet", sheetName),
		zap.Int("rows", len(rawRows)))

	return rawRows, nil
}

func emptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
