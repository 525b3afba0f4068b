package export

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

// Row sets an export can be derived for.
const (
	SetAll        = "all"
	SetMatched    = "matched"
	SetMismatched = "mismatched"
)

const sheetName = "Ledger"

// header is the fixed canonical column layout of an export artifact.
var header = buildHeader()

func buildHeader() []string {
	cols := []string{
		"Sr. No", "Date", "Voucher Type", "Voucher Number", "Invoice Number",
		"Invoice Value", "Supplier GSTIN", "Supplier Name", "Supplier State",
		"Place of Supply", "Filing Period", "Supplier Amount", "Supplier Side",
		"Ledger Name", "Taxable Value",
	}
	for _, rate := range entity.SlabRates {
		cols = append(cols,
			fmt.Sprintf("Ledger Amount %d%%", rate),
			fmt.Sprintf("Ledger Side %d%%", rate),
			fmt.Sprintf("IGST Rate %d%%", rate),
			fmt.Sprintf("CGST Rate %d%%", rate),
			fmt.Sprintf("SGST Rate %d%%", rate),
		)
	}
	return append(cols,
		"Gross Amount", "Rounding Debit", "Rounding Credit", "Invoice Amount", "Mode")
}

// ExcelWriter derives xlsx export artifacts from a processed document.
type ExcelWriter struct {
	logger *zap.Logger
}

// NewExcelWriter creates an ExcelWriter.
func NewExcelWriter(logger *zap.Logger) *ExcelWriter {
	return &ExcelWriter{logger: logger}
}

// Write renders the requested row set of a document as an xlsx workbook.
func (w *ExcelWriter) Write(doc *entity.ProcessedDocument, set string) ([]byte, error) {
	rows, err := selectRows(doc, set)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell name for row %d: %w", i, err)
		}
		values := flatten(&rows[i])
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	w.logger.Info("Derived export artifact",
		zap.String("import_id", doc.ImportID),
		zap.String("set", set),
		zap.Int("rows", len(rows)))

	return buf.Bytes(), nil
}

func selectRows(doc *entity.ProcessedDocument, set string) ([]entity.CanonicalLedgerRow, error) {
	switch set {
	case SetAll:
		return doc.Rows(), nil
	case SetMatched:
		return doc.ProcessedRows, nil
	case SetMismatched:
		return doc.MismatchedRows, nil
	}
	return nil, fmt.Errorf("unknown export set %q", set)
}

// flatten lays one canonical row out in header order. Slab columns of
// non-selected slabs stay empty, never zero.
func flatten(row *entity.CanonicalLedgerRow) []interface{} {
	values := []interface{}{
		row.SerialNumber,
		row.InvoiceDate,
		row.VoucherType,
		row.VoucherNumber,
		row.InvoiceNumber,
		amount(row.InvoiceValue),
		row.SupplierGSTIN,
		row.SupplierName,
		row.SupplierState,
		row.PlaceOfSupply,
		row.FilingPeriod,
		amount(row.SupplierAmount),
		row.SupplierSide,
		row.LedgerName,
		amount(row.TaxableValue),
	}

	selected, group := row.Slab()
	for _, rate := range entity.SlabRates {
		if rate != selected || group == nil {
			values = append(values, "", "", "", "", "")
			continue
		}
		values = append(values,
			amount(group.LedgerAmount),
			group.LedgerSide,
			taxAmount(group.IGSTAmount),
			taxAmount(group.CGSTAmount),
			taxAmount(group.SGSTAmount),
		)
	}

	return append(values,
		amount(row.GrossAmount),
		roundingAmount(row.RoundingDebit),
		roundingAmount(row.RoundingCredit),
		amount(row.InvoiceAmount),
		row.TaxMode,
	)
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// taxAmount renders the populated tax component, leaving the unused
// components of the selected slab empty.
func taxAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}

// roundingAmount leaves the inactive rounding side empty.
func roundingAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}
