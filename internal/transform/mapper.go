package transform

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

// Source column names as they appear across GSTR-2A extract variants.
// Each canonical field falls back through its list in order.
var (
	gstinColumns = []string{"GSTIN of supplier", "GSTIN", "Supplier GSTIN"}
	tradeColumns = []string{"Trade/Legal name of the Supplier", "Trade/Legal name", "Trade Name", "Supplier Name"}
	invNoColumns = []string{"Invoice number", "Invoice Number", "Invoice No", "Invoice No."}
	invDtColumns = []string{"Invoice Date", "Invoice date"}
	invVlColumns = []string{"Invoice Value", "Invoice Value (₹)", "Invoice value"}
	taxblColumns = []string{"Taxable Value", "Taxable Value (₹)", "Taxable value"}
	igstColumns  = []string{"Integrated Tax", "Integrated Tax (₹)", "IGST", "IGST Amount"}
	cgstColumns  = []string{"Central Tax", "Central Tax (₹)", "CGST", "CGST Amount"}
	sgstColumns  = []string{"State/UT Tax", "State/UT Tax (₹)", "State Tax", "SGST", "SGST Amount"}
	posColumns   = []string{"Place of supply", "Place of Supply"}
	fpColumns    = []string{"GSTR-1/IFF/GSTR-5 Filing Period", "GSTR-1/IFF/GSTR-5 Period", "Filing Period", "Tax Period"}
)

// dateLayouts are the calendar formats observed in extracts, tried in
// order. Output is always normalized to ledgerDateLayout.
var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
	"02-Jan-06",
	"02-Jan-2006",
}

const ledgerDateLayout = "02-01-2006"

const voucherTypePurchase = "Purchase"

// RowMapper copies and reformats raw extract fields into the canonical
// ledger row shell. It carries no slab logic.
type RowMapper struct {
	states StateCodeTable
}

// NewRowMapper creates a RowMapper resolving supplier states through the
// given table.
func NewRowMapper(states StateCodeTable) *RowMapper {
	return &RowMapper{states: states}
}

// Map builds the canonical shell for one raw row. index is the row's
// zero-based position in the extract. Unmapped canonical fields stay
// empty; amount fields of the shell are parsed leniently (non-numeric
// cells become zero).
func (m *RowMapper) Map(raw entity.RawInvoiceRow, index int) entity.CanonicalLedgerRow {
	gstin := fieldValue(raw, gstinColumns...)
	invoiceNumber := fieldValue(raw, invNoColumns...)

	row := entity.CanonicalLedgerRow{
		SerialNumber:  index + 1,
		InvoiceDate:   normalizeDate(fieldValue(raw, invDtColumns...)),
		VoucherType:   voucherTypePurchase,
		VoucherNumber: invoiceNumber,
		InvoiceNumber: invoiceNumber,
		InvoiceValue:  amountValue(raw, invVlColumns...),
		SupplierGSTIN: gstin,
		SupplierName:  fieldValue(raw, tradeColumns...),
		SupplierState: m.stateFromGSTIN(gstin),
		PlaceOfSupply: fieldValue(raw, posColumns...),
		FilingPeriod:  fieldValue(raw, fpColumns...),
		TaxableValue:  amountValue(raw, taxblColumns...),
	}
	return row
}

// Amounts pulls the raw tax figures the transformer needs alongside the
// shell.
func (m *RowMapper) Amounts(raw entity.RawInvoiceRow) (taxable, integrated, central, state decimal.Decimal) {
	taxable = amountValue(raw, taxblColumns...)
	integrated = amountValue(raw, igstColumns...)
	central = amountValue(raw, cgstColumns...)
	state = amountValue(raw, sgstColumns...)
	return taxable, integrated, central, state
}

func (m *RowMapper) stateFromGSTIN(gstin string) string {
	if len(gstin) < 2 {
		return ""
	}
	return m.states.Lookup(gstin[:2])
}

// fieldValue returns the first non-blank value among the candidate
// column names, or the empty string.
func fieldValue(raw entity.RawInvoiceRow, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(raw[name]); v != "" {
			return v
		}
	}
	return ""
}

// amountValue parses an amount cell leniently: blank or non-numeric
// values become zero rather than failing the row.
func amountValue(raw entity.RawInvoiceRow, names ...string) decimal.Decimal {
	return parseAmount(fieldValue(raw, names...))
}

func parseAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// normalizeDate reformats a raw date cell to the fixed ledger layout,
// passing unparseable values through unchanged.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ledgerDateLayout)
		}
	}
	return s
}
