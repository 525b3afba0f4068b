package entity

import (
	"github.com/shopspring/decimal"
)

// Tax modes for a purchase invoice. IGST applies alone for inter-state
// supply; CGST and SGST apply together for intra-state supply.
const (
	TaxModeIGST     = "IGST"
	TaxModeCGSTSGST = "CGST_SGST"
)

// Ledger entry sides.
const (
	SideDebit  = "debit"
	SideCredit = "credit"
)

// SlabRates lists the statutory GST slab percentages in ascending order.
var SlabRates = []int{5, 12, 18, 28}

// RawInvoiceRow is one line of a GSTR-2A extract as imported: a bag of
// header-name -> cell-value pairs. Immutable once stored.
type RawInvoiceRow map[string]string

// SlabGroup holds the ledger-side values for the one slab a row resolved
// to. In IGST mode only IGSTAmount is set; in CGST_SGST mode CGSTAmount
// and SGSTAmount are set together.
type SlabGroup struct {
	LedgerAmount decimal.Decimal `json:"ledger_amount"`
	LedgerSide   string          `json:"ledger_side"`
	IGSTAmount   decimal.Decimal `json:"igst_amount"`
	CGSTAmount   decimal.Decimal `json:"cgst_amount"`
	SGSTAmount   decimal.Decimal `json:"sgst_amount"`
}

// CanonicalLedgerRow is the normalized accounting-ledger form of one raw
// invoice row. At most one of the four slab groups is non-nil; a row with
// no slab group is mismatched and carries best-effort computed amounts.
type CanonicalLedgerRow struct {
	ID             string          `json:"id"`
	SerialNumber   int             `json:"serial_number"`
	InvoiceDate    string          `json:"invoice_date"`
	VoucherType    string          `json:"voucher_type"`
	VoucherNumber  string          `json:"voucher_number"`
	InvoiceNumber  string          `json:"invoice_number"`
	InvoiceValue   decimal.Decimal `json:"invoice_value"`
	SupplierGSTIN  string          `json:"supplier_gstin"`
	SupplierName   string          `json:"supplier_name"`
	SupplierState  string          `json:"supplier_state"`
	PlaceOfSupply  string          `json:"place_of_supply"`
	FilingPeriod   string          `json:"filing_period"`
	SupplierAmount decimal.Decimal `json:"supplier_amount"`
	SupplierSide   string          `json:"supplier_side"`
	LedgerName     string          `json:"ledger_name"`
	TaxableValue   decimal.Decimal `json:"taxable_value"`

	Slab5  *SlabGroup `json:"slab_5,omitempty"`
	Slab12 *SlabGroup `json:"slab_12,omitempty"`
	Slab18 *SlabGroup `json:"slab_18,omitempty"`
	Slab28 *SlabGroup `json:"slab_28,omitempty"`

	GrossAmount    decimal.Decimal `json:"gross_amount"`
	RoundingDebit  decimal.Decimal `json:"rounding_debit"`
	RoundingCredit decimal.Decimal `json:"rounding_credit"`
	InvoiceAmount  decimal.Decimal `json:"invoice_amount"`
	TaxMode        string          `json:"tax_mode"`
}

// Slab returns the populated slab rate and group, or (0, nil) when the
// row did not resolve to any slab.
func (r *CanonicalLedgerRow) Slab() (int, *SlabGroup) {
	switch {
	case r.Slab5 != nil:
		return 5, r.Slab5
	case r.Slab12 != nil:
		return 12, r.Slab12
	case r.Slab18 != nil:
		return 18, r.Slab18
	case r.Slab28 != nil:
		return 28, r.Slab28
	}
	return 0, nil
}

// SetSlab attaches group under the given rate. Rates outside the
// statutory set are ignored.
func (r *CanonicalLedgerRow) SetSlab(rate int, group *SlabGroup) {
	switch rate {
	case 5:
		r.Slab5 = group
	case 12:
		r.Slab12 = group
	case 18:
		r.Slab18 = group
	case 28:
		r.Slab28 = group
	}
}

// Matched reports whether the row resolved to a tax slab.
func (r *CanonicalLedgerRow) Matched() bool {
	_, g := r.Slab()
	return g != nil
}

// ProcessedDocument is the persisted output of one transformation run
// for one import: the matched and mismatched row partitions. It is
// mutated only through ledger-name updates, never by re-running slab
// resolution in place.
type ProcessedDocument struct {
	ImportID       string               `json:"import_id"`
	Company        string               `json:"company"`
	ProcessedRows  []CanonicalLedgerRow `json:"processed_rows"`
	MismatchedRows []CanonicalLedgerRow `json:"mismatched_rows"`
}

// Rows returns the processed rows followed by the mismatched rows, the
// order operators see and edit them in.
func (d *ProcessedDocument) Rows() []CanonicalLedgerRow {
	rows := make([]CanonicalLedgerRow, 0, len(d.ProcessedRows)+len(d.MismatchedRows))
	rows = append(rows, d.ProcessedRows...)
	rows = append(rows, d.MismatchedRows...)
	return rows
}

// LedgerNameChange addresses one row of a processed document and carries
// its new ledger name. A nil LedgerName clears the name ("cleared", as
// opposed to "never set").
type LedgerNameChange struct {
	RowID      string  `json:"row_id"`
	RowIndex   int     `json:"row_index"`
	LedgerName *string `json:"ledger_name"`
}
