package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

func testStates() StateCodeTable {
	return StateCodeTable{
		"27": "Maharashtra",
		"29": "Karnataka",
		"33": "Tamil Nadu",
	}
}

func TestRowMapper_Map(t *testing.T) {
	mapper := NewRowMapper(testStates())

	raw := entity.RawInvoiceRow{
		"GSTIN of supplier":                "27AAACB1234C1Z5",
		"Trade/Legal name of the Supplier": "Bharat Traders",
		"Invoice number":                   "INV-042",
		"Invoice Date":                     "15/04/2025",
		"Invoice Value":                    "1180.00",
		"Taxable Value":                    "1000.00",
		"Place of supply":                  "27-Maharashtra",
		"GSTR-1/IFF/GSTR-5 Filing Period":  "Apr-25",
	}

	row := mapper.Map(raw, 0)

	assert.Equal(t, 1, row.SerialNumber)
	assert.Equal(t, "15-04-2025", row.InvoiceDate)
	assert.Equal(t, "Purchase", row.VoucherType)
	assert.Equal(t, "INV-042", row.VoucherNumber)
	assert.Equal(t, "INV-042", row.InvoiceNumber)
	assert.Equal(t, "27AAACB1234C1Z5", row.SupplierGSTIN)
	assert.Equal(t, "Bharat Traders", row.SupplierName)
	assert.Equal(t, "Maharashtra", row.SupplierState)
	assert.Equal(t, "27-Maharashtra", row.PlaceOfSupply)
	assert.Equal(t, "Apr-25", row.FilingPeriod)
	assert.True(t, d("1000").Equal(row.TaxableValue))
	assert.True(t, d("1180").Equal(row.InvoiceValue))
}

func TestRowMapper_AlternateColumnNames(t *testing.T) {
	mapper := NewRowMapper(testStates())

	raw := entity.RawInvoiceRow{
		"GSTIN":         "29BBBCD5678E1Z2",
		"Trade Name":    "Mysore Mills",
		"Invoice No":    "77",
		"Invoice date":  "01-01-2025",
		"Taxable value": "500",
	}

	row := mapper.Map(raw, 4)

	assert.Equal(t, 5, row.SerialNumber)
	assert.Equal(t, "29BBBCD5678E1Z2", row.SupplierGSTIN)
	assert.Equal(t, "Mysore Mills", row.SupplierName)
	assert.Equal(t, "Karnataka", row.SupplierState)
	assert.Equal(t, "77", row.InvoiceNumber)
	assert.Equal(t, "01-01-2025", row.InvoiceDate)
	assert.True(t, d("500").Equal(row.TaxableValue))
}

func TestRowMapper_MissingAndMalformedValues(t *testing.T) {
	mapper := NewRowMapper(testStates())

	raw := entity.RawInvoiceRow{
		"GSTIN of supplier": "9",
		"Taxable Value":     "not-a-number",
		"Invoice Date":      "someday",
	}

	row := mapper.Map(raw, 0)

	// Short GSTIN cannot carry a state code.
	assert.Equal(t, "", row.SupplierState)
	// Malformed amounts degrade to zero, never fail the row.
	assert.True(t, row.TaxableValue.IsZero())
	// Unparseable dates pass through unchanged.
	assert.Equal(t, "someday", row.InvoiceDate)
	assert.Equal(t, "", row.SupplierName)
	assert.Equal(t, "", row.InvoiceNumber)
}

func TestRowMapper_Amounts(t *testing.T) {
	mapper := NewRowMapper(testStates())

	raw := entity.RawInvoiceRow{
		"Taxable Value":  "1,000.50",
		"Integrated Tax": "180.09",
		"Central Tax":    "",
		"State/UT Tax":   "junk",
	}

	taxable, integrated, central, state := mapper.Amounts(raw)

	assert.True(t, d("1000.50").Equal(taxable))
	assert.True(t, d("180.09").Equal(integrated))
	assert.True(t, central.IsZero())
	assert.True(t, state.IsZero())
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "slash separated", in: "15/04/2025", expected: "15-04-2025"},
		{name: "already normalized", in: "15-04-2025", expected: "15-04-2025"},
		{name: "iso format", in: "2025-04-15", expected: "15-04-2025"},
		{name: "short month name", in: "15-Apr-25", expected: "15-04-2025"},
		{name: "blank", in: "  ", expected: ""},
		{name: "garbage passes through", in: "n/a", expected: "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeDate(tt.in))
		})
	}
}
