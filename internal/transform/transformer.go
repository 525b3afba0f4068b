package transform

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

// Transformer turns a full raw extract into the matched and mismatched
// partitions of a processed document. It is a pure transform over the
// row set; persistence belongs to the caller.
type Transformer struct {
	logger *zap.Logger
}

// NewTransformer creates a Transformer.
func NewTransformer(logger *zap.Logger) *Transformer {
	return &Transformer{logger: logger}
}

// Transform maps, slab-resolves and rounds every raw row, partitioning
// the results. Rows that resolve to no slab go to the mismatched set
// with best-effort computed amounts; transformation never fails for bad
// individual rows.
func (t *Transformer) Transform(rawRows []entity.RawInvoiceRow, states StateCodeTable, company string) *entity.ProcessedDocument {
	mapper := NewRowMapper(states)

	doc := &entity.ProcessedDocument{
		Company:        company,
		ProcessedRows:  []entity.CanonicalLedgerRow{},
		MismatchedRows: []entity.CanonicalLedgerRow{},
	}

	for i, raw := range rawRows {
		row := t.transformRow(mapper, raw, i)
		if row.Matched() {
			doc.ProcessedRows = append(doc.ProcessedRows, row)
		} else {
			doc.MismatchedRows = append(doc.MismatchedRows, row)
		}
	}

	t.logger.Info("Transformed invoice extract",
		zap.Int("total_rows", len(rawRows)),
		zap.Int("matched", len(doc.ProcessedRows)),
		zap.Int("mismatched", len(doc.MismatchedRows)))

	return doc
}

func (t *Transformer) transformRow(mapper *RowMapper, raw entity.RawInvoiceRow, index int) entity.CanonicalLedgerRow {
	row := mapper.Map(raw, index)
	taxable, integrated, central, state := mapper.Amounts(raw)

	match := ResolveSlab(taxable, integrated, central)
	if match != nil {
		group := &entity.SlabGroup{
			LedgerAmount: taxable.Round(2),
			LedgerSide:   entity.SideDebit,
		}
		switch match.Mode {
		case entity.TaxModeIGST:
			group.IGSTAmount = integrated.Round(2)
		case entity.TaxModeCGSTSGST:
			group.CGSTAmount = central.Round(2)
			group.SGSTAmount = state.Round(2)
		}
		row.SetSlab(match.Rate, group)
		row.TaxMode = match.Mode
	}

	// Sum the tax fields actually populated on the row; when that comes
	// to zero (no slab, or a matched slab whose figures were blank) fall
	// back to the raw extract totals.
	parsedTaxes := populatedTaxes(&row)
	if parsedTaxes.IsZero() {
		parsedTaxes = integrated.Add(central).Add(state)
	}

	row.GrossAmount = taxable.Add(parsedTaxes).Round(2)

	rounding := AllocateRounding(row.GrossAmount)
	row.RoundingDebit = rounding.Debit
	row.RoundingCredit = rounding.Credit
	row.InvoiceAmount = rounding.InvoiceAmount

	row.SupplierAmount = rounding.InvoiceAmount
	row.SupplierSide = entity.SideCredit

	return row
}

func populatedTaxes(row *entity.CanonicalLedgerRow) decimal.Decimal {
	_, group := row.Slab()
	if group == nil {
		return decimal.Zero
	}
	return group.IGSTAmount.Add(group.CGSTAmount).Add(group.SGSTAmount)
}
