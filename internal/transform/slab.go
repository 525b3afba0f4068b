package transform

import (
	"github.com/shopspring/decimal"

	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

// slabTolerance is the absolute tolerance, in percentage points, between
// the computed tax percentage and a slab's nominal rate. Behavior at the
// boundary is part of the contract; do not tune.
var slabTolerance = decimal.NewFromFloat(0.05)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// SlabMatch is the outcome of resolving a row against the slab table.
type SlabMatch struct {
	Rate int
	Mode string
}

// ResolveSlab decides which statutory slab a row belongs to and which
// tax mode applies. Inputs are the row's taxable value and its raw
// integrated (IGST) and central (CGST) tax amounts. A zero taxable value
// never matches. Slabs are evaluated in ascending rate order and the
// first within tolerance wins.
func ResolveSlab(taxableValue, integratedTax, centralTax decimal.Decimal) *SlabMatch {
	if taxableValue.IsZero() {
		return nil
	}

	switch {
	case integratedTax.IsPositive():
		percent := integratedTax.Div(taxableValue).Mul(hundred)
		for _, rate := range entity.SlabRates {
			nominal := decimal.NewFromInt(int64(rate))
			if percent.Sub(nominal).Abs().LessThanOrEqual(slabTolerance) {
				return &SlabMatch{Rate: rate, Mode: entity.TaxModeIGST}
			}
		}
	case centralTax.IsPositive():
		// Intra-state: CGST carries half the nominal slab rate.
		percent := centralTax.Div(taxableValue).Mul(hundred)
		for _, rate := range entity.SlabRates {
			half := decimal.NewFromInt(int64(rate)).Div(two)
			if percent.Sub(half).Abs().LessThanOrEqual(slabTolerance) {
				return &SlabMatch{Rate: rate, Mode: entity.TaxModeCGSTSGST}
			}
		}
	}

	return nil
}
