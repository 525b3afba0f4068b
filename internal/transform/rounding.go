package transform

import "github.com/shopspring/decimal"

var pointFive = decimal.NewFromFloat(0.5)

// Rounding reconciles fractional paise into a single-direction rounding
// entry. At most one of Debit/Credit is non-zero and InvoiceAmount is
// always integer-valued.
type Rounding struct {
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	InvoiceAmount decimal.Decimal
}

// AllocateRounding converts a non-negative gross amount into the final
// invoice amount plus at most one rounding entry. Fractions of half a
// rupee or more round up through a credit entry; smaller fractions round
// down through a debit entry.
func AllocateRounding(grossAmount decimal.Decimal) Rounding {
	floor := grossAmount.Floor()
	decimalPart := grossAmount.Sub(floor)

	r := Rounding{
		Debit:  decimal.Zero,
		Credit: decimal.Zero,
	}

	switch {
	case decimalPart.IsZero():
		r.InvoiceAmount = grossAmount
	case decimalPart.GreaterThanOrEqual(pointFive):
		ceil := grossAmount.Ceil()
		r.Credit = ceil.Sub(grossAmount).Round(2)
		r.InvoiceAmount = ceil
	default:
		r.Debit = decimalPart.Round(2)
		r.InvoiceAmount = floor
	}

	return r
}
