package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocateRounding(t *testing.T) {
	tests := []struct {
		name            string
		gross           string
		expectedDebit   string
		expectedCredit  string
		expectedInvoice string
	}{
		{
			name:            "whole amount needs no rounding",
			gross:           "1180",
			expectedDebit:   "0",
			expectedCredit:  "0",
			expectedInvoice: "1180",
		},
		{
			name:            "fraction below half rounds down via debit",
			gross:           "1050.32",
			expectedDebit:   "0.32",
			expectedCredit:  "0",
			expectedInvoice: "1050",
		},
		{
			name:            "fraction of exactly half rounds up via credit",
			gross:           "200.50",
			expectedDebit:   "0",
			expectedCredit:  "0.50",
			expectedInvoice: "201",
		},
		{
			name:            "fraction above half rounds up via credit",
			gross:           "99.75",
			expectedDebit:   "0",
			expectedCredit:  "0.25",
			expectedInvoice: "100",
		},
		{
			name:            "tiny fraction rounds down",
			gross:           "10.01",
			expectedDebit:   "0.01",
			expectedCredit:  "0",
			expectedInvoice: "10",
		},
		{
			name:            "zero gross",
			gross:           "0",
			expectedDebit:   "0",
			expectedCredit:  "0",
			expectedInvoice: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := AllocateRounding(d(tt.gross))
			assert.True(t, d(tt.expectedDebit).Equal(r.Debit), "debit: got %s", r.Debit)
			assert.True(t, d(tt.expectedCredit).Equal(r.Credit), "credit: got %s", r.Credit)
			assert.True(t, d(tt.expectedInvoice).Equal(r.InvoiceAmount), "invoice: got %s", r.InvoiceAmount)
		})
	}
}

func TestAllocateRounding_InvoiceAmountAlwaysIntegral(t *testing.T) {
	for _, gross := range []string{"0.01", "0.49", "0.50", "0.99", "1.00", "123.45", "123.55", "9999.99"} {
		r := AllocateRounding(d(gross))
		assert.True(t, r.InvoiceAmount.Equal(r.InvoiceAmount.Floor()),
			"invoice amount for gross %s is not integral: %s", gross, r.InvoiceAmount)
	}
}

func TestAllocateRounding_AtMostOneSideNonZero(t *testing.T) {
	for _, gross := range []string{"0", "10.00", "10.25", "10.50", "10.75"} {
		r := AllocateRounding(d(gross))
		bothNonZero := !r.Debit.IsZero() && !r.Credit.IsZero()
		assert.False(t, bothNonZero, "gross %s produced both rounding sides", gross)
	}
}
