package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/application/port"
	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

func seedImport(t *testing.T, repo port.ImportRepository, id string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entity.Import{ID: id, FileName: "f.xlsx"}, nil))
}

func sampleDocument() *entity.ProcessedDocument {
	return &entity.ProcessedDocument{
		ImportID: "imp-1",
		Company:  "Test Traders",
		ProcessedRows: []entity.CanonicalLedgerRow{
			{
				ID:            "row-a",
				SerialNumber:  1,
				InvoiceNumber: "INV-001",
				TaxableValue:  decimal.NewFromInt(1000),
				LedgerName:    "Purchases 18%",
				Slab18: &entity.SlabGroup{
					LedgerAmount: decimal.NewFromInt(1000),
					LedgerSide:   entity.SideDebit,
					IGSTAmount:   decimal.NewFromInt(180),
				},
				GrossAmount:   decimal.NewFromInt(1180),
				InvoiceAmount: decimal.NewFromInt(1180),
				TaxMode:       entity.TaxModeIGST,
			},
		},
		MismatchedRows: []entity.CanonicalLedgerRow{
			{
				ID:            "row-b",
				SerialNumber:  2,
				InvoiceNumber: "INV-002",
				TaxableValue:  decimal.NewFromInt(500),
				GrossAmount:   decimal.NewFromInt(535),
				InvoiceAmount: decimal.NewFromInt(535),
			},
		},
	}
}

func TestDocumentRepository_ReplaceAndGet(t *testing.T) {
	db, txManager := newTestDB(t)
	imports := NewImportRepository(db, txManager, zap.NewNop())
	store := NewDocumentRepository(db, txManager, zap.NewNop())
	ctx := context.Background()

	seedImport(t, imports, "imp-1")

	_, err := store.Replace(ctx, sampleDocument())
	require.NoError(t, err)

	got, err := store.Get(ctx, "imp-1")
	require.NoError(t, err)

	assert.Equal(t, "Test Traders", got.Company)
	require.Len(t, got.ProcessedRows, 1)
	require.Len(t, got.MismatchedRows, 1)

	matched := got.ProcessedRows[0]
	assert.Equal(t, "row-a", matched.ID)
	assert.Equal(t, "Purchases 18%", matched.LedgerName)
	assert.True(t, matched.TaxableValue.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, matched.Slab18)
	assert.True(t, matched.Slab18.IGSTAmount.Equal(decimal.NewFromInt(180)))
	assert.Equal(t, entity.TaxModeIGST, matched.TaxMode)

	mismatched := got.MismatchedRows[0]
	assert.Equal(t, "row-b", mismatched.ID)
	assert.Equal(t, "", mismatched.LedgerName)
	assert.False(t, mismatched.Matched())
}

func TestDocumentRepository_ReplaceSwapsRows(t *testing.T) {
	db, txManager := newTestDB(t)
	imports := NewImportRepository(db, txManager, zap.NewNop())
	store := NewDocumentRepository(db, txManager, zap.NewNop())
	ctx := context.Background()

	seedImport(t, imports, "imp-1")

	_, err := store.Replace(ctx, sampleDocument())
	require.NoError(t, err)

	// A second replace carries edited names and fresh identifiers; none
	// of the old rows survive.
	next := sampleDocument()
	next.ProcessedRows[0].ID = "row-c"
	next.ProcessedRows[0].LedgerName = "Raw Material"
	next.MismatchedRows = nil

	_, err = store.Replace(ctx, next)
	require.NoError(t, err)

	got, err := store.Get(ctx, "imp-1")
	require.NoError(t, err)
	require.Len(t, got.ProcessedRows, 1)
	assert.Empty(t, got.MismatchedRows)
	assert.Equal(t, "row-c", got.ProcessedRows[0].ID)
	assert.Equal(t, "Raw Material", got.ProcessedRows[0].LedgerName)
}

func TestDocumentRepository_GetNotFound(t *testing.T) {
	db, txManager := newTestDB(t)
	store := NewDocumentRepository(db, txManager, zap.NewNop())

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, port.ErrDocumentNotFound)
}
