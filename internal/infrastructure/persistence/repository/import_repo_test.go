package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/application/port"
	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

func TestImportRepository_CreateAndGet(t *testing.T) {
	db, txManager := newTestDB(t)
	repo := NewImportRepository(db, txManager, zap.NewNop())
	ctx := context.Background()

	imp := &entity.Import{ID: "imp-1", FileName: "april.xlsx", RowCount: 2}
	rows := []entity.RawInvoiceRow{
		{"Invoice number": "INV-001", "Taxable Value": "1000.00"},
		{"Invoice number": "INV-002", "Taxable Value": "500.00"},
	}
	require.NoError(t, repo.Create(ctx, imp, rows))

	got, err := repo.Get(ctx, "imp-1")
	require.NoError(t, err)
	assert.Equal(t, "april.xlsx", got.FileName)
	assert.Equal(t, 2, got.RowCount)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestImportRepository_GetNotFound(t *testing.T) {
	db, txManager := newTestDB(t)
	repo := NewImportRepository(db, txManager, zap.NewNop())

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, port.ErrImportNotFound)
}

func TestImportRepository_RowsPreserveOrder(t *testing.T) {
	db, txManager := newTestDB(t)
	repo := NewImportRepository(db, txManager, zap.NewNop())
	ctx := context.Background()

	var rows []entity.RawInvoiceRow
	for _, inv := range []string{"INV-003", "INV-001", "INV-002"} {
		rows = append(rows, entity.RawInvoiceRow{"Invoice number": inv})
	}
	require.NoError(t, repo.Create(ctx, &entity.Import{ID: "imp-1", FileName: "f.xlsx", RowCount: 3}, rows))

	got, err := repo.Rows(ctx, "imp-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "INV-003", got[0]["Invoice number"])
	assert.Equal(t, "INV-001", got[1]["Invoice number"])
	assert.Equal(t, "INV-002", got[2]["Invoice number"])
}

func TestImportRepository_RowsOfMissingImport(t *testing.T) {
	db, txManager := newTestDB(t)
	repo := NewImportRepository(db, txManager, zap.NewNop())

	_, err := repo.Rows(context.Background(), "missing")
	assert.ErrorIs(t, err, port.ErrImportNotFound)
}

func TestImportRepository_List(t *testing.T) {
	db, txManager := newTestDB(t)
	repo := NewImportRepository(db, txManager, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Import{ID: "imp-1", FileName: "a.xlsx"}, nil))
	require.NoError(t, repo.Create(ctx, &entity.Import{ID: "imp-2", FileName: "b.xlsx"}, nil))

	imports, err := repo.List(ctx, 20, 0)
	require.NoError(t, err)
	assert.Len(t, imports, 2)

	limited, err := repo.List(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
