package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLedgerNameRepository_CreateAndList(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewLedgerNameRepository(db, zap.NewNop())
	ctx := context.Background()

	for _, name := range []string{"Purchases 18%", "Freight Inward", "Purchases 5%"} {
		_, err := repo.Create(ctx, name)
		require.NoError(t, err)
	}

	names, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, names, 3)

	// Name order, for stable suggestion lists.
	assert.Equal(t, "Freight Inward", names[0].Name)
	assert.Equal(t, "Purchases 18%", names[1].Name)
	assert.Equal(t, "Purchases 5%", names[2].Name)
}

func TestLedgerNameRepository_DuplicateReturnsExisting(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewLedgerNameRepository(db, zap.NewNop())
	ctx := context.Background()

	first, err := repo.Create(ctx, "Purchases 18%")
	require.NoError(t, err)
	second, err := repo.Create(ctx, "Purchases 18%")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, names, 1)
}
