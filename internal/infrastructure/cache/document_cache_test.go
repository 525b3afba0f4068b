package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

func TestInMemoryDocumentCache(t *testing.T) {
	c := NewInMemoryDocumentCache(zap.NewNop())

	_, ok := c.Get("imp-1")
	assert.False(t, ok)

	doc := &entity.ProcessedDocument{ImportID: "imp-1"}
	c.Put(doc)

	got, ok := c.Get("imp-1")
	require.True(t, ok)
	assert.Equal(t, doc, got)

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestInMemoryDocumentCache_PutReplaces(t *testing.T) {
	c := NewInMemoryDocumentCache(zap.NewNop())

	c.Put(&entity.ProcessedDocument{ImportID: "imp-1", Company: "Old"})
	c.Put(&entity.ProcessedDocument{ImportID: "imp-1", Company: "New"})

	got, ok := c.Get("imp-1")
	require.True(t, ok)
	assert.Equal(t, "New", got.Company)
}

func TestInMemoryDocumentCache_Invalidate(t *testing.T) {
	c := NewInMemoryDocumentCache(zap.NewNop())

	c.Put(&entity.ProcessedDocument{ImportID: "imp-1"})
	c.Invalidate("imp-1")

	_, ok := c.Get("imp-1")
	assert.False(t, ok)
}

func TestInMemoryDocumentCache_NilPutIgnored(t *testing.T) {
	c := NewInMemoryDocumentCache(zap.NewNop())
	c.Put(nil)

	_, ok := c.Get("")
	assert.False(t, ok)
}
