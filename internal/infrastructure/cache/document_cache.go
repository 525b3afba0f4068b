package cache

import (
	"sync"

	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/application/port"
	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

// InMemoryDocumentCache implements port.DocumentCache with a plain map.
// The cache is advisory: entries are replaced wholesale after every
// successful write and a miss always triggers a fresh fetch, so a stale
// or evicted entry can never surface as truth.
type InMemoryDocumentCache struct {
	mu     sync.RWMutex
	docs   map[string]*entity.ProcessedDocument
	logger *zap.Logger

	hits   int64
	misses int64
}

// NewInMemoryDocumentCache creates an empty cache.
func NewInMemoryDocumentCache(logger *zap.Logger) *InMemoryDocumentCache {
	return &InMemoryDocumentCache{
		docs:   make(map[string]*entity.ProcessedDocument),
		logger: logger,
	}
}

// Get returns the cached document for an import, if any.
func (c *InMemoryDocumentCache) Get(importID string) (*entity.ProcessedDocument, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.docs[importID]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return doc, ok
}

// Put unconditionally replaces the entry for the document's import.
func (c *InMemoryDocumentCache) Put(doc *entity.ProcessedDocument) {
	if doc == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[doc.ImportID] = doc
}

// Invalidate drops the entry for an import.
func (c *InMemoryDocumentCache) Invalidate(importID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.docs, importID)
}

// Stats returns hit/miss counters for logging.
func (c *InMemoryDocumentCache) Stats() (hits, misses int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Verify interface compliance
var _ port.DocumentCache = (*InMemoryDocumentCache)(nil)
