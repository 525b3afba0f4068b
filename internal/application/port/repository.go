package port

import (
	"context"
	"errors"

	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

var (
	// ErrImportNotFound is returned when an import identifier resolves
	// to nothing.
	ErrImportNotFound = errors.New("import not found")

	// ErrDocumentNotFound is returned when no processed document exists
	// for an import.
	ErrDocumentNotFound = errors.New("processed document not found")
)

// ImportRepository defines persistence operations for uploaded extracts
// and their raw rows.
type ImportRepository interface {
	Create(ctx context.Context, imp *entity.Import, rows []entity.RawInvoiceRow) error
	Get(ctx context.Context, id string) (*entity.Import, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Import, error)
	Rows(ctx context.Context, importID string) ([]entity.RawInvoiceRow, error)
}

// DocumentStore is the authoritative store of processed documents.
// Replace swaps the full row collection for an import atomically; a
// partial write never becomes visible.
type DocumentStore interface {
	Get(ctx context.Context, importID string) (*entity.ProcessedDocument, error)
	Replace(ctx context.Context, doc *entity.ProcessedDocument) (*entity.ProcessedDocument, error)
}

// LedgerNameRepository defines persistence operations for the flat
// directory of reusable ledger names offered as suggestions.
type LedgerNameRepository interface {
	List(ctx context.Context) ([]*entity.LedgerName, error)
	Create(ctx context.Context, name string) (*entity.LedgerName, error)
}

// DocumentCache is an advisory cache of processed documents keyed by
// import identifier. Entries are replaced wholesale after any successful
// write; a miss always triggers a fresh fetch.
type DocumentCache interface {
	Get(importID string) (*entity.ProcessedDocument, bool)
	Put(doc *entity.ProcessedDocument)
	Invalidate(importID string)
}

// TransactionManager executes a function within a database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
