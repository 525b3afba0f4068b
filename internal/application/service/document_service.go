package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/application/port"
	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
	"github.com/gstbridge/gstr-ledger/internal/transform"
)

// ErrStaleChangeset is returned when a ledger-name changeset addresses a
// row the store can no longer resolve. The whole commit is rejected;
// callers keep their local edits and retry after re-initializing from a
// fresh fetch.
var ErrStaleChangeset = errors.New("changeset addresses an unresolvable row")

// DocumentService runs the invoice-to-ledger transformation and owns the
// ledger-name persistence protocol over the document store.
type DocumentService struct {
	imports     port.ImportRepository
	store       port.DocumentStore
	cache       port.DocumentCache
	transformer *transform.Transformer
	states      transform.StateCodeTable
	company     string
	logger      *zap.Logger
}

// NewDocumentService creates a DocumentService. The state-code table is
// an explicit input; the transform never reads ambient lookup state.
func NewDocumentService(
	imports port.ImportRepository,
	store port.DocumentStore,
	cache port.DocumentCache,
	states transform.StateCodeTable,
	company string,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		imports:     imports,
		store:       store,
		cache:       cache,
		transformer: transform.NewTransformer(logger),
		states:      states,
		company:     company,
		logger:      logger,
	}
}

// Transform runs the full transformation for an import and persists the
// result, replacing any prior processed document for the same import.
func (s *DocumentService) Transform(ctx context.Context, importID string) (*entity.ProcessedDocument, error) {
	rawRows, err := s.imports.Rows(ctx, importID)
	if err != nil {
		return nil, fmt.Errorf("load raw rows: %w", err)
	}

	doc := s.transformer.Transform(rawRows, s.states, s.company)
	doc.ImportID = importID
	assignRowIDs(doc)

	stored, err := s.store.Replace(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("persist processed document: %w", err)
	}

	s.cache.Put(stored)
	return stored, nil
}

// Get returns the processed document for an import, serving from the
// advisory cache when possible. A cache miss always fetches fresh.
func (s *DocumentService) Get(ctx context.Context, importID string) (*entity.ProcessedDocument, error) {
	if doc, ok := s.cache.Get(importID); ok {
		return doc, nil
	}

	doc, err := s.store.Get(ctx, importID)
	if err != nil {
		return nil, err
	}

	s.cache.Put(doc)
	return doc, nil
}

// ApplyLedgerNames applies a changeset to the stored document and
// returns the full updated document. The commit is atomic: either every
// entry resolves to a row and only its ledger name changes, or nothing
// is written. An empty changeset is a no-op success.
func (s *DocumentService) ApplyLedgerNames(ctx context.Context, importID string, changes []entity.LedgerNameChange) (*entity.ProcessedDocument, error) {
	if len(changes) == 0 {
		return s.Get(ctx, importID)
	}

	doc, err := s.store.Get(ctx, importID)
	if err != nil {
		return nil, err
	}

	rows := doc.Rows()

	// Resolve every entry before touching any row so a stale entry
	// rejects the whole commit.
	targets := make([]int, len(changes))
	for i, change := range changes {
		idx, ok := resolveRow(rows, change)
		if !ok {
			return nil, fmt.Errorf("%w: row %q (index %d)", ErrStaleChangeset, change.RowID, change.RowIndex)
		}
		targets[i] = idx
	}

	for i, change := range changes {
		name := ""
		if change.LedgerName != nil {
			name = *change.LedgerName
		}
		rows[targets[i]].LedgerName = name
	}

	updated := &entity.ProcessedDocument{
		ImportID:       doc.ImportID,
		Company:        doc.Company,
		ProcessedRows:  rows[:len(doc.ProcessedRows)],
		MismatchedRows: rows[len(doc.ProcessedRows):],
	}

	stored, err := s.store.Replace(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("persist ledger names: %w", err)
	}

	s.cache.Put(stored)

	s.logger.Info("Applied ledger-name changeset",
		zap.String("import_id", importID),
		zap.Int("rows", len(changes)))

	return stored, nil
}

// Commit implements editbuffer.Committer.
func (s *DocumentService) Commit(ctx context.Context, importID string, changes []entity.LedgerNameChange) (*entity.ProcessedDocument, error) {
	return s.ApplyLedgerNames(ctx, importID, changes)
}

// resolveRow finds the row a changeset entry addresses: by persisted
// identifier, else by declared serial number, else by positional index.
func resolveRow(rows []entity.CanonicalLedgerRow, change entity.LedgerNameChange) (int, bool) {
	if change.RowID != "" {
		for i := range rows {
			if rows[i].ID == change.RowID {
				return i, true
			}
		}
		if seq, err := strconv.Atoi(change.RowID); err == nil {
			for i := range rows {
				if rows[i].SerialNumber == seq {
					return i, true
				}
			}
		}
		return 0, false
	}

	if change.RowIndex >= 0 && change.RowIndex < len(rows) {
		return change.RowIndex, true
	}
	return 0, false
}

// assignRowIDs gives every transformed row a persisted identifier before
// first storage. Identifiers are minted once per transformation run;
// they never survive a re-transform.
func assignRowIDs(doc *entity.ProcessedDocument) {
	for i := range doc.ProcessedRows {
		doc.ProcessedRows[i].ID = uuid.New().String()
	}
	for i := range doc.MismatchedRows {
		doc.MismatchedRows[i].ID = uuid.New().String()
	}
}
