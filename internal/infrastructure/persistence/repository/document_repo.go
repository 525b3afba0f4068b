package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/application/port"
	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

// DocumentRepository implements port.DocumentStore over sqlite. A
// document's rows are replaced as one unit inside a transaction; a
// partial write never becomes visible.
type DocumentRepository struct {
	db        *sql.DB
	txManager port.TransactionManager
	logger    *zap.Logger
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(db *sql.DB, txManager port.TransactionManager, logger *zap.Logger) port.DocumentStore {
	return &DocumentRepository{
		db:        db,
		txManager: txManager,
		logger:    logger,
	}
}

// Get retrieves the processed document for an import.
func (r *DocumentRepository) Get(ctx context.Context, importID string) (*entity.ProcessedDocument, error) {
	query := `
		SELECT company
		FROM processed_documents
		WHERE import_id = ?
	`

	doc := entity.ProcessedDocument{
		ImportID:       importID,
		ProcessedRows:  []entity.CanonicalLedgerRow{},
		MismatchedRows: []entity.CanonicalLedgerRow{},
	}
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, importID).Scan(&doc.Company)
	if err == sql.ErrNoRows {
		return nil, port.ErrDocumentNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get processed document", zap.String("import_id", importID), zap.Error(err))
		return nil, fmt.Errorf("failed to get processed document: %w", err)
	}

	rowQuery := `
		SELECT payload, ledger_name, matched
		FROM processed_rows
		WHERE import_id = ?
		ORDER BY row_index ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, rowQuery, importID)
	if err != nil {
		r.logger.Error("Failed to load processed rows", zap.String("import_id", importID), zap.Error(err))
		return nil, fmt.Errorf("failed to load processed rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			payload    string
			ledgerName sql.NullString
			matched    bool
		)
		if err := rows.Scan(&payload, &ledgerName, &matched); err != nil {
			return nil, fmt.Errorf("failed to scan processed row: %w", err)
		}

		var row entity.CanonicalLedgerRow
		if err := json.Unmarshal([]byte(payload), &row); err != nil {
			return nil, fmt.Errorf("failed to decode processed row: %w", err)
		}
		// The ledger_name column is authoritative over the payload copy.
		row.LedgerName = ledgerName.String

		if matched {
			doc.ProcessedRows = append(doc.ProcessedRows, row)
		} else {
			doc.MismatchedRows = append(doc.MismatchedRows, row)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read processed rows: %w", err)
	}

	return &doc, nil
}

// Replace swaps the full row collection for the document's import,
// creating the document when absent. The swap happens in one
// transaction.
func (r *DocumentRepository) Replace(ctx context.Context, doc *entity.ProcessedDocument) (*entity.ProcessedDocument, error) {
	err := r.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		docQuery := `
			INSERT INTO processed_documents (import_id, company)
			VALUES (?, ?)
			ON CONFLICT (import_id) DO UPDATE SET
				company = excluded.company,
				updated_at = CURRENT_TIMESTAMP
		`
		if _, err := getExecutor(ctx, r.db).ExecContext(ctx, docQuery, doc.ImportID, doc.Company); err != nil {
			return fmt.Errorf("failed to upsert processed document: %w", err)
		}

		if _, err := getExecutor(ctx, r.db).ExecContext(ctx,
			"DELETE FROM processed_rows WHERE import_id = ?", doc.ImportID); err != nil {
			return fmt.Errorf("failed to clear processed rows: %w", err)
		}

		index := 0
		if err := r.insertRows(ctx, doc.ImportID, doc.ProcessedRows, true, &index); err != nil {
			return err
		}
		return r.insertRows(ctx, doc.ImportID, doc.MismatchedRows, false, &index)
	})
	if err != nil {
		r.logger.Error("Failed to replace processed document",
			zap.String("import_id", doc.ImportID),
			zap.Error(err))
		return nil, err
	}

	r.logger.Debug("Replaced processed document",
		zap.String("import_id", doc.ImportID),
		zap.Int("matched", len(doc.ProcessedRows)),
		zap.Int("mismatched", len(doc.MismatchedRows)))

	return doc, nil
}

func (r *DocumentRepository) insertRows(ctx context.Context, importID string, rows []entity.CanonicalLedgerRow, matched bool, index *int) error {
	query := `
		INSERT INTO processed_rows (id, import_id, row_index, serial_number, matched, ledger_name, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	for i := range rows {
		payload, err := json.Marshal(rows[i])
		if err != nil {
			return fmt.Errorf("failed to encode processed row: %w", err)
		}

		var ledgerName sql.NullString
		if rows[i].LedgerName != "" {
			ledgerName = sql.NullString{String: rows[i].LedgerName, Valid: true}
		}

		_, err = getExecutor(ctx, r.db).ExecContext(ctx, query,
			rows[i].ID,
			importID,
			*index,
			rows[i].SerialNumber,
			matched,
			ledgerName,
			string(payload),
		)
		if err != nil {
			return fmt.Errorf("failed to insert processed row %d: %w", *index, err)
		}
		*index++
	}
	return nil
}

// Verify interface compliance
var _ port.DocumentStore = (*DocumentRepository)(nil)
