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

// ImportRepository implements port.ImportRepository over sqlite.
type ImportRepository struct {
	db        *sql.DB
	txManager port.TransactionManager
	logger    *zap.Logger
}

// NewImportRepository creates a new import repository.
func NewImportRepository(db *sql.DB, txManager port.TransactionManager, logger *zap.Logger) port.ImportRepository {
	return &ImportRepository{
		db:        db,
		txManager: txManager,
		logger:    logger,
	}
}

// Create stores the import record together with its ordered raw rows in
// one transaction.
func (r *ImportRepository) Create(ctx context.Context, imp *entity.Import, rows []entity.RawInvoiceRow) error {
	return r.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		query := `
			INSERT INTO imports (id, file_name, row_count)
			VALUES (?, ?, ?)
		`
		if _, err := getExecutor(ctx, r.db).ExecContext(ctx, query, imp.ID, imp.FileName, imp.RowCount); err != nil {
			r.logger.Error("Failed to create import", zap.String("import_id", imp.ID), zap.Error(err))
			return fmt.Errorf("failed to create import: %w", err)
		}

		rowQuery := `
			INSERT INTO raw_invoice_rows (import_id, row_index, payload)
			VALUES (?, ?, ?)
		`
		for i, row := range rows {
			payload, err := json.Marshal(row)
			if err != nil {
				return fmt.Errorf("failed to encode raw row %d: %w", i, err)
			}
			if _, err := getExecutor(ctx, r.db).ExecContext(ctx, rowQuery, imp.ID, i, string(payload)); err != nil {
				r.logger.Error("Failed to store raw row",
					zap.String("import_id", imp.ID),
					zap.Int("row_index", i),
					zap.Error(err))
				return fmt.Errorf("failed to store raw row %d: %w", i, err)
			}
		}
		return nil
	})
}

// Get retrieves one import record.
func (r *ImportRepository) Get(ctx context.Context, id string) (*entity.Import, error) {
	query := `
		SELECT id, file_name, row_count, created_at
		FROM imports
		WHERE id = ?
	`

	var imp entity.Import
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&imp.ID,
		&imp.FileName,
		&imp.RowCount,
		&imp.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, port.ErrImportNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get import", zap.String("import_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get import: %w", err)
	}

	return &imp, nil
}

// List returns import records, newest first.
func (r *ImportRepository) List(ctx context.Context, limit, offset int) ([]*entity.Import, error) {
	query := `
		SELECT id, file_name, row_count, created_at
		FROM imports
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list imports", zap.Error(err))
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	defer rows.Close()

	var imports []*entity.Import
	for rows.Next() {
		var imp entity.Import
		if err := rows.Scan(&imp.ID, &imp.FileName, &imp.RowCount, &imp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		imports = append(imports, &imp)
	}

	return imports, rows.Err()
}

// Rows returns the ordered raw rows of one import.
func (r *ImportRepository) Rows(ctx context.Context, importID string) ([]entity.RawInvoiceRow, error) {
	if _, err := r.Get(ctx, importID); err != nil {
		return nil, err
	}

	query := `
		SELECT payload
		FROM raw_invoice_rows
		WHERE import_id = ?
		ORDER BY row_index ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, importID)
	if err != nil {
		r.logger.Error("Failed to load raw rows", zap.String("import_id", importID), zap.Error(err))
		return nil, fmt.Errorf("failed to load raw rows: %w", err)
	}
	defer rows.Close()

	var rawRows []entity.RawInvoiceRow
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan raw row: %w", err)
		}
		var raw entity.RawInvoiceRow
		if err := json.Unmarshal([]byte(payload), &raw); err != nil {
			return nil, fmt.Errorf("failed to decode raw row: %w", err)
		}
		rawRows = append(rawRows, raw)
	}

	return rawRows, rows.Err()
}

// Verify interface compliance
var _ port.ImportRepository = (*ImportRepository)(nil)
