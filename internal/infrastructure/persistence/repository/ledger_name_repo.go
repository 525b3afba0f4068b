package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/application/port"
	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

// LedgerNameRepository implements port.LedgerNameRepository over sqlite.
type LedgerNameRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLedgerNameRepository creates a new ledger-name repository.
func NewLedgerNameRepository(db *sql.DB, logger *zap.Logger) port.LedgerNameRepository {
	return &LedgerNameRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all directory entries in name order.
func (r *LedgerNameRepository) List(ctx context.Context) ([]*entity.LedgerName, error) {
	query := `
		SELECT id, name, created_at
		FROM ledger_names
		ORDER BY name ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list ledger names", zap.Error(err))
		return nil, fmt.Errorf("failed to list ledger names: %w", err)
	}
	defer rows.Close()

	var names []*entity.LedgerName
	for rows.Next() {
		var name entity.LedgerName
		if err := rows.Scan(&name.ID, &name.Name, &name.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger name: %w", err)
		}
		names = append(names, &name)
	}

	return names, rows.Err()
}

// Create inserts one name, returning the existing entry when the name is
// already present.
func (r *LedgerNameRepository) Create(ctx context.Context, name string) (*entity.LedgerName, error) {
	query := `
		INSERT INTO ledger_names (name)
		VALUES (?)
		ON CONFLICT (name) DO NOTHING
	`

	if _, err := getExecutor(ctx, r.db).ExecContext(ctx, query, name); err != nil {
		r.logger.Error("Failed to create ledger name", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to create ledger name: %w", err)
	}

	var created entity.LedgerName
	err := getExecutor(ctx, r.db).QueryRowContext(ctx,
		"SELECT id, name, created_at FROM ledger_names WHERE name = ?", name).Scan(
		&created.ID,
		&created.Name,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read back ledger name: %w", err)
	}

	return &created, nil
}

// Verify interface compliance
var _ port.LedgerNameRepository = (*LedgerNameRepository)(nil)
