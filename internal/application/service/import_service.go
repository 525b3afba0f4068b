package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/application/port"
	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

// ExtractReader parses an uploaded extract file into ordered raw rows.
type ExtractReader interface {
	Read(r io.Reader) ([]entity.RawInvoiceRow, error)
}

// ImportService stores uploaded GSTR-2A extracts as ordered raw row
// sets, ready for transformation.
type ImportService struct {
	repo   port.ImportRepository
	reader ExtractReader
	logger *zap.Logger
}

// NewImportService creates an ImportService.
func NewImportService(repo port.ImportRepository, reader ExtractReader, logger *zap.Logger) *ImportService {
	return &ImportService{
		repo:   repo,
		reader: reader,
		logger: logger,
	}
}

// Upload parses and stores one extract, returning the import record.
func (s *ImportService) Upload(ctx context.Context, fileName string, r io.Reader) (*entity.Import, error) {
	rows, err := s.reader.Read(r)
	if err != nil {
		return nil, fmt.Errorf("parse extract: %w", err)
	}

	imp := &entity.Import{
		ID:       uuid.New().String(),
		FileName: fileName,
		RowCount: len(rows),
	}

	if err := s.repo.Create(ctx, imp, rows); err != nil {
		return nil, fmt.Errorf("store import: %w", err)
	}

	s.logger.Info("Stored invoice extract",
		zap.String("import_id", imp.ID),
		zap.String("file_name", fileName),
		zap.Int("rows", len(rows)))

	return imp, nil
}

// Get returns one import record.
func (s *ImportService) Get(ctx context.Context, id string) (*entity.Import, error) {
	return s.repo.Get(ctx, id)
}

// List returns import records, newest first.
func (s *ImportService) List(ctx context.Context, limit, offset int) ([]*entity.Import, error) {
	return s.repo.List(ctx, limit, offset)
}
