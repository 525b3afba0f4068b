package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

// ArtifactWriter renders one row set of a document as workbook bytes.
type ArtifactWriter interface {
	Write(doc *entity.ProcessedDocument, set string) ([]byte, error)
}

// ArtifactStorage persists derived export files.
type ArtifactStorage interface {
	Save(ctx context.Context, path string, content []byte) error
}

// ExportService re-derives export artifacts (full, matched, mismatched)
// from the current processed document on demand.
type ExportService struct {
	documents *DocumentService
	writer    ArtifactWriter
	storage   ArtifactStorage
	logger    *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(documents *DocumentService, writer ArtifactWriter, storage ArtifactStorage, logger *zap.Logger) *ExportService {
	return &ExportService{
		documents: documents,
		writer:    writer,
		storage:   storage,
		logger:    logger,
	}
}

// Export derives the requested artifact from the authoritative document,
// saves a copy under the export directory and returns the bytes with a
// suggested file name.
func (s *ExportService) Export(ctx context.Context, importID, set string) ([]byte, string, error) {
	doc, err := s.documents.Get(ctx, importID)
	if err != nil {
		return nil, "", err
	}

	content, err := s.writer.Write(doc, set)
	if err != nil {
		return nil, "", fmt.Errorf("derive artifact: %w", err)
	}

	fileName := fmt.Sprintf("%s_%s.xlsx", importID, set)
	if err := s.storage.Save(ctx, fileName, content); err != nil {
		// The artifact is still served; a failed disk copy is logged,
		// not fatal.
		s.logger.Warn("Failed to save export artifact copy",
			zap.String("file", fileName),
			zap.Error(err))
	}

	return content, fileName, nil
}
