package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/application/port"
	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

// ErrEmptyLedgerName is returned when a directory entry would be blank.
var ErrEmptyLedgerName = errors.New("ledger name must not be empty")

// LedgerNameService manages the flat directory of reusable ledger names.
// The edit flow only reads it for suggestions.
type LedgerNameService struct {
	repo   port.LedgerNameRepository
	logger *zap.Logger
}

// NewLedgerNameService creates a LedgerNameService.
func NewLedgerNameService(repo port.LedgerNameRepository, logger *zap.Logger) *LedgerNameService {
	return &LedgerNameService{repo: repo, logger: logger}
}

// List returns all directory entries.
func (s *LedgerNameService) List(ctx context.Context) ([]*entity.LedgerName, error) {
	return s.repo.List(ctx)
}

// Create adds one name to the directory.
func (s *LedgerNameService) Create(ctx context.Context, name string) (*entity.LedgerName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyLedgerName
	}

	created, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Created ledger name", zap.String("name", name))
	return created, nil
}
