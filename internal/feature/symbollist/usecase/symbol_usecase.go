// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"
	"errors"
	"strings"

	"dashboard_backend/internal/feature/symbollist/domain/entity"
)

const (
	// DefaultSearchLimit is the number of suggestions returned when the caller does not ask.
	DefaultSearchLimit = 10
	// MaxSearchLimit caps a single suggestion list.
	MaxSearchLimit = 50
)

// ErrEmptyCode is returned when an imported symbol has no code.
var ErrEmptyCode = errors.New("symbol code is required")

// SymbolRepository abstracts the persistence layer for symbol (stock ticker) data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	SearchActive(ctx context.Context, query string, limit int) ([]entity.Symbol, error)
	UpsertBatch(ctx context.Context, symbols []entity.Symbol) error
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols from the repository.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// SearchSymbols returns active symbols matching query for autocomplete.
// An empty query lists the first limit symbols in display order.
func (u *SymbolUsecase) SearchSymbols(ctx context.Context, query string, limit int) ([]entity.Symbol, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	return u.repo.SearchActive(ctx, strings.TrimSpace(query), limit)
}

// ImportSymbols normalises codes to upper case and upserts the catalog rows.
func (u *SymbolUsecase) ImportSymbols(ctx context.Context, symbols []entity.Symbol) error {
	out := make([]entity.Symbol, 0, len(symbols))
	for _, s := range symbols {
		s.Code = strings.ToUpper(strings.TrimSpace(s.Code))
		if s.Code == "" {
			return ErrEmptyCode
		}
		if s.Name == "" {
			s.Name = s.Code
		}
		out = append(out, s)
	}
	return u.repo.UpsertBatch(ctx, out)
}
