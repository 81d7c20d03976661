package adapters

import (
	"context"
	"errors"

	"dashboard_backend/internal/feature/symbollist/domain/entity"
	"dashboard_backend/internal/feature/symbollist/usecase"
)

// ErrCatalogDisabled is returned by writes when no database is configured.
var ErrCatalogDisabled = errors.New("symbol catalog database is not configured")

// emptySymbols はDB未設定時に使う空のSymbolRepository実装です。
type emptySymbols struct{}

var _ usecase.SymbolRepository = emptySymbols{}

// NewEmptySymbolRepository は常に空の結果を返すリポジトリを生成します。
func NewEmptySymbolRepository() usecase.SymbolRepository {
	return emptySymbols{}
}

func (emptySymbols) ListActive(context.Context) ([]entity.Symbol, error) {
	return []entity.Symbol{}, nil
}

func (emptySymbols) SearchActive(context.Context, string, int) ([]entity.Symbol, error) {
	return []entity.Symbol{}, nil
}

func (emptySymbols) UpsertBatch(context.Context, []entity.Symbol) error {
	return ErrCatalogDisabled
}
