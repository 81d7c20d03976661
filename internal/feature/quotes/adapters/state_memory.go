package adapters

import (
	"context"
	"sync"

	"dashboard_backend/internal/feature/quotes/domain/entity"
	"dashboard_backend/internal/feature/quotes/usecase"
)

// quoteStateMemory はプロセス内メモリに状態を保持するQuoteStateRepository実装です。
// Redisが利用できない場合に使用します。
type quoteStateMemory struct {
	mu     sync.RWMutex
	states map[string]entity.QuoteState
}

var _ usecase.QuoteStateRepository = (*quoteStateMemory)(nil)

// NewQuoteStateMemory は空のインメモリ状態ストアを生成します。
func NewQuoteStateMemory() *quoteStateMemory {
	return &quoteStateMemory{states: make(map[string]entity.QuoteState)}
}

func (m *quoteStateMemory) SaveSuccess(_ context.Context, symbol string, snap *entity.QuoteSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[symbol] = entity.QuoteState{Symbol: symbol, LastGood: snap}
	return nil
}

func (m *quoteStateMemory) SaveFailure(_ context.Context, symbol string, failure entity.FetchFailure) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := m.states[symbol]
	state.Symbol = symbol
	state.LastError = &failure
	m.states[symbol] = state
	return nil
}

func (m *quoteStateMemory) Find(_ context.Context, symbol string) (entity.QuoteState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if state, ok := m.states[symbol]; ok {
		return state, nil
	}
	return entity.QuoteState{Symbol: symbol}, nil
}
