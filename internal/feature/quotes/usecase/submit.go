package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"dashboard_backend/internal/feature/quotes/domain"
	"dashboard_backend/internal/feature/quotes/domain/entity"
)

// stateWriteTimeout bounds best-effort writes to the state store.
const stateWriteTimeout = 2 * time.Second

//go:generate mockgen -package=usecase_test -destination=mock_state_repository_test.go -source=submit.go QuoteStateRepository

// QuoteStateRepository は銘柄ごとの最終成功結果と最終エラーを保持するストアです。
type QuoteStateRepository interface {
	SaveSuccess(ctx context.Context, symbol string, snap *entity.QuoteSnapshot) error
	SaveFailure(ctx context.Context, symbol string, failure entity.FetchFailure) error
	Find(ctx context.Context, symbol string) (entity.QuoteState, error)
}

// Submit はクライアントからの明示的な取得要求を処理します。
// 同じclientKeyで前回の取得がまだ実行中の場合、その取得はキャンセルされます。
// 結果は状態ストアに記録され、失敗しても前回の成功結果は保持されます。
func (u *QuoteUsecase) Submit(ctx context.Context, clientKey, symbol string) (*entity.QuoteSnapshot, error) {
	ctx, release := u.inflight.begin(ctx, clientKey)
	defer release()

	snap, err := u.FetchQuote(ctx, symbol)
	if errors.Is(err, domain.ErrSymbolRequired) {
		return nil, err
	}
	// 新しい要求に置き換えられた取得は結果を記録しない
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return nil, err
	}
	u.record(ctx, symbol, snap, err)
	return snap, err
}

// State は指定銘柄の最終成功結果と最終エラーを返します。
func (u *QuoteUsecase) State(ctx context.Context, symbol string) (entity.QuoteState, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return entity.QuoteState{}, domain.ErrSymbolRequired
	}
	if u.state == nil {
		return entity.QuoteState{Symbol: stateKey(symbol)}, nil
	}
	return u.state.Find(ctx, stateKey(symbol))
}

// record は取得結果を状態ストアへ書き込みます（ベストエフォート）。
func (u *QuoteUsecase) record(ctx context.Context, symbol string, snap *entity.QuoteSnapshot, fetchErr error) {
	if u.state == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stateWriteTimeout)
	defer cancel()

	key := stateKey(symbol)
	var err error
	if fetchErr == nil {
		err = u.state.SaveSuccess(ctx, key, snap)
	} else {
		failure := entity.FetchFailure{
			Kind:    string(domain.KindTransport),
			Message: fetchErr.Error(),
			At:      u.now(),
		}
		var fe *domain.FetchError
		if errors.As(fetchErr, &fe) {
			failure.Kind = string(fe.Kind)
		}
		err = u.state.SaveFailure(ctx, key, failure)
	}
	if err != nil {
		slog.Warn("failed to record quote state", "symbol", key, "error", err)
	}
}

func stateKey(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// inflightTracker はクライアントごとに実行中の取得を1つだけ保持します。
type inflightTracker struct {
	mu    sync.Mutex
	seq   uint64
	byKey map[string]inflightEntry
}

type inflightEntry struct {
	id     uint64
	cancel context.CancelFunc
}

func newInflightTracker() *inflightTracker {
	return &inflightTracker{byKey: make(map[string]inflightEntry)}
}

// begin は前回の取得をキャンセルし、新しい取得用のコンテキストを返します。
// 返されたrelease関数は取得完了時に必ず呼び出すこと。
func (t *inflightTracker) begin(ctx context.Context, key string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	if key == "" {
		return ctx, cancel
	}

	t.mu.Lock()
	if prev, ok := t.byKey[key]; ok {
		prev.cancel()
	}
	t.seq++
	id := t.seq
	t.byKey[key] = inflightEntry{id: id, cancel: cancel}
	t.mu.Unlock()

	return ctx, func() {
		t.mu.Lock()
		if cur, ok := t.byKey[key]; ok && cur.id == id {
			delete(t.byKey, key)
		}
		t.mu.Unlock()
		cancel()
	}
}

// size returns the number of tracked clients.
func (t *inflightTracker) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byKey)
}
