// Package adapters はquotesフィーチャーの状態ストア実装を提供します。
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"dashboard_backend/internal/feature/quotes/domain/entity"
	"dashboard_backend/internal/feature/quotes/usecase"
)

// Hash fields of a per-symbol state entry.
const (
	fieldSymbol    = "symbol"
	fieldLastGood  = "last_good"
	fieldLastError = "last_error"
)

// quoteStateRedis はQuoteStateRepositoryのRedis実装です。
// 銘柄ごとに1つのハッシュを保持し、成功と失敗はそれぞれ別フィールドに書き込みます。
// TTL経過後は自然に消えます。
type quoteStateRedis struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.QuoteStateRepository = (*quoteStateRedis)(nil)

// NewQuoteStateRedis はRedisを使う状態ストアを生成します。
// ttlが0以下の場合は24時間、namespaceが空の場合は"quote_state"を使用します。
func NewQuoteStateRedis(rdb *redis.Client, ttl time.Duration, namespace string) *quoteStateRedis {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if namespace == "" {
		namespace = "quote_state"
	}
	return &quoteStateRedis{rdb: rdb, ttl: ttl, namespace: namespace}
}

// SaveSuccess は最終成功結果を更新し、最終エラーをクリアします。
func (r *quoteStateRedis) SaveSuccess(ctx context.Context, symbol string, snap *entity.QuoteSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal quote snapshot: %w", err)
	}
	key := r.key(symbol)
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldSymbol, symbol, fieldLastGood, string(b))
		pipe.HDel(ctx, key, fieldLastError)
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	return err
}

// SaveFailure は最終エラーのみを更新します。
// 読み込みを伴わないため、並行して保存された最終成功結果を上書きしません。
func (r *quoteStateRedis) SaveFailure(ctx context.Context, symbol string, failure entity.FetchFailure) error {
	b, err := json.Marshal(failure)
	if err != nil {
		return fmt.Errorf("failed to marshal fetch failure: %w", err)
	}
	key := r.key(symbol)
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldSymbol, symbol, fieldLastError, string(b))
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	return err
}

// Find は保存された状態を返します。存在しない場合は空の状態を返します。
func (r *quoteStateRedis) Find(ctx context.Context, symbol string) (entity.QuoteState, error) {
	fields, err := r.rdb.HGetAll(ctx, r.key(symbol)).Result()
	if err != nil {
		return entity.QuoteState{}, err
	}

	state := entity.QuoteState{Symbol: symbol}
	if len(fields) == 0 {
		return state, nil
	}

	if v, ok := fields[fieldLastGood]; ok {
		var snap entity.QuoteSnapshot
		if err := json.Unmarshal([]byte(v), &snap); err != nil {
			return r.discard(ctx, symbol), nil
		}
		state.LastGood = &snap
	}
	if v, ok := fields[fieldLastError]; ok {
		var failure entity.FetchFailure
		if err := json.Unmarshal([]byte(v), &failure); err != nil {
			return r.discard(ctx, symbol), nil
		}
		state.LastError = &failure
	}
	return state, nil
}

// discard は破損したエントリを削除し、空の状態を返します。
func (r *quoteStateRedis) discard(ctx context.Context, symbol string) entity.QuoteState {
	_ = r.rdb.Del(ctx, r.key(symbol)).Err()
	return entity.QuoteState{Symbol: symbol}
}

// key generates the Redis key for a symbol.
func (r *quoteStateRedis) key(symbol string) string {
	return fmt.Sprintf("%s:%s", r.namespace, safe(symbol))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
