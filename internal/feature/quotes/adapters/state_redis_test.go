package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard_backend/internal/feature/quotes/domain/entity"
)

func sampleSnapshot() *entity.QuoteSnapshot {
	vol := int64(5000)
	return &entity.QuoteSnapshot{
		Symbol: "AAPL",
		Price:  decimal.NewNullDecimal(decimal.RequireFromString("190.25")),
		Volume: &vol,
		History: []entity.HistoricalPoint{
			{Date: time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC), Price: decimal.NewNullDecimal(decimal.NewFromInt(188))},
			{Date: time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC)},
		},
		FetchedAt: time.Date(2023, 11, 15, 9, 0, 0, 0, time.UTC),
	}
}

func TestNewQuoteStateRedis_Defaults(t *testing.T) {
	t.Parallel()

	r := NewQuoteStateRedis(nil, 0, "")
	assert.Equal(t, 24*time.Hour, r.ttl)
	assert.Equal(t, "quote_state", r.namespace)
	assert.Equal(t, "quote_state:BRK_B_X", r.key("BRK B:X"))
}

// TestQuoteStateRedis_SaveSuccess は成功結果がTTL付きで保存され、最終エラーが消えることを検証します。
func TestQuoteStateRedis_SaveSuccess(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	snap := sampleSnapshot()
	good, _ := json.Marshal(snap)
	mock.ExpectTxPipeline()
	mock.ExpectHSet("quote_state:AAPL", "symbol", "AAPL", "last_good", string(good)).SetVal(2)
	mock.ExpectHDel("quote_state:AAPL", "last_error").SetVal(1)
	mock.ExpectExpire("quote_state:AAPL", time.Hour).SetVal(true)
	mock.ExpectTxPipelineExec()

	repo := NewQuoteStateRedis(rdb, time.Hour, "")
	require.NoError(t, repo.SaveSuccess(context.Background(), "AAPL", snap))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestQuoteStateRedis_SaveFailure_OnlyTouchesLastError は失敗の記録が
// 既存の状態を読まず、最終成功結果のフィールドに書き込まないことを検証します。
func TestQuoteStateRedis_SaveFailure_OnlyTouchesLastError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	failure := entity.FetchFailure{Kind: "transport", Message: "yahoo http 503", At: time.Date(2023, 11, 16, 0, 0, 0, 0, time.UTC)}
	b, _ := json.Marshal(failure)

	// Get/HGetAllや"last_good"へのHSetが発行されると期待外のコマンドとして失敗する
	mock.ExpectTxPipeline()
	mock.ExpectHSet("quote_state:AAPL", "symbol", "AAPL", "last_error", string(b)).SetVal(1)
	mock.ExpectExpire("quote_state:AAPL", time.Hour).SetVal(true)
	mock.ExpectTxPipelineExec()

	repo := NewQuoteStateRedis(rdb, time.Hour, "")
	require.NoError(t, repo.SaveFailure(context.Background(), "AAPL", failure))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteStateRedis_SaveFailure_RedisError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	failure := entity.FetchFailure{Kind: "timeout", At: time.Date(2023, 11, 16, 0, 0, 0, 0, time.UTC)}
	b, _ := json.Marshal(failure)

	mock.ExpectTxPipeline()
	mock.ExpectHSet("quote_state:AAPL", "symbol", "AAPL", "last_error", string(b)).SetErr(errors.New("connection refused"))

	err := NewQuoteStateRedis(rdb, time.Hour, "").SaveFailure(context.Background(), "AAPL", failure)
	assert.Error(t, err)
}

func TestQuoteStateRedis_Find(t *testing.T) {
	t.Parallel()

	t.Run("missing key yields empty state", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()
		mock.ExpectHGetAll("quote_state:MSFT").SetVal(map[string]string{})

		st, err := NewQuoteStateRedis(rdb, 0, "").Find(context.Background(), "MSFT")
		require.NoError(t, err)
		assert.Equal(t, entity.QuoteState{Symbol: "MSFT"}, st)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stored state round trips", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		snap := sampleSnapshot()
		good, _ := json.Marshal(snap)
		mock.ExpectHGetAll("quote_state:AAPL").SetVal(map[string]string{
			"symbol":    "AAPL",
			"last_good": string(good),
		})

		st, err := NewQuoteStateRedis(rdb, 0, "").Find(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.Equal(t, "AAPL", st.Symbol)
		require.NotNil(t, st.LastGood)
		assert.True(t, snap.Price.Decimal.Equal(st.LastGood.Price.Decimal))
		require.Len(t, st.LastGood.History, 2)
		assert.False(t, st.LastGood.History[1].Price.Valid)
		assert.Equal(t, int64(5000), *st.LastGood.Volume)
		assert.Nil(t, st.LastError)
	})

	t.Run("last good and last error are read independently", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()

		good, _ := json.Marshal(sampleSnapshot())
		bad, _ := json.Marshal(entity.FetchFailure{Kind: "empty-result", At: time.Date(2023, 11, 16, 0, 0, 0, 0, time.UTC)})
		mock.ExpectHGetAll("quote_state:AAPL").SetVal(map[string]string{
			"symbol":     "AAPL",
			"last_good":  string(good),
			"last_error": string(bad),
		})

		st, err := NewQuoteStateRedis(rdb, 0, "").Find(context.Background(), "AAPL")
		require.NoError(t, err)
		require.NotNil(t, st.LastGood)
		require.NotNil(t, st.LastError)
		assert.Equal(t, "empty-result", st.LastError.Kind)
	})

	t.Run("corrupt entry is deleted", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()
		mock.ExpectHGetAll("quote_state:AAPL").SetVal(map[string]string{"last_good": "{not json"})
		mock.ExpectDel("quote_state:AAPL").SetVal(1)

		st, err := NewQuoteStateRedis(rdb, 0, "").Find(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.Equal(t, entity.QuoteState{Symbol: "AAPL"}, st)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis error is returned", func(t *testing.T) {
		t.Parallel()
		rdb, mock := redismock.NewClientMock()
		defer func() { _ = rdb.Close() }()
		mock.ExpectHGetAll("quote_state:AAPL").SetErr(errors.New("connection refused"))

		_, err := NewQuoteStateRedis(rdb, 0, "").Find(context.Background(), "AAPL")
		assert.Error(t, err)
	})
}

func TestQuoteStateMemory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewQuoteStateMemory()

	st, err := m.Find(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteState{Symbol: "AAPL"}, st)

	snap := sampleSnapshot()
	require.NoError(t, m.SaveSuccess(ctx, "AAPL", snap))

	failure := entity.FetchFailure{Kind: "empty-result", At: time.Now()}
	require.NoError(t, m.SaveFailure(ctx, "AAPL", failure))

	st, err = m.Find(ctx, "AAPL")
	require.NoError(t, err)
	assert.Same(t, snap, st.LastGood, "failure keeps the last good snapshot")
	require.NotNil(t, st.LastError)
	assert.Equal(t, "empty-result", st.LastError.Kind)

	// 次の成功で最終エラーは消える
	require.NoError(t, m.SaveSuccess(ctx, "AAPL", snap))
	st, _ = m.Find(ctx, "AAPL")
	assert.Nil(t, st.LastError)

	// 失敗のみの銘柄
	require.NoError(t, m.SaveFailure(ctx, "ZZZZ", failure))
	st, _ = m.Find(ctx, "ZZZZ")
	assert.Equal(t, "ZZZZ", st.Symbol)
	assert.Nil(t, st.LastGood)
	assert.NotNil(t, st.LastError)
}
