// Package usecase は株価クォートの取得と正規化のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"dashboard_backend/internal/feature/quotes/domain"
	"dashboard_backend/internal/feature/quotes/domain/entity"
)

const (
	// DefaultHistoryRange は履歴チャートの取得期間です。
	DefaultHistoryRange = "1y"
	// DefaultHistoryInterval は履歴チャートの足の間隔です。
	DefaultHistoryInterval = "1d"
	// DefaultTimeout は1回のクォート取得全体に許される最大時間です。
	DefaultTimeout = 10 * time.Second
)

// MarketRepository は外部APIからクォートと価格履歴を取得するリポジトリのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// GetQuote は現在のクォートを返します。結果行が無い場合は domain.ErrEmptyResult を返します。
	GetQuote(ctx context.Context, symbol string) (entity.QuoteSnapshot, error)
	// GetHistory はタイムスタンプと終値の並行配列を返します。結果行が無い場合は domain.ErrEmptyResult を返します。
	GetHistory(ctx context.Context, symbol, rng, interval string) (entity.RawSeries, error)
}

// Config はQuoteUsecaseの動作設定です。
type Config struct {
	Timeout     time.Duration // 取得全体のタイムアウト（0以下ならDefaultTimeout）
	StrictShape bool          // trueなら配列長の不一致をshape-mismatchエラーにする
}

// QuoteUsecase はクォートの並列取得・検証・正規化を行います。
type QuoteUsecase struct {
	market   MarketRepository
	state    QuoteStateRepository
	cfg      Config
	now      func() time.Time
	inflight *inflightTracker
}

// NewQuoteUsecase は新しいQuoteUsecaseを生成します。stateがnilの場合は状態を記録しません。
func NewQuoteUsecase(market MarketRepository, state QuoteStateRepository, cfg Config) *QuoteUsecase {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &QuoteUsecase{
		market:   market,
		state:    state,
		cfg:      cfg,
		now:      time.Now,
		inflight: newInflightTracker(),
	}
}

// FetchQuote はクォートと1年分の日足履歴を並列に取得し、1つのスナップショットにまとめます。
// どちらかの取得が失敗した場合、部分的な結果は破棄され *domain.FetchError が返ります。
func (u *QuoteUsecase) FetchQuote(ctx context.Context, symbol string) (*entity.QuoteSnapshot, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, domain.ErrSymbolRequired
	}

	ctx, cancel := context.WithTimeout(ctx, u.cfg.Timeout)
	defer cancel()

	var (
		quote  entity.QuoteSnapshot
		series entity.RawSeries
	)
	// 2つのリクエストは独立しているため並列に実行し、両方の完了を待つ
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, err := u.market.GetQuote(gctx, symbol)
		if err != nil {
			return fmt.Errorf("get quote: %w", err)
		}
		quote = q
		return nil
	})
	g.Go(func() error {
		s, err := u.market.GetHistory(gctx, symbol, DefaultHistoryRange, DefaultHistoryInterval)
		if err != nil {
			return fmt.Errorf("get history: %w", err)
		}
		series = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewFetchError(classify(err), symbol, err)
	}

	if quote.Symbol == "" {
		return nil, domain.NewFetchError(domain.KindEmptyResult, symbol, errors.New("quote has no symbol"))
	}

	history, err := u.zip(symbol, series)
	if err != nil {
		return nil, err
	}

	snap := quote
	snap.History = history
	snap.FetchedAt = u.now()
	return &snap, nil
}

// zip はタイムスタンプ配列と終値配列をインデックスで対応付けます。
func (u *QuoteUsecase) zip(symbol string, s entity.RawSeries) ([]entity.HistoricalPoint, error) {
	n := len(s.Timestamps)
	if len(s.Closes) != n {
		if u.cfg.StrictShape {
			return nil, domain.NewFetchError(domain.KindShapeMismatch, symbol,
				fmt.Errorf("%d timestamps, %d closes", len(s.Timestamps), len(s.Closes)))
		}
		slog.Warn("history arrays differ in length, truncating to shorter",
			"symbol", symbol, "timestamps", len(s.Timestamps), "closes", len(s.Closes))
		n = min(n, len(s.Closes))
	}

	points := make([]entity.HistoricalPoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, entity.HistoricalPoint{
			Date:  entity.DayOf(s.Timestamps[i]),
			Price: s.Closes[i],
		})
	}
	return points, nil
}

// classify はアダプターのエラーをFetchErrorの種別に変換します。
func classify(err error) domain.FetchErrorKind {
	if errors.Is(err, domain.ErrEmptyResult) {
		return domain.KindEmptyResult
	}
	return domain.KindTransport
}
