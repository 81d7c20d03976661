// Package yahoo provides a client for the Yahoo Finance quote and chart APIs.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"dashboard_backend/internal/feature/quotes/domain"
	"dashboard_backend/internal/feature/quotes/domain/entity"
	"dashboard_backend/internal/feature/quotes/usecase"
	"dashboard_backend/internal/platform/externalapi/yahoo/dto"
)

const providerName = "yahoo"

// Config holds configuration for the Yahoo Finance client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://query1.finance.yahoo.com")
	Timeout time.Duration // HTTP request timeout
}

// YahooMarket はYahoo Finance APIからクォートと価格履歴を取得するMarketRepository実装です。
// 認証ヘッダーは注入されたHTTPクライアント側で付与されます。
type YahooMarket struct {
	cfg    Config
	client *http.Client
}

// YahooMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*YahooMarket)(nil)

// NewYahooMarket は指定された設定とHTTPクライアントでYahooMarketの新しいインスタンスを生成します。
func NewYahooMarket(cfg Config, client *http.Client) *YahooMarket {
	return &YahooMarket{cfg: cfg, client: client}
}

// GetQuote はv7 quoteエンドポイントから現在のクォートを取得し、結果配列の先頭要素を返します。
func (y *YahooMarket) GetQuote(ctx context.Context, symbol string) (entity.QuoteSnapshot, error) {
	q := url.Values{}
	q.Set("symbols", symbol)
	u := fmt.Sprintf("%s/v7/finance/quote?%s", y.cfg.BaseURL, q.Encode())

	var body dto.QuoteResponse
	if err := y.getJSON(ctx, u, &body); err != nil {
		return entity.QuoteSnapshot{}, err
	}
	if e := body.QuoteResponse.Error; e != nil {
		return entity.QuoteSnapshot{}, fmt.Errorf("yahoo: %s", e.Description)
	}
	if len(body.QuoteResponse.Result) == 0 {
		return entity.QuoteSnapshot{}, fmt.Errorf("yahoo quote %q: %w", symbol, domain.ErrEmptyResult)
	}

	r := body.QuoteResponse.Result[0]
	if r.RegularMarketVolume != nil && *r.RegularMarketVolume < 0 {
		slog.Warn("negative volume from upstream, dropping", "symbol", r.Symbol, "volume", *r.RegularMarketVolume)
		r.RegularMarketVolume = nil
	}
	return entity.QuoteSnapshot{
		Symbol:        r.Symbol,
		Price:         r.RegularMarketPrice,
		Change:        r.RegularMarketChange,
		ChangePercent: r.RegularMarketChangePercent,
		High:          r.RegularMarketDayHigh,
		Low:           r.RegularMarketDayLow,
		Open:          r.RegularMarketOpen,
		PreviousClose: r.RegularMarketPreviousClose,
		Volume:        r.RegularMarketVolume,
	}, nil
}

// GetHistory はv8 chartエンドポイントから日足の履歴を取得し、
// タイムスタンプと終値の並行配列をそのまま返します。
func (y *YahooMarket) GetHistory(ctx context.Context, symbol, rng, interval string) (entity.RawSeries, error) {
	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", interval)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	var body dto.ChartResponse
	if err := y.getJSON(ctx, u, &body); err != nil {
		return entity.RawSeries{}, err
	}
	if e := body.Chart.Error; e != nil {
		return entity.RawSeries{}, fmt.Errorf("yahoo: %s", e.Description)
	}
	if len(body.Chart.Result) == 0 {
		return entity.RawSeries{}, fmt.Errorf("yahoo chart %q: %w", symbol, domain.ErrEmptyResult)
	}

	r := body.Chart.Result[0]
	series := entity.RawSeries{Symbol: r.Meta.Symbol, Timestamps: r.Timestamp}
	// 終値はindicators.quote[0].closeに格納されている
	if len(r.Indicators.Quote) > 0 {
		series.Closes = r.Indicators.Quote[0].Close
	}
	return series, nil
}

// getJSON はGETリクエストを送信し、成功レスポンスのボディをoutにデコードします。
func (y *YahooMarket) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	res, err := y.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &domain.UpstreamError{Provider: providerName, StatusCode: res.StatusCode}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}
