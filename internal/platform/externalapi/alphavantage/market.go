// Package alphavantage provides a client for the Alpha Vantage stock market API.
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dashboard_backend/internal/feature/quotes/domain"
	"dashboard_backend/internal/feature/quotes/domain/entity"
	"dashboard_backend/internal/feature/quotes/usecase"
	"dashboard_backend/internal/platform/externalapi/alphavantage/dto"
)

const providerName = "alphavantage"

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey  string        // API key, sent as the apikey query parameter
	BaseURL string        // Query endpoint (e.g., "https://www.alphavantage.co/query")
	Timeout time.Duration // HTTP request timeout
}

// AlphaVantageMarket はAlpha Vantage APIを使うMarketRepository実装です。
// 日付をキーにした日足マップを、Yahooと同じ並行配列形式に変換して返します。
type AlphaVantageMarket struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
}

var _ usecase.MarketRepository = (*AlphaVantageMarket)(nil)

// NewAlphaVantageMarket は新しいAlphaVantageMarketを生成します。
func NewAlphaVantageMarket(cfg Config, client *http.Client) *AlphaVantageMarket {
	return &AlphaVantageMarket{cfg: cfg, client: client, now: time.Now}
}

// GetQuote はGLOBAL_QUOTEから現在のクォートを取得します。
func (a *AlphaVantageMarket) GetQuote(ctx context.Context, symbol string) (entity.QuoteSnapshot, error) {
	var body dto.GlobalQuoteResponse
	if err := a.query(ctx, "GLOBAL_QUOTE", symbol, nil, &body); err != nil {
		return entity.QuoteSnapshot{}, err
	}
	if err := checkStatus(symbol, body.Status); err != nil {
		return entity.QuoteSnapshot{}, err
	}

	gq := body.GlobalQuote
	if gq.Symbol == "" {
		return entity.QuoteSnapshot{}, fmt.Errorf("alphavantage quote %q: %w", symbol, domain.ErrEmptyResult)
	}

	snap := entity.QuoteSnapshot{
		Symbol:        gq.Symbol,
		Price:         gq.Price,
		Change:        gq.Change,
		ChangePercent: parsePercent(gq.ChangePercent),
		High:          gq.High,
		Low:           gq.Low,
		Open:          gq.Open,
		PreviousClose: gq.PreviousClose,
	}
	if v, err := strconv.ParseInt(gq.Volume, 10, 64); err == nil && v >= 0 {
		snap.Volume = &v
	}
	return snap, nil
}

// GetHistory はTIME_SERIES_DAILYから日足を取得し、日付昇順の並行配列に変換します。
// rngより古い日付は除外されます。intervalは日足のみサポートします。
func (a *AlphaVantageMarket) GetHistory(ctx context.Context, symbol, rng, interval string) (entity.RawSeries, error) {
	if interval != "1d" {
		return entity.RawSeries{}, fmt.Errorf("alphavantage: unsupported interval %q", interval)
	}

	params := url.Values{}
	params.Set("outputsize", outputSize(rng))

	var body dto.DailySeriesResponse
	if err := a.query(ctx, "TIME_SERIES_DAILY", symbol, params, &body); err != nil {
		return entity.RawSeries{}, err
	}
	if err := checkStatus(symbol, body.Status); err != nil {
		return entity.RawSeries{}, err
	}
	if len(body.TimeSeries) == 0 {
		return entity.RawSeries{}, fmt.Errorf("alphavantage series %q: %w", symbol, domain.ErrEmptyResult)
	}

	start, bounded := rangeStart(rng, a.now())
	dates := make([]time.Time, 0, len(body.TimeSeries))
	byDate := make(map[time.Time]dto.DailyBar, len(body.TimeSeries))
	for k, bar := range body.TimeSeries {
		d, err := time.Parse(time.DateOnly, k)
		if err != nil {
			return entity.RawSeries{}, fmt.Errorf("parse date %q: %w", k, err)
		}
		if bounded && d.Before(start) {
			continue
		}
		dates = append(dates, d)
		byDate[d] = bar
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	series := entity.RawSeries{
		Symbol:     body.MetaData.Symbol,
		Timestamps: make([]int64, 0, len(dates)),
		Closes:     make([]decimal.NullDecimal, 0, len(dates)),
	}
	for _, d := range dates {
		series.Timestamps = append(series.Timestamps, d.Unix())
		c, err := decimal.NewFromString(byDate[d].Close)
		if err != nil {
			slog.Warn("unparseable close from upstream", "symbol", symbol, "date", d.Format(time.DateOnly), "error", err)
			series.Closes = append(series.Closes, decimal.NullDecimal{})
			continue
		}
		series.Closes = append(series.Closes, decimal.NewNullDecimal(c))
	}
	return series, nil
}

// query はAlpha Vantageのクエリエンドポイントを呼び出し、レスポンスをoutにデコードします。
func (a *AlphaVantageMarket) query(ctx context.Context, function, symbol string, extra url.Values, out any) error {
	q := url.Values{}
	for k, vs := range extra {
		q[k] = vs
	}
	q.Set("function", function)
	q.Set("symbol", symbol)
	q.Set("apikey", a.cfg.APIKey)
	u := fmt.Sprintf("%s?%s", a.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	res, err := a.client.Do(req)
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
		return fmt.Errorf("alphavantage decode: %w", err)
	}
	return nil
}

// checkStatus はHTTP 200で返される通知メッセージをエラーに変換します。
// Error Messageは不明な銘柄を意味し、Information/Noteは呼び出し制限などの拒否を意味します。
func checkStatus(symbol string, s dto.Status) error {
	switch {
	case s.ErrorMessage != "":
		return fmt.Errorf("alphavantage %q: %s: %w", symbol, s.ErrorMessage, domain.ErrEmptyResult)
	case s.Information != "":
		return fmt.Errorf("alphavantage: %s", s.Information)
	case s.Note != "":
		return fmt.Errorf("alphavantage: %s", s.Note)
	}
	return nil
}

// parsePercent converts "1.2345%" into 1.2345.
func parsePercent(s string) decimal.NullDecimal {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// outputSize picks the smallest payload that covers rng. compact holds the
// latest 100 sessions.
func outputSize(rng string) string {
	switch rng {
	case "5d", "1mo", "3mo":
		return "compact"
	}
	return "full"
}

// rangeStart mirrors the chart range labels used by the Yahoo adapter.
func rangeStart(rng string, now time.Time) (time.Time, bool) {
	now = now.UTC()
	var t time.Time
	switch rng {
	case "5d":
		t = now.AddDate(0, 0, -5)
	case "1mo":
		t = now.AddDate(0, -1, 0)
	case "3mo":
		t = now.AddDate(0, -3, 0)
	case "6mo":
		t = now.AddDate(0, -6, 0)
	case "1y":
		t = now.AddDate(-1, 0, 0)
	case "2y":
		t = now.AddDate(-2, 0, 0)
	case "5y":
		t = now.AddDate(-5, 0, 0)
	default:
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}
