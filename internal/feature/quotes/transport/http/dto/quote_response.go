// Package dto defines data transfer objects for the quotes HTTP API.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"dashboard_backend/internal/feature/quotes/domain/entity"
)

// HistoricalPointResponse は履歴の1点です。
type HistoricalPointResponse struct {
	Date  string   `json:"date"`  // YYYY-MM-DD (UTC)
	Price *float64 `json:"price"` // 終値、欠損時はnull
}

// QuoteResponse はクォートと範囲で絞り込んだ履歴のレスポンスDTOです。
// 欠損フィールドはnullとして返し、クライアント側でプレースホルダー表示します。
type QuoteResponse struct {
	Symbol         string                    `json:"symbol"`
	Price          *float64                  `json:"price"`
	Change         *float64                  `json:"change"`
	ChangePercent  *float64                  `json:"changePercent"`
	High           *float64                  `json:"high"`
	Low            *float64                  `json:"low"`
	Open           *float64                  `json:"open"`
	PreviousClose  *float64                  `json:"previousClose"`
	Volume         *int64                    `json:"volume"`
	Range          string                    `json:"range"`
	HistoricalData []HistoricalPointResponse `json:"historicalData"`
}

// FetchFailureResponse は最終エラーのDTOです。
type FetchFailureResponse struct {
	Kind string    `json:"kind"`
	At   time.Time `json:"at"`
}

// QuoteStateResponse は最終成功結果と最終エラーのレスポンスDTOです。
type QuoteStateResponse struct {
	Symbol    string                `json:"symbol"`
	LastGood  *QuoteResponse        `json:"lastGood"`
	LastError *FetchFailureResponse `json:"lastError"`
}

// NewQuoteResponse はスナップショットと絞り込み済みの履歴からDTOを生成します。
func NewQuoteResponse(s *entity.QuoteSnapshot, r entity.TimeRange, history []entity.HistoricalPoint) QuoteResponse {
	out := QuoteResponse{
		Symbol:         s.Symbol,
		Price:          floatOrNil(s.Price),
		Change:         floatOrNil(s.Change),
		ChangePercent:  floatOrNil(s.ChangePercent),
		High:           floatOrNil(s.High),
		Low:            floatOrNil(s.Low),
		Open:           floatOrNil(s.Open),
		PreviousClose:  floatOrNil(s.PreviousClose),
		Volume:         s.Volume,
		Range:          string(r),
		HistoricalData: make([]HistoricalPointResponse, 0, len(history)),
	}
	for _, p := range history {
		out.HistoricalData = append(out.HistoricalData, HistoricalPointResponse{
			Date:  p.DateString(),
			Price: floatOrNil(p.Price),
		})
	}
	return out
}

func floatOrNil(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}
