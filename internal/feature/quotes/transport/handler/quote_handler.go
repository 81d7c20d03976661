// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dashboard_backend/internal/feature/quotes/domain"
	"dashboard_backend/internal/feature/quotes/domain/entity"
	"dashboard_backend/internal/feature/quotes/transport/http/dto"
)

// ClientIDHeader identifies the dashboard widget instance issuing a request.
// A new request with the same ID abandons the previous in-flight fetch.
const ClientIDHeader = "X-Client-ID"

// QuoteUsecase はクォート取得のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type QuoteUsecase interface {
	Submit(ctx context.Context, clientKey, symbol string) (*entity.QuoteSnapshot, error)
	State(ctx context.Context, symbol string) (entity.QuoteState, error)
}

// QuoteHandler はクォートのHTTPリクエストを処理します。
type QuoteHandler struct {
	uc  QuoteUsecase
	now func() time.Time
}

// NewQuoteHandler は指定されたusecaseでQuoteHandlerの新しいインスタンスを生成します。
func NewQuoteHandler(uc QuoteUsecase) *QuoteHandler {
	return &QuoteHandler{uc: uc, now: time.Now}
}

// GetStockData は銘柄のクォートと指定期間の履歴をJSONで返します。
//
// エンドポイント例:
// GET /api/stock-data?symbol=AAPL&range=3M
func (h *QuoteHandler) GetStockData(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
		return
	}
	rng, err := entity.ParseTimeRange(c.Query("range"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.uc.Submit(c.Request.Context(), c.GetHeader(ClientIDHeader), symbol)
	if err != nil {
		h.respondFetchError(c, symbol, err)
		return
	}

	history := entity.FilterByRange(snap.History, rng, h.now())
	c.JSON(http.StatusOK, dto.NewQuoteResponse(snap, rng, history))
}

// GetState は銘柄の最終成功結果と最終エラーを返します。
// 最終成功結果の履歴は全期間（ALL）で返します。
//
// エンドポイント例:
// GET /api/quotes/AAPL/state
func (h *QuoteHandler) GetState(c *gin.Context) {
	state, err := h.uc.State(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		if errors.Is(err, domain.ErrSymbolRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
			return
		}
		slog.Error("failed to load quote state", "symbol", c.Param("symbol"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load state"})
		return
	}

	out := dto.QuoteStateResponse{Symbol: state.Symbol}
	if state.LastGood != nil {
		q := dto.NewQuoteResponse(state.LastGood, entity.RangeAll, state.LastGood.History)
		out.LastGood = &q
	}
	if state.LastError != nil {
		out.LastError = &dto.FetchFailureResponse{Kind: state.LastError.Kind, At: state.LastError.At}
	}
	c.JSON(http.StatusOK, out)
}

// respondFetchError は内部の失敗種別をログに残し、利用者には単一のメッセージを返します。
func (h *QuoteHandler) respondFetchError(c *gin.Context, symbol string, err error) {
	switch {
	case errors.Is(err, domain.ErrSymbolRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
		return
	case errors.Is(err, context.Canceled):
		// クライアントが離脱したか、新しい要求に置き換えられた
		slog.Info("quote fetch abandoned", "symbol", symbol)
		c.Status(499)
		return
	}

	kind := string(domain.KindTransport)
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		kind = string(fe.Kind)
	}
	slog.Warn("quote fetch failed", "symbol", symbol, "kind", kind, "error", err, "remote_addr", c.ClientIP())
	c.JSON(http.StatusBadGateway, gin.H{"error": domain.ErrFetchFailed.Error()})
}
