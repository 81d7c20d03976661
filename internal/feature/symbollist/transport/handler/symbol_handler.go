// Package handler はsymbollistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dashboard_backend/internal/feature/symbollist/domain/entity"
	"dashboard_backend/internal/feature/symbollist/transport/http/dto"
)

// SymbolUsecase は銘柄情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	SearchSymbols(ctx context.Context, query string, limit int) ([]entity.Symbol, error)
}

// SymbolHandler は銘柄情報に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List は検索ボックスの候補となる有効な銘柄の一覧を返すAPIです。
// qが指定された場合はコードの前方一致・名称の部分一致で絞り込みます。
// Usecaseでエラーが発生した場合は500 Internal Server Errorを返します。
//
// エンドポイント例:
// GET /api/symbols?q=AA&limit=10
func (h *SymbolHandler) List(c *gin.Context) {
	// 不正なlimitは0としてusecaseに渡し、デフォルト値に置き換えさせる
	limit, _ := strconv.Atoi(c.Query("limit"))

	symbols, err := h.uc.SearchSymbols(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		slog.Error("failed to search symbols", "query", c.Query("q"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{Code: s.Code, Name: s.Name, Market: s.Market})
	}
	c.JSON(http.StatusOK, out)
}
