// Package router wires HTTP routes to feature handlers.
package router

import (
	"github.com/gin-gonic/gin"

	quotehandler "dashboard_backend/internal/feature/quotes/transport/handler"
	symbollisthandler "dashboard_backend/internal/feature/symbollist/transport/handler"
	platformhandler "dashboard_backend/internal/platform/http/handler"
)

// NewRouter はgin.Engineを生成し、全エンドポイントを登録します。
func NewRouter(health *platformhandler.HealthHandler, quotes *quotehandler.QuoteHandler,
	symbols *symbollisthandler.SymbolHandler) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)

	api := r.Group("/api")
	{
		// クォート＋履歴（元ダッシュボードの /api/stockData と同じ形）
		api.GET("/stock-data", quotes.GetStockData)
		// 最終成功結果と最終エラー
		api.GET("/quotes/:symbol/state", quotes.GetState)
		// 検索ボックスの候補
		api.GET("/symbols", symbols.List)
	}

	return r
}
