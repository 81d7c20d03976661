// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// checkTimeout は依存先1件あたりの疎通確認の最大時間です。
const checkTimeout = 2 * time.Second

// Checker は依存先（Redis, DBなど）の疎通を確認する関数です。
type Checker func(ctx context.Context) error

// HealthHandler は /healthz エンドポイントを処理します。
type HealthHandler struct {
	checks map[string]Checker
}

// NewHealthHandler は名前付きの依存先チェックを持つHealthHandlerを生成します。
// checksがnilの場合はプロセスの生存のみを報告します。
func NewHealthHandler(checks map[string]Checker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health はサービスヘルスチェックを処理します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
// 依存先のいずれかが失敗した場合は503と失敗内容を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	status, results := h.run(c.Request.Context())
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	if c.Request.Method == http.MethodHead {
		c.Status(code)
		return
	}

	body := gin.H{"status": status}
	if len(results) > 0 {
		body["checks"] = results
	}
	c.JSON(code, body)
}

// run は登録された全チェックを名前順に実行します。
func (h *HealthHandler) run(ctx context.Context) (string, map[string]string) {
	if len(h.checks) == 0 {
		return "ok", nil
	}
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "ok"
	results := make(map[string]string, len(names))
	for _, name := range names {
		cctx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := h.checks[name](cctx)
		cancel()
		if err != nil {
			slog.Warn("health check failed", "dependency", name, "error", err)
			results[name] = err.Error()
			status = "degraded"
			continue
		}
		results[name] = "ok"
	}
	return status, results
}
