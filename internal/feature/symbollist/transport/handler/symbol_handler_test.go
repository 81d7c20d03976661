package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"dashboard_backend/internal/feature/symbollist/domain/entity"
)

// mockSymbolUsecase はSymbolUsecaseインターフェースのモック実装です。
type mockSymbolUsecase struct {
	SearchSymbolsFunc func(ctx context.Context, query string, limit int) ([]entity.Symbol, error)
}

func (m *mockSymbolUsecase) SearchSymbols(ctx context.Context, query string, limit int) ([]entity.Symbol, error) {
	if m.SearchSymbolsFunc != nil {
		return m.SearchSymbolsFunc(ctx, query, limit)
	}
	return nil, nil
}

// TestNewSymbolHandler はNewSymbolHandlerコンストラクタが正しくインスタンスを生成することを検証します。
func TestNewSymbolHandler(t *testing.T) {
	t.Parallel()

	mockUC := &mockSymbolUsecase{}
	handler := NewSymbolHandler(mockUC)

	assert.NotNil(t, handler, "handler should not be nil")
	assert.NotNil(t, handler.uc, "usecase should not be nil")
}

// TestSymbolHandler_List はListハンドラーの各種シナリオをテーブル駆動テストで検証します。
func TestSymbolHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		mockSearch     func(ctx context.Context, query string, limit int) ([]entity.Symbol, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: query and limit are forwarded",
			url:  "/api/symbols?q=aa&limit=5",
			mockSearch: func(_ context.Context, query string, limit int) ([]entity.Symbol, error) {
				assert.Equal(t, "aa", query)
				assert.Equal(t, 5, limit)
				return []entity.Symbol{
					{ID: 1, Code: "AAPL", Name: "Apple Inc.", Market: "NASDAQ", IsActive: true, SortKey: 1},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"code":"AAPL","name":"Apple Inc.","market":"NASDAQ"}]`,
		},
		{
			name: "success: invalid limit is passed as zero",
			url:  "/api/symbols?limit=abc",
			mockSearch: func(_ context.Context, query string, limit int) ([]entity.Symbol, error) {
				assert.Equal(t, "", query)
				assert.Equal(t, 0, limit)
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "error: usecase failure",
			url:  "/api/symbols?q=x",
			mockSearch: func(context.Context, string, int) ([]entity.Symbol, error) {
				return nil, errors.New("database connection failed")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"database connection failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSymbolHandler(&mockSymbolUsecase{SearchSymbolsFunc: tt.mockSearch})
			router := gin.New()
			router.GET("/api/symbols", h.List)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
