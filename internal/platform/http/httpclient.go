package http

import (
	"net"
	"net/http"
	"time"
)

// Option は外部API用HTTPクライアントの追加設定です。
type Option func(*headerTransport)

// WithBearerToken は全リクエストに Authorization: Bearer <token> を付与します。
// tokenが空の場合は何もしません。
func WithBearerToken(token string) Option {
	return func(t *headerTransport) {
		if token != "" {
			t.headers.Set("Authorization", "Bearer "+token)
		}
	}
}

// WithUserAgent はUser-Agentヘッダーを設定します。
func WithUserAgent(ua string) Option {
	return func(t *headerTransport) {
		if ua != "" {
			t.headers.Set("User-Agent", ua)
		}
	}
}

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト（デフォルトより短い）
//   - MaxIdleConns / IdleConnTimeout: 接続の再利用
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: リクエスト全体のタイムアウト（呼び出し元から渡される）
//
// 認証情報はソースに埋め込まず、WithBearerTokenで設定値から注入すること。
func NewHTTPClient(timeout time.Duration, opts ...Option) *http.Client {
	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	t := &headerTransport{base: base, headers: http.Header{}}
	for _, opt := range opts {
		opt(t)
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

// headerTransport adds fixed headers to every outgoing request without
// overriding headers the caller already set.
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) == 0 {
		return t.base.RoundTrip(req)
	}
	// RoundTripper must not mutate the caller's request
	r := req.Clone(req.Context())
	for k, vs := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header[k] = vs
		}
	}
	return t.base.RoundTrip(r)
}
