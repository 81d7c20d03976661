// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"

	"dashboard_backend/internal/feature/quotes/usecase"
	"dashboard_backend/internal/platform/config"
	"dashboard_backend/internal/platform/externalapi/alphavantage"
	"dashboard_backend/internal/platform/externalapi/yahoo"
	infrahttp "dashboard_backend/internal/platform/http"
)

// NewMarket creates the MarketRepository selected by upstream.provider,
// with an HTTP client carrying the configured credential.
func NewMarket(cfg *config.Config) (usecase.MarketRepository, error) {
	switch cfg.Upstream.Provider {
	case config.ProviderYahoo:
		ycfg := yahoo.Config{BaseURL: cfg.Yahoo.BaseURL, Timeout: cfg.Upstream.Timeout}
		client := infrahttp.NewHTTPClient(ycfg.Timeout,
			infrahttp.WithBearerToken(cfg.Yahoo.APIKey),
			infrahttp.WithUserAgent(cfg.Upstream.UserAgent),
		)
		return yahoo.NewYahooMarket(ycfg, client), nil
	case config.ProviderAlphaVantage:
		acfg := alphavantage.Config{
			APIKey:  cfg.AlphaVantage.APIKey,
			BaseURL: cfg.AlphaVantage.BaseURL,
			Timeout: cfg.Upstream.Timeout,
		}
		client := infrahttp.NewHTTPClient(acfg.Timeout, infrahttp.WithUserAgent(cfg.Upstream.UserAgent))
		return alphavantage.NewAlphaVantageMarket(acfg, client), nil
	}
	return nil, fmt.Errorf("unknown upstream provider %q", cfg.Upstream.Provider)
}
