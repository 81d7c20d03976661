// Package dto defines data transfer objects for the Alpha Vantage API responses.
package dto

import "github.com/shopspring/decimal"

// Status carries the advisory fields Alpha Vantage returns with HTTP 200
// instead of a data payload.
type Status struct {
	ErrorMessage string `json:"Error Message,omitempty"`
	Information  string `json:"Information,omitempty"`
	Note         string `json:"Note,omitempty"`
}

// GlobalQuoteResponse represents the JSON response from function=GLOBAL_QUOTE.
type GlobalQuoteResponse struct {
	Status
	GlobalQuote struct {
		Symbol           string              `json:"01. symbol"`
		Open             decimal.NullDecimal `json:"02. open"`
		High             decimal.NullDecimal `json:"03. high"`
		Low              decimal.NullDecimal `json:"04. low"`
		Price            decimal.NullDecimal `json:"05. price"`
		Volume           string              `json:"06. volume"`
		LatestTradingDay string              `json:"07. latest trading day"`
		PreviousClose    decimal.NullDecimal `json:"08. previous close"`
		Change           decimal.NullDecimal `json:"09. change"`
		ChangePercent    string              `json:"10. change percent"` // e.g. "1.2345%"
	} `json:"Global Quote"`
}

// DailySeriesResponse represents the JSON response from function=TIME_SERIES_DAILY.
type DailySeriesResponse struct {
	Status
	MetaData struct {
		Symbol string `json:"2. Symbol"`
	} `json:"Meta Data"`
	TimeSeries map[string]DailyBar `json:"Time Series (Daily)"`
}

// DailyBar is one day of the TIME_SERIES_DAILY map, keyed by YYYY-MM-DD.
type DailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}
