// Package dto defines data transfer objects for the Yahoo Finance API responses.
package dto

import "github.com/shopspring/decimal"

// QuoteResponse represents the JSON response from the v7 quote endpoint.
type QuoteResponse struct {
	QuoteResponse struct {
		Result []QuoteResult `json:"result"`
		Error  *APIError     `json:"error"`
	} `json:"quoteResponse"`
}

// QuoteResult is one entry of the quote result array.
// Null and missing numbers decode into invalid NullDecimals.
type QuoteResult struct {
	Symbol                     string              `json:"symbol"`
	RegularMarketPrice         decimal.NullDecimal `json:"regularMarketPrice"`
	RegularMarketChange        decimal.NullDecimal `json:"regularMarketChange"`
	RegularMarketChangePercent decimal.NullDecimal `json:"regularMarketChangePercent"`
	RegularMarketDayHigh       decimal.NullDecimal `json:"regularMarketDayHigh"`
	RegularMarketDayLow        decimal.NullDecimal `json:"regularMarketDayLow"`
	RegularMarketOpen          decimal.NullDecimal `json:"regularMarketOpen"`
	RegularMarketPreviousClose decimal.NullDecimal `json:"regularMarketPreviousClose"`
	RegularMarketVolume        *int64              `json:"regularMarketVolume"`
}

// APIError is the error object Yahoo embeds in otherwise successful bodies.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
