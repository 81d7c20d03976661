// Package entity defines the domain models for the quotes feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteSnapshot represents the current trading state of one symbol together
// with its daily closing price history.
//
// Every numeric field is independently optional. Upstream providers omit or
// null out fields for thinly traded or delisted symbols, so absence is carried
// as an invalid NullDecimal (or nil Volume) rather than a zero value.
type QuoteSnapshot struct {
	Symbol        string              // Ticker echoed by the upstream provider (e.g., "AAPL")
	Price         decimal.NullDecimal // Regular market price
	Change        decimal.NullDecimal // Absolute change from previous close
	ChangePercent decimal.NullDecimal // Percentage change from previous close
	High          decimal.NullDecimal // Day high
	Low           decimal.NullDecimal // Day low
	Open          decimal.NullDecimal // Day open
	PreviousClose decimal.NullDecimal // Previous session close
	Volume        *int64              // Day volume, nil when unknown
	History       []HistoricalPoint   // Daily closes, ascending as delivered upstream
	FetchedAt     time.Time           // When the snapshot was assembled
}

// HistoricalPoint is one (calendar date, closing price) pair.
type HistoricalPoint struct {
	Date  time.Time           // UTC midnight of the trading day
	Price decimal.NullDecimal // Closing price, invalid when the session has no close
}

// DateString formats the point's date as YYYY-MM-DD.
func (p HistoricalPoint) DateString() string {
	return p.Date.UTC().Format(time.DateOnly)
}

// RawSeries is the historical series exactly as upstream chart endpoints
// deliver it: two parallel arrays matched by index.
type RawSeries struct {
	Symbol     string
	Timestamps []int64               // Seconds since the Unix epoch
	Closes     []decimal.NullDecimal // Closing prices, nulls allowed
}

// DayOf truncates an epoch timestamp to its UTC calendar date.
func DayOf(epochSeconds int64) time.Time {
	t := time.Unix(epochSeconds, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
