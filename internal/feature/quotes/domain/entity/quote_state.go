package entity

import "time"

// FetchFailure records the most recent failed fetch attempt for a symbol.
type FetchFailure struct {
	Kind    string    `json:"kind"`    // transport, empty-result or shape-mismatch
	Message string    `json:"message"` // Internal diagnostic, not shown to end users
	At      time.Time `json:"at"`
}

// QuoteState keeps the last successful snapshot apart from the last error so
// a failed refresh does not discard a previously rendered chart.
type QuoteState struct {
	Symbol    string         `json:"symbol"`
	LastGood  *QuoteSnapshot `json:"last_good,omitempty"`
	LastError *FetchFailure  `json:"last_error,omitempty"`
}
