// Package domain defines domain-level errors for the quotes feature.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSymbolRequired is returned when a fetch is requested without a ticker.
	ErrSymbolRequired = errors.New("symbol is required")

	// ErrFetchFailed is the single failure every FetchError unwraps to.
	// Callers that only need to report "it did not work" should test for this.
	ErrFetchFailed = errors.New("failed to fetch data")
)

// FetchErrorKind classifies why a quote fetch failed. The kind is kept for
// diagnostics only; end users always see ErrFetchFailed's message.
type FetchErrorKind string

const (
	// KindTransport means an upstream call failed at the HTTP level.
	KindTransport FetchErrorKind = "transport"
	// KindEmptyResult means an upstream call succeeded with no usable result row.
	KindEmptyResult FetchErrorKind = "empty-result"
	// KindShapeMismatch means the history timestamp and close arrays differ in length.
	KindShapeMismatch FetchErrorKind = "shape-mismatch"
)

// FetchError is returned by the quote usecase for any failed fetch.
type FetchError struct {
	Kind   FetchErrorKind
	Symbol string
	Err    error
}

// NewFetchError wraps err with a kind and symbol.
func NewFetchError(kind FetchErrorKind, symbol string, err error) *FetchError {
	return &FetchError{Kind: kind, Symbol: symbol, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: %s", e.Symbol, e.Kind)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.Symbol, e.Kind, e.Err)
}

// Unwrap exposes both the cause and ErrFetchFailed to errors.Is.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetchFailed}
	}
	return []error{ErrFetchFailed, e.Err}
}

// UpstreamError is returned by market adapters for non-success responses.
type UpstreamError struct {
	Provider   string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s http %d", e.Provider, e.StatusCode)
}

// ErrEmptyResult is returned by market adapters when a well-formed response
// carries no result row for the requested symbol.
var ErrEmptyResult = errors.New("no data found")
