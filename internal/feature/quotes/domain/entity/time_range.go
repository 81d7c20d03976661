package entity

import (
	"errors"
	"strings"
	"time"
)

// TimeRange is a trailing calendar window over a historical series.
type TimeRange string

const (
	Range1W  TimeRange = "1W"
	Range1M  TimeRange = "1M"
	Range3M  TimeRange = "3M"
	Range6M  TimeRange = "6M"
	Range1Y  TimeRange = "1Y"
	RangeAll TimeRange = "ALL"

	// DefaultTimeRange is used when the caller does not pick a window.
	DefaultTimeRange = Range1M
)

// ErrInvalidTimeRange is returned for labels outside the supported set.
var ErrInvalidTimeRange = errors.New("invalid time range")

// TimeRanges lists the supported labels in display order.
var TimeRanges = []TimeRange{Range1W, Range1M, Range3M, Range6M, Range1Y, RangeAll}

// ParseTimeRange converts a label such as "3m" or "ALL" into a TimeRange.
// An empty label yields DefaultTimeRange.
func ParseTimeRange(s string) (TimeRange, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultTimeRange, nil
	}
	for _, r := range TimeRanges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", ErrInvalidTimeRange
}

// Cutoff returns the start instant of the window ending at now. It keeps
// now's time of day, so a point dated on the cutoff day (UTC midnight) falls
// outside the window unless now is itself midnight. ok is false for RangeAll
// and unknown labels.
func (r TimeRange) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	now = now.UTC()
	switch r {
	case Range1W:
		cutoff = now.AddDate(0, 0, -7)
	case Range1M:
		cutoff = now.AddDate(0, -1, 0)
	case Range3M:
		cutoff = now.AddDate(0, -3, 0)
	case Range6M:
		cutoff = now.AddDate(0, -6, 0)
	case Range1Y:
		cutoff = now.AddDate(-1, 0, 0)
	default:
		return time.Time{}, false
	}
	return cutoff, true
}

// FilterByRange returns the points dated on or after the range cutoff,
// preserving input order. RangeAll returns series unchanged.
func FilterByRange(series []HistoricalPoint, r TimeRange, now time.Time) []HistoricalPoint {
	cutoff, ok := r.Cutoff(now)
	if !ok {
		return series
	}
	out := make([]HistoricalPoint, 0, len(series))
	for _, p := range series {
		if !p.Date.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}
