package exporter

import (
	"fmt"
	"strconv"
	"time"
)

// FormatFloat formats a float64 value for CSV output. Shortest round-trip
// representation so values survive a write/read cycle unchanged.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FormatFloatPtr formats an optional float; nil becomes an empty cell so
// missing stays distinguishable from zero.
func FormatFloatPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return FormatFloat(*f)
}

// FormatInt formats an int64 value for CSV output
func FormatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

// FormatBool formats a boolean value for CSV output
func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// FormatDate formats a date cell as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseFloatPtr parses an optional float cell; empty cells map to nil.
func ParseFloatPtr(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
