package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ForecastPeriod is one time-bucketed forecast record from the NWS API,
// normalized from either the hourly or the daily endpoint. Immutable once
// fetched.
type ForecastPeriod struct {
	StartTime        string // RFC 3339, gridpoint-local zone
	IsDaytime        bool
	Temperature      int
	WindSpeed        string // free text, e.g. "10 mph"
	PrecipChance     *int   // nil when the API omits the value
	DetailedForecast string
}

// Forecast holds both period lists for one coordinate.
type Forecast struct {
	Hourly []ForecastPeriod
	Daily  []ForecastPeriod
}

// ParseError reports a forecast field whose value could not be interpreted.
// Malformed upstream data fails the run loudly instead of propagating a
// bogus number into the folds.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: unusable value %q", e.Field, e.Value)
}

// DateKey extracts the calendar date (YYYY-MM-DD) from a period start time.
// The date is the text before the "T" separator; no timezone conversion.
func DateKey(startTime string) (string, error) {
	date, _, ok := strings.Cut(startTime, "T")
	if !ok || date == "" {
		return "", &ParseError{Field: "startTime", Value: startTime}
	}
	return date, nil
}

// ParseWindSpeed extracts the leading integer from NWS wind speed text such
// as "10 mph" or "5 to 10 mph".
func ParseWindSpeed(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	end := 0
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, &ParseError{Field: "windSpeed", Value: text}
	}
	n, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return 0, &ParseError{Field: "windSpeed", Value: text}
	}
	return n, nil
}

// precipOrZero treats a missing probability-of-precipitation value as 0.
func precipOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
