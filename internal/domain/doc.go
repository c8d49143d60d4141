// Package domain models National Weather Service (NWS) forecast data and the
// per-date summaries published to the calendar feed.
//
// # Data Source
//
// Forecasts come from the NWS API (https://api.weather.gov). A point lookup
// (/points/{lat},{lon}) resolves a coordinate to its gridpoint forecast
// endpoints; those return an ordered list of forecast periods at two
// granularities:
//
//   - hourly: one period per hour, carrying temperature, wind speed, and
//     probability of precipitation.
//   - daily: one daytime and one overnight period per date, carrying a
//     detailed textual forecast.
//
// # NWS Data Conventions
//
// Period start times are RFC 3339 timestamps in the gridpoint's local zone,
// e.g. "2024-06-01T13:00:00-05:00". The calendar date of a period is the
// text before the "T" separator; no timezone conversion is performed, so a
// period belongs to the local calendar date the API reports for it.
//
// Wind speed is a free-text field, e.g. "10 mph" or "5 to 10 mph". Only the
// leading integer is used. Text without a leading integer is rejected as a
// [ParseError] rather than folded in as zero.
//
// Probability of precipitation is a nullable value object; the API omits the
// value when the chance is effectively zero, so a missing value folds in as 0.
//
// # Aggregation
//
// Hourly periods fold into one [DayStats] per date (min/max of temperature
// and wind, max of precipitation chance). Daily periods fold into one
// [DayText] per date, with the IsDaytime flag selecting the Day or Night
// slot. Both folds are commutative: input order never changes the result,
// only the order in which dates first appear.
package domain
