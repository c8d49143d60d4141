package domain

import "strings"

// DayStats summarizes the hourly periods of one calendar date. Once at least
// one period has been folded in, HighTemp >= LowTemp and HighWind >= LowWind.
type DayStats struct {
	Date      string
	HighTemp  int
	LowTemp   int
	HighWind  int
	LowWind   int
	MaxPrecip int
}

// DayText holds the detailed day and night forecast texts for one calendar
// date. The real-world input shape has one daytime and one overnight period
// per date; a duplicate flag overwrites its slot rather than appending.
type DayText struct {
	Day   string
	Night string
}

// Description renders the combined "Day: ... Night: ..." text, omitting an
// empty slot.
func (t DayText) Description() string {
	parts := make([]string, 0, 2)
	if t.Day != "" {
		parts = append(parts, "Day: "+t.Day)
	}
	if t.Night != "" {
		parts = append(parts, "Night: "+t.Night)
	}
	return strings.Join(parts, " ")
}

// DailySummary pairs the per-date stats and texts in first-seen date order.
type DailySummary struct {
	dates []string
	stats map[string]DayStats
	texts map[string]DayText
}

// Dates returns the aggregated calendar dates in the order they first
// appeared in the hourly periods.
func (s *DailySummary) Dates() []string {
	return s.dates
}

// Stats returns the hourly fold result for a date.
func (s *DailySummary) Stats(date string) (DayStats, bool) {
	st, ok := s.stats[date]
	return st, ok
}

// Text returns the daily fold result for a date. A date with hourly data but
// no daily periods yields a zero DayText.
func (s *DailySummary) Text(date string) DayText {
	return s.texts[date]
}

// Aggregate folds both period lists into per-date summaries. Hourly periods
// drive the date set; daily periods contribute only text. A malformed
// timestamp or wind speed aborts the fold with a ParseError.
func Aggregate(fc Forecast) (*DailySummary, error) {
	s := &DailySummary{
		stats: make(map[string]DayStats),
		texts: make(map[string]DayText),
	}

	for _, p := range fc.Hourly {
		date, err := DateKey(p.StartTime)
		if err != nil {
			return nil, err
		}
		wind, err := ParseWindSpeed(p.WindSpeed)
		if err != nil {
			return nil, err
		}
		precip := precipOrZero(p.PrecipChance)

		st, ok := s.stats[date]
		if !ok {
			s.dates = append(s.dates, date)
			st = DayStats{
				Date:      date,
				HighTemp:  p.Temperature,
				LowTemp:   p.Temperature,
				HighWind:  wind,
				LowWind:   wind,
				MaxPrecip: precip,
			}
		} else {
			st.HighTemp = max(st.HighTemp, p.Temperature)
			st.LowTemp = min(st.LowTemp, p.Temperature)
			st.HighWind = max(st.HighWind, wind)
			st.LowWind = min(st.LowWind, wind)
			st.MaxPrecip = max(st.MaxPrecip, precip)
		}
		s.stats[date] = st
	}

	for _, p := range fc.Daily {
		date, err := DateKey(p.StartTime)
		if err != nil {
			return nil, err
		}
		t := s.texts[date]
		if p.IsDaytime {
			t.Day = p.DetailedForecast
		} else {
			t.Night = p.DetailedForecast
		}
		s.texts[date] = t
	}

	return s, nil
}
