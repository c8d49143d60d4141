package domain_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kujhawk94/noaa2ical/internal/domain"
)

func intp(n int) *int { return &n }

func hourlyPeriod(start string, temp int, wind string, precip *int) domain.ForecastPeriod {
	return domain.ForecastPeriod{
		StartTime:    start,
		Temperature:  temp,
		WindSpeed:    wind,
		PrecipChance: precip,
	}
}

func TestAggregate_HourlyFold(t *testing.T) {
	fc := domain.Forecast{
		Hourly: []domain.ForecastPeriod{
			hourlyPeriod("2024-06-01T08:00:00-05:00", 60, "5 mph", intp(10)),
			hourlyPeriod("2024-06-01T14:00:00-05:00", 75, "12 mph", intp(30)),
			hourlyPeriod("2024-06-02T08:00:00-05:00", 65, "8 mph", intp(0)),
		},
	}

	s, err := domain.Aggregate(fc)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-06-01", "2024-06-02"}, s.Dates())

	st, ok := s.Stats("2024-06-01")
	require.True(t, ok)
	want := domain.DayStats{
		Date:      "2024-06-01",
		HighTemp:  75,
		LowTemp:   60,
		HighWind:  12,
		LowWind:   5,
		MaxPrecip: 30,
	}
	if diff := cmp.Diff(want, st); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_SinglePeriodSeedsHighAndLow(t *testing.T) {
	fc := domain.Forecast{
		Hourly: []domain.ForecastPeriod{
			hourlyPeriod("2024-06-01T08:00:00-05:00", 62, "7 mph", nil),
		},
	}

	s, err := domain.Aggregate(fc)
	require.NoError(t, err)

	st, ok := s.Stats("2024-06-01")
	require.True(t, ok)
	assert.Equal(t, 62, st.HighTemp)
	assert.Equal(t, 62, st.LowTemp)
	assert.Equal(t, 7, st.HighWind)
	assert.Equal(t, 7, st.LowWind)
	assert.Equal(t, 0, st.MaxPrecip, "missing precipitation value folds in as 0")
}

// The fold must be commutative: shuffling the input periods never changes the
// per-date result, only the date order.
func TestAggregate_OrderIndependent(t *testing.T) {
	periods := []domain.ForecastPeriod{
		hourlyPeriod("2024-06-01T02:00:00-05:00", 55, "3 mph", intp(5)),
		hourlyPeriod("2024-06-01T14:00:00-05:00", 78, "15 mph", intp(40)),
		hourlyPeriod("2024-06-01T20:00:00-05:00", 66, "9 mph", nil),
		hourlyPeriod("2024-06-02T02:00:00-05:00", 58, "6 mph", intp(20)),
	}
	reversed := make([]domain.ForecastPeriod, len(periods))
	for i, p := range periods {
		reversed[len(periods)-1-i] = p
	}

	fwd, err := domain.Aggregate(domain.Forecast{Hourly: periods})
	require.NoError(t, err)
	rev, err := domain.Aggregate(domain.Forecast{Hourly: reversed})
	require.NoError(t, err)

	for _, date := range fwd.Dates() {
		f, _ := fwd.Stats(date)
		r, _ := rev.Stats(date)
		assert.Equal(t, f, r, "stats for %s differ under reversed input", date)
	}
}

func TestAggregate_BoundsHoldForEveryInput(t *testing.T) {
	temps := []int{61, 59, 73, 68, 70, 64}
	fc := domain.Forecast{}
	for i, temp := range temps {
		fc.Hourly = append(fc.Hourly,
			hourlyPeriod(fmt.Sprintf("2024-06-01T%02d:00:00-05:00", i), temp, fmt.Sprintf("%d mph", i+1), nil))
	}

	s, err := domain.Aggregate(fc)
	require.NoError(t, err)
	st, _ := s.Stats("2024-06-01")

	for _, temp := range temps {
		assert.GreaterOrEqual(t, st.HighTemp, temp)
		assert.LessOrEqual(t, st.LowTemp, temp)
	}
	assert.GreaterOrEqual(t, st.HighWind, st.LowWind)
}

func TestAggregate_DailyText(t *testing.T) {
	fc := domain.Forecast{
		Daily: []domain.ForecastPeriod{
			{StartTime: "2024-06-01T06:00:00-05:00", IsDaytime: true, DetailedForecast: "Sunny"},
			{StartTime: "2024-06-01T18:00:00-05:00", IsDaytime: false, DetailedForecast: "Clear"},
		},
	}

	s, err := domain.Aggregate(fc)
	require.NoError(t, err)

	assert.Equal(t, "Day: Sunny Night: Clear", s.Text("2024-06-01").Description())
}

func TestAggregate_DailyText_DuplicateSlotOverwrites(t *testing.T) {
	fc := domain.Forecast{
		Daily: []domain.ForecastPeriod{
			{StartTime: "2024-06-01T06:00:00-05:00", IsDaytime: true, DetailedForecast: "Sunny"},
			{StartTime: "2024-06-01T09:00:00-05:00", IsDaytime: true, DetailedForecast: "Partly cloudy"},
		},
	}

	s, err := domain.Aggregate(fc)
	require.NoError(t, err)

	assert.Equal(t, "Day: Partly cloudy", s.Text("2024-06-01").Description())
}

func TestAggregate_MalformedWindFailsLoudly(t *testing.T) {
	fc := domain.Forecast{
		Hourly: []domain.ForecastPeriod{
			hourlyPeriod("2024-06-01T08:00:00-05:00", 60, "calm", nil),
		},
	}

	_, err := domain.Aggregate(fc)
	var perr *domain.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "windSpeed", perr.Field)
}

func TestAggregate_MalformedTimestampFailsLoudly(t *testing.T) {
	fc := domain.Forecast{
		Hourly: []domain.ForecastPeriod{
			hourlyPeriod("not a timestamp", 60, "5 mph", nil),
		},
	}

	_, err := domain.Aggregate(fc)
	var perr *domain.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "startTime", perr.Field)
}

func TestDayText_Description_PartialSlots(t *testing.T) {
	assert.Equal(t, "Day: Sunny", domain.DayText{Day: "Sunny"}.Description())
	assert.Equal(t, "Night: Clear", domain.DayText{Night: "Clear"}.Description())
	assert.Equal(t, "", domain.DayText{}.Description())
}
