// Command genmock generates deterministic mock NWS API responses (point
// metadata plus hourly and daily forecasts) for local pipeline runs and
// test fixtures. Point NWS_BASE_URL at a static file server rooted in the
// output directory to run the pipeline without touching api.weather.gov.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock -days 5
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

var baseDate = time.Date(2024, time.June, 1, 6, 0, 0, 0, time.UTC)

type valueObject struct {
	Value *int `json:"value"`
}

type period struct {
	Number                     int         `json:"number"`
	Name                       string      `json:"name,omitempty"`
	StartTime                  string      `json:"startTime"`
	EndTime                    string      `json:"endTime"`
	IsDaytime                  bool        `json:"isDaytime"`
	Temperature                int         `json:"temperature"`
	TemperatureUnit            string      `json:"temperatureUnit"`
	WindSpeed                  string      `json:"windSpeed"`
	ProbabilityOfPrecipitation valueObject `json:"probabilityOfPrecipitation"`
	ShortForecast              string      `json:"shortForecast"`
	DetailedForecast           string      `json:"detailedForecast"`
}

type forecastDoc struct {
	Properties struct {
		Periods []period `json:"periods"`
	} `json:"properties"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/mock", "output directory for fixture files")
	days := flag.Int("days", 5, "number of forecast days to generate")
	baseURL := flag.String("base-url", "http://localhost:8999", "base URL embedded in the point metadata endpoints")
	flag.Parse()

	if *days < 1 {
		return fmt.Errorf("-days must be at least 1")
	}

	points := map[string]any{
		"properties": map[string]string{
			"forecast":       *baseURL + "/forecast.json",
			"forecastHourly": *baseURL + "/forecast_hourly.json",
		},
	}
	if err := writeJSON(filepath.Join(*out, "points.json"), points); err != nil {
		return fmt.Errorf("writing point metadata: %w", err)
	}

	hourly := hourlyForecast(*days)
	if err := writeJSON(filepath.Join(*out, "forecast_hourly.json"), hourly); err != nil {
		return fmt.Errorf("writing hourly forecast: %w", err)
	}
	log.Printf("hourly: %d periods", len(hourly.Properties.Periods))

	daily := dailyForecast(*days)
	if err := writeJSON(filepath.Join(*out, "forecast.json"), daily); err != nil {
		return fmt.Errorf("writing daily forecast: %w", err)
	}
	log.Printf("daily: %d periods", len(daily.Properties.Periods))

	log.Printf("wrote fixtures to %s", *out)
	return nil
}

// hourlyForecast builds one period per hour with a smooth diurnal temperature
// curve so min/max folds have distinct values to find.
func hourlyForecast(days int) forecastDoc {
	var doc forecastDoc
	num := 1
	for d := 0; d < days; d++ {
		for h := 0; h < 24; h++ {
			start := baseDate.AddDate(0, 0, d).Add(time.Duration(h) * time.Hour)
			temp := 60 + d + diurnal(h)
			precip := (d*13 + h*3) % 70
			doc.Properties.Periods = append(doc.Properties.Periods, period{
				Number:                     num,
				StartTime:                  start.Format(time.RFC3339),
				EndTime:                    start.Add(time.Hour).Format(time.RFC3339),
				IsDaytime:                  h >= 6 && h < 18,
				Temperature:                temp,
				TemperatureUnit:            "F",
				WindSpeed:                  fmt.Sprintf("%d mph", 4+(h+d)%10),
				ProbabilityOfPrecipitation: valueObject{Value: &precip},
				ShortForecast:              "Mostly Sunny",
			})
			num++
		}
	}
	return doc
}

// dailyForecast builds one daytime and one overnight period per date.
func dailyForecast(days int) forecastDoc {
	var doc forecastDoc
	num := 1
	for d := 0; d < days; d++ {
		day := baseDate.AddDate(0, 0, d)
		dayStart := day.Add(6 * time.Hour)
		nightStart := day.Add(18 * time.Hour)
		precip := (d * 13) % 70

		doc.Properties.Periods = append(doc.Properties.Periods,
			period{
				Number:                     num,
				Name:                       day.Weekday().String(),
				StartTime:                  dayStart.Format(time.RFC3339),
				EndTime:                    nightStart.Format(time.RFC3339),
				IsDaytime:                  true,
				Temperature:                72 + d,
				TemperatureUnit:            "F",
				WindSpeed:                  "5 to 10 mph",
				ProbabilityOfPrecipitation: valueObject{Value: &precip},
				DetailedForecast: fmt.Sprintf(
					"Mostly sunny, with a high near %d. South wind 5 to 10 mph.", 72+d),
			},
			period{
				Number:                     num + 1,
				Name:                       day.Weekday().String() + " Night",
				StartTime:                  nightStart.Format(time.RFC3339),
				EndTime:                    day.AddDate(0, 0, 1).Add(6 * time.Hour).Format(time.RFC3339),
				IsDaytime:                  false,
				Temperature:                58 + d,
				TemperatureUnit:            "F",
				WindSpeed:                  "5 mph",
				ProbabilityOfPrecipitation: valueObject{},
				DetailedForecast: fmt.Sprintf(
					"Partly cloudy, with a low around %d.", 58+d),
			},
		)
		num += 2
	}
	return doc
}

// diurnal approximates a daily temperature swing without pulling in math:
// coolest before dawn, warmest mid-afternoon.
func diurnal(hour int) int {
	swing := []int{-8, -9, -10, -10, -9, -8, -6, -3, 0, 3, 6, 8, 10, 11, 12, 12, 11, 9, 6, 3, 0, -3, -5, -7}
	return swing[hour%24]
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
