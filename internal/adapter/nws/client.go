// Package nws retrieves forecasts from the National Weather Service API.
package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/kujhawk94/noaa2ical/internal/domain"
	"github.com/kujhawk94/noaa2ical/internal/observability"
)

// ResolutionError reports a point lookup that did not yield a usable
// forecast endpoint URL.
type ResolutionError struct {
	Endpoint string // "forecast" or "forecastHourly"
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("nws: point metadata has no %s endpoint", e.Endpoint)
}

// FetchError reports a forecast document that could not be retrieved or was
// empty.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("nws: fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client resolves a coordinate to its gridpoint forecast endpoints and
// retrieves the hourly and daily forecast documents. One attempt per call,
// no retries: a failed run leaves the previously published calendar intact
// and the next scheduled run tries again.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an NWS API client. rps bounds outbound request rate; the
// NWS asks clients to identify themselves via User-Agent and to keep request
// volume modest.
func NewClient(baseURL, userAgent string, timeout time.Duration, rps float64, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		metrics:    metrics,
		logger:     logger,
	}
}

// FetchForecast resolves the endpoints for a coordinate and retrieves both
// forecast documents.
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64) (domain.Forecast, error) {
	eps, err := c.resolve(ctx, lat, lon)
	if err != nil {
		return domain.Forecast{}, err
	}

	hourly, err := c.fetchPeriods(ctx, eps.hourly, "hourly")
	if err != nil {
		return domain.Forecast{}, err
	}
	daily, err := c.fetchPeriods(ctx, eps.daily, "daily")
	if err != nil {
		return domain.Forecast{}, err
	}

	return domain.Forecast{Hourly: hourly, Daily: daily}, nil
}

type endpoints struct {
	hourly string
	daily  string
}

// resolve looks up the gridpoint metadata for a coordinate and extracts the
// two forecast URLs.
func (c *Client) resolve(ctx context.Context, lat, lon float64) (endpoints, error) {
	u := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, lat, lon)

	var meta pointResponse
	if err := c.getJSON(ctx, u, "points", &meta); err != nil {
		return endpoints{}, err
	}

	if meta.Properties.Forecast == "" {
		return endpoints{}, &ResolutionError{Endpoint: "forecast"}
	}
	if meta.Properties.ForecastHourly == "" {
		return endpoints{}, &ResolutionError{Endpoint: "forecastHourly"}
	}

	c.logger.Debug("resolved forecast endpoints",
		"daily", meta.Properties.Forecast,
		"hourly", meta.Properties.ForecastHourly,
	)
	return endpoints{hourly: meta.Properties.ForecastHourly, daily: meta.Properties.Forecast}, nil
}

// fetchPeriods retrieves one forecast document and normalizes its periods.
func (c *Client) fetchPeriods(ctx context.Context, url, granularity string) ([]domain.ForecastPeriod, error) {
	var doc forecastResponse
	if err := c.getJSON(ctx, url, granularity, &doc); err != nil {
		return nil, err
	}
	if len(doc.Properties.Periods) == 0 {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("empty %s forecast", granularity)}
	}

	periods := make([]domain.ForecastPeriod, len(doc.Properties.Periods))
	for i, p := range doc.Properties.Periods {
		periods[i] = domain.ForecastPeriod{
			StartTime:        p.StartTime,
			IsDaytime:        p.IsDaytime,
			Temperature:      p.Temperature,
			WindSpeed:        p.WindSpeed,
			PrecipChance:     p.ProbabilityOfPrecipitation.Value,
			DetailedForecast: p.DetailedForecast,
		}
	}

	c.logger.Info("forecast retrieved", "granularity", granularity, "periods", len(periods))
	return periods, nil
}

// getJSON performs one rate-limited GET and decodes the JSON body into v.
// Any transport, status, or decode failure is reported as a FetchError.
func (c *Client) getJSON(ctx context.Context, url, endpoint string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &FetchError{URL: url, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.APIRequests.WithLabelValues(endpoint, "error").Inc()
		return &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.APIRequests.WithLabelValues(endpoint, "error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &FetchError{URL: url, Err: fmt.Errorf("status %d: %s", resp.StatusCode, body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		c.metrics.APIRequests.WithLabelValues(endpoint, "error").Inc()
		return &FetchError{URL: url, Err: fmt.Errorf("decode response: %w", err)}
	}

	c.metrics.APIRequests.WithLabelValues(endpoint, "success").Inc()
	return nil
}

// NWS API response types.

type pointResponse struct {
	Properties struct {
		Forecast       string `json:"forecast"`
		ForecastHourly string `json:"forecastHourly"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []period `json:"periods"`
	} `json:"properties"`
}

type period struct {
	StartTime                  string `json:"startTime"`
	IsDaytime                  bool   `json:"isDaytime"`
	Temperature                int    `json:"temperature"`
	WindSpeed                  string `json:"windSpeed"`
	ProbabilityOfPrecipitation struct {
		Value *int `json:"value"`
	} `json:"probabilityOfPrecipitation"`
	DetailedForecast string `json:"detailedForecast"`
}
