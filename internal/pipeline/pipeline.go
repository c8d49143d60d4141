// Package pipeline orchestrates one fetch → aggregate → publish run.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/kujhawk94/noaa2ical/internal/domain"
	"github.com/kujhawk94/noaa2ical/internal/ical"
	"github.com/kujhawk94/noaa2ical/internal/observability"
)

// ForecastSource retrieves the hourly and daily forecasts for a coordinate.
type ForecastSource interface {
	FetchForecast(ctx context.Context, lat, lon float64) (domain.Forecast, error)
}

// DocumentStore reads the previously published calendar's revisions and
// replaces the published document.
type DocumentStore interface {
	Sequences() map[string]int
	Replace(doc []byte) error
}

// Pipeline runs the single-pass forecast-to-calendar flow. Control flow is
// strictly linear; the first error aborts the run with the previously
// published file untouched.
type Pipeline struct {
	source  ForecastSource
	store   DocumentStore
	logger  *slog.Logger
	metrics *observability.Metrics

	lat, lon  float64
	calDomain string
}

// New creates a Pipeline for one coordinate and calendar domain.
func New(source ForecastSource, store DocumentStore, lat, lon float64, calDomain string, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:    source,
		store:     store,
		logger:    logger,
		metrics:   metrics,
		lat:       lat,
		lon:       lon,
		calDomain: calDomain,
	}
}

// Run executes one complete run: fetch, aggregate, resolve revisions against
// the previous document, render, and atomically replace the published file.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.metrics.LastRunTime.SetToCurrentTime()

	fc, err := p.source.FetchForecast(ctx, p.lat, p.lon)
	if err != nil {
		return err
	}
	p.metrics.PeriodsAggregated.WithLabelValues("hourly").Add(float64(len(fc.Hourly)))
	p.metrics.PeriodsAggregated.WithLabelValues("daily").Add(float64(len(fc.Daily)))

	summary, err := domain.Aggregate(fc)
	if err != nil {
		return err
	}
	p.logger.Info("forecast aggregated",
		"hourly_periods", len(fc.Hourly),
		"daily_periods", len(fc.Daily),
		"dates", len(summary.Dates()),
	)

	previous := p.store.Sequences()
	events := BuildEvents(summary, previous, p.calDomain)

	doc, err := ical.Render(p.calDomain, domain.Clock().Now(), events)
	if err != nil {
		return err
	}

	if err := p.store.Replace(doc); err != nil {
		return err
	}

	p.metrics.EventsPublished.Set(float64(len(events)))
	p.metrics.RunDuration.Set(time.Since(start).Seconds())
	p.logger.Info("run complete", "events", len(events), "duration", time.Since(start))
	return nil
}

// BuildEvents converts aggregated summaries into revisioned calendar events.
// The final aggregated date is excluded: its period is still filling in and
// is not yet safe to publish. Each event's sequence is the previous
// publication's value + 1, or 0 for a date never published before.
func BuildEvents(summary *domain.DailySummary, previous map[string]int, calDomain string) []ical.Event {
	dates := summary.Dates()
	if len(dates) > 0 {
		dates = dates[:len(dates)-1]
	}

	events := make([]ical.Event, 0, len(dates))
	for _, date := range dates {
		stats, ok := summary.Stats(date)
		if !ok {
			continue
		}
		uid := ical.NewUID(date, calDomain)
		events = append(events, ical.Event{
			Date:        date,
			UID:         uid,
			Sequence:    ical.NextSequence(previous, uid),
			Summary:     ical.FormatSummary(stats),
			Description: summary.Text(date).Description(),
		})
	}
	return events
}
