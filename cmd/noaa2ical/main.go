// Command noaa2ical fetches the NWS forecast for a configured coordinate and
// publishes it as an iCalendar feed, replacing the previously published file.
// It is a one-shot batch process; run it from cron or a systemd timer.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kujhawk94/noaa2ical/internal/adapter/nws"
	"github.com/kujhawk94/noaa2ical/internal/config"
	"github.com/kujhawk94/noaa2ical/internal/ical"
	"github.com/kujhawk94/noaa2ical/internal/observability"
	"github.com/kujhawk94/noaa2ical/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := nws.NewClient(cfg.NWSBaseURL, cfg.UserAgent, cfg.HTTPTimeout, cfg.NWSRateLimit, metrics, logger)
	store := ical.NewStore(cfg.OutputDir, cfg.OutputFile, logger)

	p := pipeline.New(client, store, cfg.Latitude, cfg.Longitude, cfg.CalendarDomain, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := p.Run(ctx)
	if runErr != nil {
		logger.Error("run failed", "error", runErr)
		metrics.RunSuccess.Set(0)
	} else {
		metrics.RunSuccess.Set(1)
	}

	if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
		logger.Error("metrics textfile write failed", "path", cfg.MetricsTextfile, "error", err)
	}

	if runErr != nil {
		os.Exit(1)
	}
}
