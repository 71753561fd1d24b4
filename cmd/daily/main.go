package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"trafficpulse/internal/aggregate"
	"trafficpulse/internal/config"
	"trafficpulse/internal/exporter"
	"trafficpulse/internal/infrastructure"
	"trafficpulse/pkg/contracts"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "optional YAML config file")
	resultsDir := flag.String("results", "", "results directory (overrides config)")
	skipAudio := flag.Bool("skip-audio", false, "skip the audio daily table")
	skipImage := flag.Bool("skip-image", false, "skip the image daily table")
	skipLogs := flag.Bool("skip-logs", false, "skip the log events daily table")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionString())
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *resultsDir != "" {
		cfg.Paths.ResultsDir = *resultsDir
	}
	if err := cfg.Paths.Resolve(); err != nil {
		slog.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}

	ctx, logger := infrastructure.SetupRun(cfg.Logging)

	agg := aggregate.NewAggregator(logger)
	writer := exporter.NewCSVWriter(logger)

	if !*skipAudio {
		records, err := exporter.ReadAudioRecords(cfg.Paths.AudioQualityCSV)
		if err != nil {
			logger.ErrorContext(ctx, "failed to load audio metrics", "error", err)
			os.Exit(1)
		}
		daily, err := agg.AudioDaily(ctx, records)
		if err != nil {
			logger.ErrorContext(ctx, "audio aggregation failed", "error", err)
			os.Exit(1)
		}
		if err := writer.WriteAudioDaily(cfg.Paths.AudioDailyCSV, daily); err != nil {
			logger.ErrorContext(ctx, "failed to write audio daily table", "error", err)
			os.Exit(1)
		}
		logger.InfoContext(ctx, "audio daily written",
			slog.Int("files", len(records)),
			slog.Int("days", len(daily)))
	}

	if !*skipImage {
		records, err := exporter.ReadImageRecords(cfg.Paths.ImageQualityCSV)
		if err != nil {
			logger.ErrorContext(ctx, "failed to load image metrics", "error", err)
			os.Exit(1)
		}
		daily, err := agg.ImageDaily(ctx, records)
		if err != nil {
			logger.ErrorContext(ctx, "image aggregation failed", "error", err)
			os.Exit(1)
		}
		if err := writer.WriteImageDaily(cfg.Paths.ImageDailyCSV, daily); err != nil {
			logger.ErrorContext(ctx, "failed to write image daily table", "error", err)
			os.Exit(1)
		}
		logger.InfoContext(ctx, "image daily written",
			slog.Int("files", len(records)),
			slog.Int("days", len(daily)))
	}

	if !*skipLogs {
		events, err := exporter.ReadLogEvents(cfg.Paths.LogEventsCSV)
		if err != nil {
			logger.ErrorContext(ctx, "failed to load log events", "error", err)
			os.Exit(1)
		}
		daily, skipped, err := agg.LogsDaily(ctx, events)
		if err != nil {
			logger.ErrorContext(ctx, "log aggregation failed", "error", err)
			os.Exit(1)
		}
		if skipped > 0 {
			logger.WarnContext(ctx, "events with unparsable dates skipped",
				slog.Int("skipped", skipped))
		}
		if err := writer.WriteLogsDaily(cfg.Paths.LogsDailyCSV, daily); err != nil {
			logger.ErrorContext(ctx, "failed to write logs daily table", "error", err)
			os.Exit(1)
		}
		logger.InfoContext(ctx, "logs daily written",
			slog.Int("events", len(events)),
			slog.Int("days", len(daily)))
	}
}
