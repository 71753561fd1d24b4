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
	"trafficpulse/internal/logevents"
	"trafficpulse/pkg/contracts"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "optional YAML config file")
	logsRoot := flag.String("logs-root", "", "folder containing traffic.txt* files (overrides config)")
	resultsDir := flag.String("results", "", "results directory (overrides config)")
	maxLines := flag.Int("max-lines", -1, "maximum lines to parse (overrides config; 0 = unlimited)")
	sensor := flag.Bool("sensor", true, "also extract sensor sound readings and write the sensor daily table")
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
	if *logsRoot != "" {
		cfg.Logs.Root = *logsRoot
	}
	if *resultsDir != "" {
		cfg.Paths.ResultsDir = *resultsDir
	}
	if *maxLines >= 0 {
		cfg.Logs.MaxLines = *maxLines
	}
	if err := cfg.Paths.Resolve(); err != nil {
		slog.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}

	ctx, logger := infrastructure.SetupRun(cfg.Logging)

	if cfg.Logs.Root == "" {
		logger.ErrorContext(ctx, "no logs root configured")
		os.Exit(1)
	}
	if err := cfg.Paths.EnsureResultsDir(); err != nil {
		logger.ErrorContext(ctx, "failed to create results directory", "error", err)
		os.Exit(1)
	}

	parser := logevents.NewParser(cfg.Logs, logger)

	res, err := parser.Flatten(ctx, cfg.Paths.LogEventsCSV)
	if err != nil {
		logger.ErrorContext(ctx, "log flattening failed", "error", err)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "log events written",
		slog.String("output", cfg.Paths.LogEventsCSV),
		slog.Int("parsed", res.Parsed),
		slog.Int("errors", res.Errors))

	if !*sensor {
		return
	}

	readings, err := parser.ExtractSensorReadings(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "sensor extraction failed", "error", err)
		os.Exit(1)
	}

	daily, skipped, err := aggregate.NewAggregator(logger).SensorDaily(ctx, readings)
	if err != nil {
		logger.ErrorContext(ctx, "sensor aggregation failed", "error", err)
		os.Exit(1)
	}
	if skipped > 0 {
		logger.WarnContext(ctx, "sensor readings with unparsable dates skipped",
			slog.Int("skipped", skipped))
	}

	if err := exporter.NewCSVWriter(logger).WriteSensorDaily(cfg.Paths.SensorDailyCSV, daily); err != nil {
		logger.ErrorContext(ctx, "failed to write sensor daily table", "error", err)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "sensor daily written",
		slog.String("output", cfg.Paths.SensorDailyCSV),
		slog.Int("days", len(daily)))
}
