package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"trafficpulse/internal/config"
	"trafficpulse/internal/exporter"
	"trafficpulse/internal/infrastructure"
	"trafficpulse/internal/join"
	"trafficpulse/pkg/contracts"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "optional YAML config file")
	resultsDir := flag.String("results", "", "results directory (overrides config)")
	report := flag.Bool("report", false, "also write the xlsx report workbook")
	skipAudioJoin := flag.Bool("skip-audio-join", false, "skip the audio quality vs sensor join")
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

	joiner := join.NewJoiner(cfg.Anomaly, logger)
	writer := exporter.NewCSVWriter(logger)

	master, corr, err := joiner.BuildMaster(ctx,
		cfg.Paths.DailyCountsCSV,
		cfg.Paths.ImageDailyCSV,
		cfg.Paths.LogsDailyCSV)
	if err != nil {
		logger.ErrorContext(ctx, "master join failed", "error", err)
		os.Exit(1)
	}
	if err := master.WriteCSV(writer, cfg.Paths.DailyMasterCSV); err != nil {
		logger.ErrorContext(ctx, "failed to write daily master", "error", err)
		os.Exit(1)
	}
	if err := corr.WriteCSV(writer, cfg.Paths.CorrelationsCSV); err != nil {
		logger.ErrorContext(ctx, "failed to write correlation matrix", "error", err)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "daily master written",
		slog.String("output", cfg.Paths.DailyMasterCSV),
		slog.Int("rows", len(master.Rows)))

	if !*skipAudioJoin {
		joined, err := joiner.BuildAudioJoined(ctx,
			cfg.Paths.AudioDailyCSV,
			cfg.Paths.SensorDailyCSV)
		if err != nil {
			logger.ErrorContext(ctx, "audio join failed", "error", err)
			os.Exit(1)
		}
		if err := joined.WriteCSV(writer, cfg.Paths.AudioJoinedCSV); err != nil {
			logger.ErrorContext(ctx, "failed to write audio join", "error", err)
			os.Exit(1)
		}
		logger.InfoContext(ctx, "audio join written",
			slog.String("output", cfg.Paths.AudioJoinedCSV),
			slog.Int("rows", len(joined.Rows)))
	}

	if *report {
		masterHeaders, masterRecords := master.Records()
		corrHeaders, corrRecords := corr.Records()

		sheets := []exporter.ReportSheet{
			{Name: "Daily Master", Headers: masterHeaders, Records: masterRecords},
			{Name: "Correlations", Headers: corrHeaders, Records: corrRecords},
		}
		rw := exporter.NewReportWriter(logger)
		if err := rw.WriteWorkbook(cfg.Paths.MasterReportXLSX, infrastructure.GetRunID(ctx), sheets); err != nil {
			logger.ErrorContext(ctx, "failed to write report workbook", "error", err)
			os.Exit(1)
		}
		logger.InfoContext(ctx, "report workbook written",
			slog.String("output", cfg.Paths.MasterReportXLSX))
	}
}
