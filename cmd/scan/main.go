package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"trafficpulse/internal/config"
	"trafficpulse/internal/dataset"
	"trafficpulse/internal/exporter"
	"trafficpulse/internal/infrastructure"
	"trafficpulse/pkg/contracts"
	"trafficpulse/pkg/contracts/domain"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "optional YAML config file")
	imageRoot := flag.String("image-root", "", "image dataset root (overrides config)")
	audioRoot := flag.String("audio-root", "", "audio dataset root (overrides config)")
	resultsDir := flag.String("results", "", "results directory (overrides config)")
	validate := flag.Bool("validate", false, "cross-check an existing dataset summary against disk instead of writing a new one")
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
	if *imageRoot != "" {
		cfg.Dataset.ImageRoot = *imageRoot
	}
	if *audioRoot != "" {
		cfg.Dataset.AudioRoot = *audioRoot
	}
	if *resultsDir != "" {
		cfg.Paths.ResultsDir = *resultsDir
	}
	if err := cfg.Paths.Resolve(); err != nil {
		slog.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}

	ctx, logger := infrastructure.SetupRun(cfg.Logging)

	scanner := dataset.NewScanner(cfg.Dataset, logger)

	var imageFolders, audioFolders []domain.DatedFolder
	var invalid []domain.InvalidFolderRecord

	if cfg.Dataset.ImageRoot != "" {
		folders, bad, err := scanner.ScanRoot(ctx, cfg.Dataset.ImageRoot, domain.ModalityImage)
		if err != nil {
			logger.ErrorContext(ctx, "image root scan failed", "error", err)
			os.Exit(1)
		}
		imageFolders = folders
		invalid = append(invalid, bad...)
	}
	if cfg.Dataset.AudioRoot != "" {
		folders, bad, err := scanner.ScanRoot(ctx, cfg.Dataset.AudioRoot, domain.ModalityAudio)
		if err != nil {
			logger.ErrorContext(ctx, "audio root scan failed", "error", err)
			os.Exit(1)
		}
		audioFolders = folders
		invalid = append(invalid, bad...)
	}
	if len(imageFolders) == 0 && len(audioFolders) == 0 {
		logger.ErrorContext(ctx, "no valid dated folders found under the configured roots")
		os.Exit(1)
	}

	all := append(append([]domain.DatedFolder{}, imageFolders...), audioFolders...)

	if *validate {
		summaryDates, err := exporter.ReadSummaryDates(cfg.Paths.DatasetSummaryCSV)
		if err != nil {
			logger.ErrorContext(ctx, "failed to load dataset summary for validation", "error", err)
			os.Exit(1)
		}
		report := dataset.ValidateScan(ctx, logger, summaryDates, all)
		if !report.OK() {
			logger.ErrorContext(ctx, "dataset summary does not match disk",
				slog.Int("missing_from_summary", len(report.MissingFromSummary)),
				slog.Int("extra_in_summary", len(report.ExtraInSummary)))
			os.Exit(1)
		}
		logger.InfoContext(ctx, "dataset summary matches disk",
			slog.Int("dates", len(summaryDates)))
		return
	}

	if err := cfg.Paths.EnsureResultsDir(); err != nil {
		logger.ErrorContext(ctx, "failed to create results directory", "error", err)
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(logger)
	if err := writer.WriteDatasetSummary(cfg.Paths.DatasetSummaryCSV, all); err != nil {
		logger.ErrorContext(ctx, "failed to write dataset summary", "error", err)
		os.Exit(1)
	}
	if err := writer.WriteInvalidFolders(cfg.Paths.InvalidDatesCSV, invalid); err != nil {
		logger.ErrorContext(ctx, "failed to write invalid folder report", "error", err)
		os.Exit(1)
	}

	pairing := dataset.BuildPairing(imageFolders, audioFolders)
	if err := writer.WritePairing(cfg.Paths.FolderPairingCSV, pairing); err != nil {
		logger.ErrorContext(ctx, "failed to write pairing report", "error", err)
		os.Exit(1)
	}

	counts := dataset.BuildDailyCounts(imageFolders, audioFolders)
	if err := writer.WriteDailyCounts(cfg.Paths.DailyCountsCSV, counts); err != nil {
		logger.ErrorContext(ctx, "failed to write daily counts", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "scan complete",
		slog.Int("image_folders", len(imageFolders)),
		slog.Int("audio_folders", len(audioFolders)),
		slog.Int("invalid_folders", len(invalid)),
		slog.Int("paired_dates", len(pairing)),
		slog.String("results_dir", cfg.Paths.ResultsDir))
}
