package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"trafficpulse/internal/config"
	"trafficpulse/internal/exporter"
	"trafficpulse/internal/extract"
	"trafficpulse/internal/infrastructure"
	"trafficpulse/internal/metrics"
	"trafficpulse/pkg/contracts"
	"trafficpulse/pkg/contracts/domain"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "optional YAML config file")
	modality := flag.String("modality", "", "which files to process: audio or image")
	root := flag.String("root", "", "dataset root for the chosen modality (overrides config)")
	resultsDir := flag.String("results", "", "results directory (overrides config)")
	workers := flag.Int("workers", 0, "worker pool size (overrides config; 0 = all CPUs)")
	calendar := flag.String("calendar", "", "calendar CSV restricting extraction to its dates (overrides config)")
	maxPerDay := flag.Int("max-files-per-day", -1, "per-day sampling cap (overrides config; 0 disables)")
	maxTotal := flag.Int("max-total-files", -1, "total sampling cap (overrides config; 0 disables)")
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
	if *workers > 0 {
		cfg.Extract.Workers = *workers
	}
	if *calendar != "" {
		cfg.Extract.CalendarFile = *calendar
	}
	if *maxPerDay >= 0 {
		cfg.Extract.MaxFilesPerDay = *maxPerDay
	}
	if *maxTotal >= 0 {
		cfg.Extract.MaxTotalFiles = *maxTotal
	}
	if err := cfg.Paths.Resolve(); err != nil {
		slog.Error("Failed to resolve paths", "error", err)
		os.Exit(1)
	}

	ctx, logger := infrastructure.SetupRun(cfg.Logging)

	var (
		srcRoot    string
		extensions map[string]bool
		outputCSV  string
	)
	switch domain.Modality(*modality) {
	case domain.ModalityAudio:
		srcRoot = cfg.Dataset.AudioRoot
		extensions = metrics.AudioExtensions
		outputCSV = cfg.Paths.AudioQualityCSV
	case domain.ModalityImage:
		srcRoot = cfg.Dataset.ImageRoot
		extensions = metrics.ImageExtensions
		outputCSV = cfg.Paths.ImageQualityCSV
	default:
		logger.ErrorContext(ctx, "modality must be audio or image", "modality", *modality)
		os.Exit(1)
	}
	if *root != "" {
		srcRoot = *root
	}
	if srcRoot == "" {
		logger.ErrorContext(ctx, "no dataset root configured for modality", "modality", *modality)
		os.Exit(1)
	}

	runner := extract.NewRunner(cfg.Extract, logger)
	files, err := runner.Files(srcRoot, extensions)
	if err != nil {
		logger.ErrorContext(ctx, "file discovery failed", "error", err)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "files discovered",
		slog.Int("count", len(files)),
		slog.String("root", srcRoot))

	if err := cfg.Paths.EnsureResultsDir(); err != nil {
		logger.ErrorContext(ctx, "failed to create results directory", "error", err)
		os.Exit(1)
	}
	writer := exporter.NewCSVWriter(logger)
	errorsCSV := strings.TrimSuffix(outputCSV, ".csv") + "_errors.csv"

	var (
		failures []domain.ExtractError
		runErr   error
	)
	switch domain.Modality(*modality) {
	case domain.ModalityAudio:
		records, extractFailures, err := runner.RunAudio(ctx, srcRoot, files)
		failures = extractFailures
		runErr = err
		if err == nil {
			if err := writer.WriteAudioRecords(outputCSV, records); err != nil {
				logger.ErrorContext(ctx, "failed to write audio metrics", "error", err)
				os.Exit(1)
			}
		}
	case domain.ModalityImage:
		records, extractFailures, err := runner.RunImages(ctx, srcRoot, files)
		failures = extractFailures
		runErr = err
		if err == nil {
			if err := writer.WriteImageRecords(outputCSV, records); err != nil {
				logger.ErrorContext(ctx, "failed to write image metrics", "error", err)
				os.Exit(1)
			}
		}
	}

	// A failed run still gets its per-file error breakdown on disk.
	if len(failures) > 0 {
		if err := writer.WriteExtractErrors(errorsCSV, failures); err != nil {
			logger.ErrorContext(ctx, "failed to write extraction error report", "error", err)
			os.Exit(1)
		}
	}
	if runErr != nil {
		logger.ErrorContext(ctx, "extraction failed", "error", runErr)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "extraction complete",
		slog.String("output", outputCSV),
		slog.Int("errors", len(failures)))
}
