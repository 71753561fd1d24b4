package extract

import (
	"context"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"trafficpulse/internal/config"
	"trafficpulse/internal/errors"
	"trafficpulse/internal/metrics"
	"trafficpulse/pkg/contracts/domain"
)

// Runner fans per-file metric extraction out across a bounded pool.
type Runner struct {
	cfg    config.Extract
	logger *slog.Logger
}

func NewRunner(cfg config.Extract, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, logger: logger}
}

func (r *Runner) workers() int {
	if r.cfg.Workers > 0 {
		return r.cfg.Workers
	}
	return runtime.NumCPU()
}

// Files discovers extraction candidates under root: extension match, optional
// calendar restriction, then the configured sampling caps.
func (r *Runner) Files(root string, extensions map[string]bool) ([]string, error) {
	var calendar map[string]bool
	if r.cfg.CalendarFile != "" {
		var err error
		calendar, err = LoadCalendar(r.cfg.CalendarFile)
		if err != nil {
			return nil, err
		}
		r.logger.Info("restricting extraction to calendar days",
			slog.Int("days", len(calendar)),
			slog.String("calendar", r.cfg.CalendarFile))
	}

	files, err := CollectFiles(root, extensions, calendar)
	if err != nil {
		return nil, err
	}

	sampled := Sample(files, r.cfg.MaxFilesPerDay, r.cfg.MaxTotalFiles, r.cfg.RandomSeed)
	if len(sampled) < len(files) {
		r.logger.Info("sampling caps applied",
			slog.Int("found", len(files)),
			slog.Int("sampled", len(sampled)))
	}
	return sampled, nil
}

// RunAudio extracts audio metrics for every file, pooled. Per-file failures
// are collected, never fatal; zero successful records is a hard error.
func (r *Runner) RunAudio(ctx context.Context, root string, files []string) ([]domain.AudioFileRecord, []domain.ExtractError, error) {
	r.logger.InfoContext(ctx, "extracting audio metrics",
		slog.Int("files", len(files)),
		slog.Int("workers", r.workers()))

	type outcome struct {
		record  domain.AudioFileRecord
		failure *domain.ExtractError
	}
	outcomes := make(chan outcome, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for _, rel := range files {
		rel := rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, err := metrics.ExtractAudioFile(root, rel)
			if err != nil {
				outcomes <- outcome{failure: &domain.ExtractError{RelativePath: rel, Message: err.Error()}}
				return nil
			}
			outcomes <- outcome{record: record}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	close(outcomes)

	var records []domain.AudioFileRecord
	var failures []domain.ExtractError
	for out := range outcomes {
		if out.failure != nil {
			failures = append(failures, *out.failure)
			continue
		}
		records = append(records, out.record)
	}
	if len(records) == 0 {
		return nil, failures, errors.NoUsableRows("audio metric extraction")
	}

	sort.Slice(records, func(i, j int) bool { return records[i].RelativePath < records[j].RelativePath })
	r.logger.InfoContext(ctx, "audio extraction complete",
		slog.Int("records", len(records)),
		slog.Int("errors", len(failures)))
	return records, failures, nil
}

// RunImages is the image counterpart of RunAudio.
func (r *Runner) RunImages(ctx context.Context, root string, files []string) ([]domain.ImageFileRecord, []domain.ExtractError, error) {
	r.logger.InfoContext(ctx, "extracting image metrics",
		slog.Int("files", len(files)),
		slog.Int("workers", r.workers()))

	type outcome struct {
		record  domain.ImageFileRecord
		failure *domain.ExtractError
	}
	outcomes := make(chan outcome, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for _, rel := range files {
		rel := rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, err := metrics.ExtractImageFile(root, rel)
			if err != nil {
				outcomes <- outcome{failure: &domain.ExtractError{RelativePath: rel, Message: err.Error()}}
				return nil
			}
			outcomes <- outcome{record: record}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	close(outcomes)

	var records []domain.ImageFileRecord
	var failures []domain.ExtractError
	for out := range outcomes {
		if out.failure != nil {
			failures = append(failures, *out.failure)
			continue
		}
		records = append(records, out.record)
	}
	if len(records) == 0 {
		return nil, failures, errors.NoUsableRows("image metric extraction")
	}

	sort.Slice(records, func(i, j int) bool { return records[i].RelativePath < records[j].RelativePath })
	r.logger.InfoContext(ctx, "image extraction complete",
		slog.Int("records", len(records)),
		slog.Int("errors", len(failures)))
	return records, failures, nil
}
