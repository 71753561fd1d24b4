package dataset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"trafficpulse/internal/config"
	"trafficpulse/internal/errors"
	"trafficpulse/pkg/contracts/domain"
)

// Scanner walks per-modality root directories and classifies their dated
// folders. It reads the filesystem only; nothing is mutated.
type Scanner struct {
	cfg    config.Dataset
	logger *slog.Logger
}

// NewScanner creates a folder scanner with the given dataset configuration
func NewScanner(cfg config.Dataset, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{cfg: cfg, logger: logger}
}

// ScanRoot scans one modality root and returns the valid dated folders and
// the pattern-matching but invalid ones, both sorted by folder name. Entries
// that do not match the naming pattern at all are ignored, not reported.
func (s *Scanner) ScanRoot(ctx context.Context, root string, modality domain.Modality) ([]domain.DatedFolder, []domain.InvalidFolderRecord, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.InputMissing(root)
		}
		return nil, nil, errors.FileSystemError(err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && IsValidFolderName(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	s.logger.InfoContext(ctx, "scanning modality root",
		slog.String("root", root),
		slog.String("modality", string(modality)),
		slog.Int("candidate_folders", len(names)))

	var valid []domain.DatedFolder
	var invalid []domain.InvalidFolderRecord

	for _, name := range names {
		parsed, err := ParseFolderName(name)
		if err != nil {
			continue
		}

		fileCount, totalSize := folderStats(filepath.Join(root, name))

		date, ok := InferDate(parsed.DateStr)
		reason := domain.ReasonBadCalendarDate
		if ok && !YearInRange(date, s.cfg.YearMin, s.cfg.YearMax) {
			ok = false
			reason = domain.ReasonYearOutOfRange
		}

		if !ok {
			invalid = append(invalid, domain.InvalidFolderRecord{
				FolderName:     name,
				ParsedDate:     parsed.DateStr,
				Modality:       modality,
				Quality:        parsed.Quality,
				FileCount:      fileCount,
				TotalSizeBytes: totalSize,
				Reason:         reason,
			})
			continue
		}

		valid = append(valid, domain.DatedFolder{
			Date:           date,
			Modality:       modality,
			Quality:        parsed.Quality,
			FolderName:     name,
			FileCount:      fileCount,
			TotalSizeBytes: totalSize,
		})
	}

	s.logger.InfoContext(ctx, "scan complete",
		slog.String("modality", string(modality)),
		slog.Int("valid", len(valid)),
		slog.Int("invalid", len(invalid)))

	return valid, invalid, nil
}

// folderStats counts immediate child files and sums their sizes. Failures to
// stat an individual file are skipped; they never abort the folder's record.
func folderStats(folderPath string) (int, int64) {
	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return 0, 0
	}

	var count int
	var total int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		count++
		info, err := entry.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return count, total
}
