package dataset

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"trafficpulse/pkg/contracts/domain"
)

// ValidationReport compares dates recorded in a written scan summary against
// the valid folders currently on disk.
type ValidationReport struct {
	MissingFromSummary []time.Time // on disk, absent from the summary
	ExtraInSummary     []time.Time // in the summary, no longer on disk
}

// OK reports whether the summary and the disk agree exactly.
func (r ValidationReport) OK() bool {
	return len(r.MissingFromSummary) == 0 && len(r.ExtraInSummary) == 0
}

// ValidateScan cross-checks summary dates against the folders found by a
// fresh scan. Both sides are reduced to date sets; quality variants collapse.
func ValidateScan(ctx context.Context, logger *slog.Logger, summaryDates []time.Time, folders []domain.DatedFolder) ValidationReport {
	if logger == nil {
		logger = slog.Default()
	}

	onDisk := dateSet(folders)
	inSummary := make(map[time.Time]struct{}, len(summaryDates))
	for _, d := range summaryDates {
		inSummary[d] = struct{}{}
	}

	var report ValidationReport
	for d := range onDisk {
		if _, ok := inSummary[d]; !ok {
			report.MissingFromSummary = append(report.MissingFromSummary, d)
		}
	}
	for d := range inSummary {
		if _, ok := onDisk[d]; !ok {
			report.ExtraInSummary = append(report.ExtraInSummary, d)
		}
	}

	sort.Slice(report.MissingFromSummary, func(i, j int) bool {
		return report.MissingFromSummary[i].Before(report.MissingFromSummary[j])
	})
	sort.Slice(report.ExtraInSummary, func(i, j int) bool {
		return report.ExtraInSummary[i].Before(report.ExtraInSummary[j])
	})

	logger.InfoContext(ctx, "scan validation",
		slog.Int("missing_from_summary", len(report.MissingFromSummary)),
		slog.Int("extra_in_summary", len(report.ExtraInSummary)))

	return report
}
