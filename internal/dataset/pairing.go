package dataset

import (
	"sort"
	"time"

	"trafficpulse/pkg/contracts/domain"
)

// BuildPairing derives the per-date modality coverage table from the two
// valid folder sets. Dates appear once regardless of quality variants.
func BuildPairing(imageFolders, audioFolders []domain.DatedFolder) []domain.PairingRecord {
	imgDates := dateSet(imageFolders)
	sndDates := dateSet(audioFolders)

	all := make(map[time.Time]struct{}, len(imgDates)+len(sndDates))
	for d := range imgDates {
		all[d] = struct{}{}
	}
	for d := range sndDates {
		all[d] = struct{}{}
	}

	records := make([]domain.PairingRecord, 0, len(all))
	for d := range all {
		_, hasImage := imgDates[d]
		_, hasAudio := sndDates[d]

		status := domain.PairStatusPaired
		switch {
		case hasImage && !hasAudio:
			status = domain.PairStatusImageOnly
		case hasAudio && !hasImage:
			status = domain.PairStatusAudioOnly
		}

		records = append(records, domain.PairingRecord{
			Date:       d,
			HasImage:   hasImage,
			HasAudio:   hasAudio,
			PairStatus: status,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records
}

// BuildDailyCounts reduces the valid folder sets to one file-count row per
// date. Quality variants of the same date (_h and _l) are summed.
func BuildDailyCounts(imageFolders, audioFolders []domain.DatedFolder) []domain.DailyCount {
	byDate := make(map[time.Time]*domain.DailyCount)

	add := func(folders []domain.DatedFolder, image bool) {
		for _, f := range folders {
			row, ok := byDate[f.Date]
			if !ok {
				row = &domain.DailyCount{Date: f.Date}
				byDate[f.Date] = row
			}
			if image {
				row.NImages += f.FileCount
			} else {
				row.NAudio += f.FileCount
			}
			row.TotalFiles += f.FileCount
		}
	}
	add(imageFolders, true)
	add(audioFolders, false)

	counts := make([]domain.DailyCount, 0, len(byDate))
	for _, row := range byDate {
		counts = append(counts, *row)
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Date.Before(counts[j].Date)
	})
	return counts
}

func dateSet(folders []domain.DatedFolder) map[time.Time]struct{} {
	set := make(map[time.Time]struct{}, len(folders))
	for _, f := range folders {
		set[f.Date] = struct{}{}
	}
	return set
}
