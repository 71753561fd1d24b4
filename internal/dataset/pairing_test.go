package dataset

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficpulse/pkg/contracts/domain"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func folder(t *testing.T, date string, modality domain.Modality, files int) domain.DatedFolder {
	t.Helper()
	return domain.DatedFolder{
		Date:       day(t, date),
		Modality:   modality,
		Quality:    domain.QualityUnspecified,
		FolderName: date,
		FileCount:  files,
	}
}

func TestBuildPairing(t *testing.T) {
	images := []domain.DatedFolder{
		folder(t, "2024-06-01", domain.ModalityImage, 5),
		folder(t, "2024-06-02", domain.ModalityImage, 3),
	}
	audio := []domain.DatedFolder{
		folder(t, "2024-06-01", domain.ModalityAudio, 7),
		folder(t, "2024-06-03", domain.ModalityAudio, 2),
	}

	records := BuildPairing(images, audio)
	require.Len(t, records, 3)

	assert.Equal(t, domain.PairStatusPaired, records[0].PairStatus)
	assert.Equal(t, domain.PairStatusImageOnly, records[1].PairStatus)
	assert.Equal(t, domain.PairStatusAudioOnly, records[2].PairStatus)
	assert.True(t, records[0].Date.Before(records[1].Date))
}

func TestBuildDailyCounts_QualityVariantsSummed(t *testing.T) {
	images := []domain.DatedFolder{
		{Date: day(t, "2024-06-01"), FolderName: "2024-06-01_h", Quality: domain.QualityHigh, FileCount: 4},
		{Date: day(t, "2024-06-01"), FolderName: "2024-06-01_l", Quality: domain.QualityLow, FileCount: 6},
	}
	audio := []domain.DatedFolder{
		folder(t, "2024-06-01", domain.ModalityAudio, 10),
	}

	counts := BuildDailyCounts(images, audio)
	require.Len(t, counts, 1)
	assert.Equal(t, 10, counts[0].NImages)
	assert.Equal(t, 10, counts[0].NAudio)
	assert.Equal(t, 20, counts[0].TotalFiles)
}

func TestValidateScan(t *testing.T) {
	folders := []domain.DatedFolder{
		folder(t, "2024-06-01", domain.ModalityImage, 1),
		folder(t, "2024-06-02", domain.ModalityImage, 1),
	}

	t.Run("agreement", func(t *testing.T) {
		report := ValidateScan(context.Background(), nil,
			[]time.Time{day(t, "2024-06-01"), day(t, "2024-06-02")}, folders)
		assert.True(t, report.OK())
	})

	t.Run("disagreement both ways", func(t *testing.T) {
		report := ValidateScan(context.Background(), nil,
			[]time.Time{day(t, "2024-06-02"), day(t, "2024-06-09")}, folders)
		require.False(t, report.OK())
		assert.Equal(t, []time.Time{day(t, "2024-06-01")}, report.MissingFromSummary)
		assert.Equal(t, []time.Time{day(t, "2024-06-09")}, report.ExtraInSummary)
	})
}
