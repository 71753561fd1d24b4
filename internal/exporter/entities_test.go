package exporter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficpulse/pkg/contracts/domain"
)

func TestWriteDailyCounts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "daily_counts.csv")
	d := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	w := NewCSVWriter(nil)
	require.NoError(t, w.WriteDailyCounts(path, []domain.DailyCount{
		{Date: d, NImages: 100, NAudio: 50, TotalFiles: 150},
	}))

	table, err := ReadCSV(path, "date", "n_images", "n_audio", "total_files")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "2024-06-01", table.Cell(0, "date"))
	assert.Equal(t, "150", table.Cell(0, "total_files"))
}

func TestWriteAudioDaily_NilSafeCells(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audio_quality_daily.csv")
	d := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	w := NewCSVWriter(nil)
	require.NoError(t, w.WriteAudioDaily(path, []domain.AudioDaily{
		{Date: d, NAudio: 3, RMSDBFSMean: -20.5, RMSDBFSP10: -25, RMSDBFSP90: -16},
	}))

	table, err := ReadCSV(path, "date", "rms_dbfs_mean", "zcr_std")
	require.NoError(t, err)
	assert.Equal(t, "-20.5", table.Cell(0, "rms_dbfs_mean"))
	// an undefined std is a missing cell, never a NaN literal
	assert.Equal(t, "", table.Cell(0, "zcr_std"))
}

func TestWriteAudioRecords_MissingCrestFactor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audio_quality.csv")
	d := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	w := NewCSVWriter(nil)
	require.NoError(t, w.WriteAudioRecords(path, []domain.AudioFileRecord{
		{Date: d, RelativePath: "2024-06-01/silent.wav", SampleRate: 48000},
	}))

	table, err := ReadCSV(path, "crest_factor", "sample_rate")
	require.NoError(t, err)
	assert.Equal(t, "", table.Cell(0, "crest_factor"))
	assert.Equal(t, "48000", table.Cell(0, "sample_rate"))
}
