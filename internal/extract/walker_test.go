package extract

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficpulse/internal/exporter"
	"trafficpulse/internal/metrics"
)

func touch(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestCollectFiles_ExtensionFilter(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "2024-06-01/a.wav")
	touch(t, root, "2024-06-01/b.MP3")
	touch(t, root, "2024-06-01/notes.txt")
	touch(t, root, "2024-06-02_h/c.flac")

	files, err := CollectFiles(root, metrics.AudioExtensions, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024-06-01/a.wav",
		"2024-06-01/b.MP3",
		"2024-06-02_h/c.flac",
	}, files)
}

func TestCollectFiles_CalendarRestriction(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "2024-06-01/a.wav")
	touch(t, root, "2024-06-02_h/b.wav")
	touch(t, root, "2024-06-03/c.wav")

	calendar := map[string]bool{"2024-06-01": true, "2024-06-02": true}
	files, err := CollectFiles(root, metrics.AudioExtensions, calendar)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-01/a.wav", "2024-06-02_h/b.wav"}, files)
}

func TestLoadCalendar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "daily.csv")
	w := exporter.NewCSVWriter(nil)
	require.NoError(t, w.WriteSimpleCSV(path, []string{"date", "n_images"}, [][]string{
		{"2024-06-01", "10"},
		{"2024-06-02", "0"},
	}))

	dates, err := LoadCalendar(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"2024-06-01": true, "2024-06-02": true}, dates)
}

func TestLoadCalendar_MissingDateColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "daily.csv")
	w := exporter.NewCSVWriter(nil)
	require.NoError(t, w.WriteSimpleCSV(path, []string{"day"}, [][]string{{"2024-06-01"}}))

	_, err := LoadCalendar(path)
	require.Error(t, err)
}

func TestSample_PerDayCap(t *testing.T) {
	files := []string{
		"2024-06-01/a.wav", "2024-06-01/b.wav", "2024-06-01/c.wav",
		"2024-06-02/d.wav",
	}

	sampled := Sample(files, 2, 0, 42)
	require.Len(t, sampled, 3)
	assert.Equal(t, "2024-06-02/d.wav", sampled[len(sampled)-1])
	assert.True(t, sort.StringsAreSorted(sampled))
}

func TestSample_Deterministic(t *testing.T) {
	var files []string
	for _, d := range []string{"2024-06-01", "2024-06-02"} {
		for _, n := range []string{"a", "b", "c", "d", "e"} {
			files = append(files, d+"/"+n+".wav")
		}
	}

	first := Sample(files, 3, 0, 42)
	second := Sample(files, 3, 0, 42)
	assert.Equal(t, first, second)
	assert.Len(t, first, 6)
}

func TestSample_TotalCap(t *testing.T) {
	files := []string{
		"2024-06-01/a.wav", "2024-06-01/b.wav",
		"2024-06-02/c.wav", "2024-06-02/d.wav",
	}

	sampled := Sample(files, 0, 3, 42)
	assert.Len(t, sampled, 3)
}

func TestSample_NoCapsPassThrough(t *testing.T) {
	files := []string{"2024-06-01/a.wav"}
	assert.Equal(t, files, Sample(files, 0, 0, 42))
}
