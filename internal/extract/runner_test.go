package extract

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trafficpulse/internal/config"
	"trafficpulse/internal/errors"
	"trafficpulse/internal/metrics"
)

func writeTestPNG(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 3)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestRunner_RunImages(t *testing.T) {
	root := t.TempDir()
	writeTestPNG(t, root, "2024-06-01/frame_a.png")
	writeTestPNG(t, root, "2024-06-02_h/frame_b.png")
	touch(t, root, "2024-06-01/broken.png") // not a real image

	r := NewRunner(config.Extract{Workers: 2}, nil)

	records, failures, err := r.RunImages(context.Background(), root, []string{
		"2024-06-01/frame_a.png",
		"2024-06-01/broken.png",
		"2024-06-02_h/frame_b.png",
	})
	require.NoError(t, err)

	require.Len(t, records, 2)
	require.Len(t, failures, 1)
	assert.Equal(t, "2024-06-01/broken.png", failures[0].RelativePath)
	assert.Equal(t, "2024-06-01/frame_a.png", records[0].RelativePath)
	assert.Equal(t, "2024-06-01", records[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-06-02", records[1].Date.Format("2006-01-02"))
}

func TestRunner_RunAudio_AllFailuresIsFatal(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "2024-06-01/broken.wav")

	r := NewRunner(config.Extract{Workers: 1}, nil)

	_, failures, err := r.RunAudio(context.Background(), root, []string{"2024-06-01/broken.wav"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoUsableRows)
	assert.Len(t, failures, 1)
}

func TestRunner_Files(t *testing.T) {
	root := t.TempDir()
	writeTestPNG(t, root, "2024-06-01/a.png")
	writeTestPNG(t, root, "2024-06-01/b.png")
	writeTestPNG(t, root, "2024-06-02/c.png")

	r := NewRunner(config.Extract{MaxFilesPerDay: 1, RandomSeed: 42}, nil)

	files, err := r.Files(root, metrics.ImageExtensions)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
