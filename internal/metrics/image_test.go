package metrics

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func uniformGray(value uint8, w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

func checkerboard(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func TestExtractImageFile_UniformImage(t *testing.T) {
	root := t.TempDir()
	rel := filepath.Join("2024-06-01", "flat.png")
	writePNG(t, filepath.Join(root, rel), uniformGray(128, 16, 16))

	rec, err := ExtractImageFile(root, rel)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-01", rec.Date.Format("2006-01-02"))
	assert.InDelta(t, 128, rec.BrightnessMean, 1.0)
	// no intensity variation: contrast and edge response are both zero
	assert.InDelta(t, 0, rec.ContrastStd, 1e-9)
	assert.InDelta(t, 0, rec.BlurVariance, 1e-9)
	assert.Greater(t, rec.FileSizeBytes, int64(0))
}

func TestExtractImageFile_SharpBeatsFlat(t *testing.T) {
	root := t.TempDir()
	sharpRel := filepath.Join("2024-06-01", "sharp.png")
	flatRel := filepath.Join("2024-06-01", "flat.png")
	writePNG(t, filepath.Join(root, sharpRel), checkerboard(16, 16))
	writePNG(t, filepath.Join(root, flatRel), uniformGray(128, 16, 16))

	sharp, err := ExtractImageFile(root, sharpRel)
	require.NoError(t, err)
	flat, err := ExtractImageFile(root, flatRel)
	require.NoError(t, err)

	assert.Greater(t, sharp.BlurVariance, flat.BlurVariance)
	assert.Greater(t, sharp.ContrastStd, flat.ContrastStd)
}

func TestExtractImageFile_Failures(t *testing.T) {
	root := t.TempDir()

	t.Run("corrupt file", func(t *testing.T) {
		rel := filepath.Join("2024-06-01", "corrupt.png")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "2024-06-01"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, rel), []byte("not an image"), 0644))
		_, err := ExtractImageFile(root, rel)
		assert.Error(t, err)
	})

	t.Run("no date in path", func(t *testing.T) {
		rel := filepath.Join("misc", "img.png")
		writePNG(t, filepath.Join(root, rel), uniformGray(10, 4, 4))
		_, err := ExtractImageFile(root, rel)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "capture date")
	})
}

func TestLaplacianVariance_TinyImage(t *testing.T) {
	// interiors require at least 3x3
	assert.Zero(t, laplacianVariance([]float64{1, 2, 3, 4}, 2, 2))
}

func TestMeanAndStd(t *testing.T) {
	mean, std := meanAndStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, 2.0, std, 1e-9)

	mean, std = meanAndStd(nil)
	assert.Zero(t, mean)
	assert.Zero(t, std)
}
