package metrics

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWAV writes a mono 16-bit WAV file with the given samples.
func writeWAV(t *testing.T, path string, sampleRate int, samples []int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Data:           samples,
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

// squareWave alternates between +amp and -amp every sample.
func squareWave(amp, n int) []int {
	samples := make([]int, n)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = amp
		} else {
			samples[i] = -amp
		}
	}
	return samples
}

func TestExtractAudioFile_SquareWave(t *testing.T) {
	root := t.TempDir()
	rel := filepath.Join("2024-06-01", "clip.wav")
	// 16384/32768 = 0.5 amplitude
	writeWAV(t, filepath.Join(root, rel), 8000, squareWave(16384, 8000))

	rec, err := ExtractAudioFile(root, rel)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-01", rec.Date.Format("2006-01-02"))
	assert.Equal(t, "2024-06-01/clip.wav", rec.RelativePath)
	assert.Equal(t, 8000, rec.SampleRate)
	assert.InDelta(t, 1.0, rec.DurationSec, 1e-9)
	assert.InDelta(t, 0.5, rec.RMS, 1e-9)
	assert.InDelta(t, 0.5, rec.Peak, 1e-9)
	require.NotNil(t, rec.CrestFactor)
	assert.InDelta(t, 1.0, *rec.CrestFactor, 1e-9)
	// every adjacent pair flips sign
	assert.InDelta(t, 1.0, rec.ZCR, 1e-9)
	assert.InDelta(t, 20*math.Log10(0.5), rec.RMSDBFS, 1e-9)
	assert.Greater(t, rec.FileSizeBytes, int64(0))
}

func TestExtractAudioFile_SilenceHasNoCrestFactor(t *testing.T) {
	root := t.TempDir()
	rel := filepath.Join("2024-06-01", "silence.wav")
	writeWAV(t, filepath.Join(root, rel), 8000, make([]int, 4000))

	rec, err := ExtractAudioFile(root, rel)
	require.NoError(t, err)

	assert.Zero(t, rec.RMS)
	assert.Nil(t, rec.CrestFactor)
	// floored at epsilon, never -Inf
	assert.InDelta(t, 20*math.Log10(rmsEpsilon), rec.RMSDBFS, 1e-9)
	assert.False(t, math.IsInf(rec.RMSDBFS, -1))
}

func TestExtractAudioFile_Failures(t *testing.T) {
	root := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := ExtractAudioFile(root, filepath.Join("2024-06-01", "absent.wav"))
		assert.Error(t, err)
	})

	t.Run("corrupt data", func(t *testing.T) {
		rel := filepath.Join("2024-06-01", "corrupt.wav")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "2024-06-01"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, rel), []byte("not a wav"), 0644))
		_, err := ExtractAudioFile(root, rel)
		assert.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		rel := filepath.Join("2024-06-01", "clip.ogg")
		require.NoError(t, os.WriteFile(filepath.Join(root, rel), []byte("x"), 0644))
		_, err := ExtractAudioFile(root, rel)
		assert.Error(t, err)
	})

	t.Run("no date in path", func(t *testing.T) {
		writeWAV(t, filepath.Join(root, "loose", "clip.wav"), 8000, squareWave(100, 100))
		_, err := ExtractAudioFile(root, filepath.Join("loose", "clip.wav"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "capture date")
	})
}

func TestZeroCrossingRate(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    float64
	}{
		{"alternating", []float64{1, -1, 1, -1}, 1.0},
		{"constant positive", []float64{1, 1, 1}, 0.0},
		{"single crossing", []float64{1, 1, -1}, 0.5},
		{"too short", []float64{1}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, zeroCrossingRate(tt.samples), 1e-9)
		})
	}
}

func TestRMSAndPeak(t *testing.T) {
	rms, peak := rmsAndPeak([]float64{0.3, -0.4})
	assert.InDelta(t, math.Sqrt((0.09+0.16)/2), rms, 1e-9)
	assert.InDelta(t, 0.4, peak, 1e-9)
}
