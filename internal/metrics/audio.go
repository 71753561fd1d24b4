package metrics

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/mewkiz/flac"

	"trafficpulse/internal/dataset"
	"trafficpulse/pkg/contracts/domain"
)

// rmsEpsilon floors the RMS before the dBFS conversion so silence maps to a
// large negative level instead of -Inf.
const rmsEpsilon = 1e-12

// AudioExtensions lists the decodable audio file extensions (lowercase).
var AudioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".flac": true,
}

// ExtractAudioFile decodes one audio file under root and computes its quality
// metrics. The capture date comes from the first component of relPath, never
// from file metadata.
func ExtractAudioFile(root, relPath string) (domain.AudioFileRecord, error) {
	var rec domain.AudioFileRecord

	date, ok := dataset.InferDate(firstPathComponent(relPath))
	if !ok {
		return rec, fmt.Errorf("no capture date in path %q", relPath)
	}

	fullPath := filepath.Join(root, relPath)
	info, err := os.Stat(fullPath)
	if err != nil {
		return rec, fmt.Errorf("stat: %w", err)
	}

	samples, sampleRate, err := decodeAudio(fullPath)
	if err != nil {
		return rec, err
	}
	if len(samples) == 0 {
		return rec, fmt.Errorf("decoded zero samples")
	}

	rms, peak := rmsAndPeak(samples)

	rec = domain.AudioFileRecord{
		Date:          date,
		RelativePath:  filepath.ToSlash(relPath),
		DurationSec:   float64(len(samples)) / float64(sampleRate),
		RMS:           rms,
		RMSDBFS:       20 * math.Log10(math.Max(rms, rmsEpsilon)),
		Peak:          peak,
		ZCR:           zeroCrossingRate(samples),
		SampleRate:    sampleRate,
		FileSizeBytes: info.Size(),
	}
	if rms > 0 {
		crest := peak / rms
		rec.CrestFactor = &crest
	}
	return rec, nil
}

// decodeAudio reads a whole audio file into mono float64 samples in [-1, 1].
func decodeAudio(path string) ([]float64, int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(path)
	case ".mp3":
		return decodeMP3(path)
	case ".flac":
		return decodeFLAC(path)
	default:
		return nil, 0, fmt.Errorf("unsupported audio extension %q", filepath.Ext(path))
	}
}

func decodeWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode wav: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, 0, fmt.Errorf("decode wav: empty PCM data")
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		channels = 1
	}
	bitDepth := int(decoder.BitDepth)
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	samples := make([]float64, 0, len(buf.Data)/channels)
	for i := 0; i+channels <= len(buf.Data); i += channels {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i+c]) / scale
		}
		samples = append(samples, sum/float64(channels))
	}
	return samples, buf.Format.SampleRate, nil
}

func decodeMP3(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decode mp3: %w", err)
	}

	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, 0, fmt.Errorf("read mp3 pcm: %w", err)
	}

	// go-mp3 always emits 16-bit little-endian stereo
	samples := make([]float64, 0, len(pcm)/4)
	for i := 0; i+4 <= len(pcm); i += 4 {
		left := int16(uint16(pcm[i]) | uint16(pcm[i+1])<<8)
		right := int16(uint16(pcm[i+2]) | uint16(pcm[i+3])<<8)
		samples = append(samples, (float64(left)+float64(right))/2/32768)
	}
	return samples, decoder.SampleRate(), nil
}

func decodeFLAC(path string) ([]float64, int, error) {
	stream, err := flac.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("decode flac: %w", err)
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	if channels <= 0 {
		channels = 1
	}
	scale := float64(int64(1) << (stream.Info.BitsPerSample - 1))

	var samples []float64
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("decode flac frame: %w", err)
		}

		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			var sum float64
			for c := 0; c < channels && c < len(frame.Subframes); c++ {
				sum += float64(frame.Subframes[c].Samples[i]) / scale
			}
			samples = append(samples, sum/float64(channels))
		}
	}
	return samples, int(stream.Info.SampleRate), nil
}

// rmsAndPeak computes the root-mean-square and peak absolute amplitude.
func rmsAndPeak(samples []float64) (float64, float64) {
	var sumSquares, peak float64
	for _, s := range samples {
		sumSquares += s * s
		if abs := math.Abs(s); abs > peak {
			peak = abs
		}
	}
	return math.Sqrt(sumSquares / float64(len(samples))), peak
}

// zeroCrossingRate is the fraction of adjacent sample pairs with opposite
// sign. Zero counts as non-negative.
func zeroCrossingRate(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	var crossings int
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0) != (samples[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(samples)-1)
}

func firstPathComponent(relPath string) string {
	rel := filepath.ToSlash(relPath)
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		return rel[:i]
	}
	return rel
}
