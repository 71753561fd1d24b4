package domain

import (
	"time"
)

// AudioFileRecord holds the per-file audio quality metrics. One record per
// successfully decoded file; a failed decode produces an ExtractError instead.
type AudioFileRecord struct {
	Date          time.Time `json:"date"`
	RelativePath  string    `json:"relative_path"`
	DurationSec   float64   `json:"duration_sec"`
	RMS           float64   `json:"rms"`
	RMSDBFS       float64   `json:"rms_dbfs"`
	Peak          float64   `json:"peak"`
	CrestFactor   *float64  `json:"crest_factor"` // nil when RMS == 0
	ZCR           float64   `json:"zcr"`
	SampleRate    int       `json:"sample_rate"`
	FileSizeBytes int64     `json:"file_size_bytes"`
}

// ImageFileRecord holds the per-file image quality metrics.
type ImageFileRecord struct {
	Date           time.Time `json:"date"`
	RelativePath   string    `json:"relative_path"`
	BlurVariance   float64   `json:"blur_laplacian_var"`
	BrightnessMean float64   `json:"brightness_mean"`
	ContrastStd    float64   `json:"contrast_std"`
	FileSizeBytes  int64     `json:"file_size_bytes"`
}

// ExtractError records a single file whose extraction failed. It carries no
// metric fields and is excluded from aggregation, counted toward the error
// total only.
type ExtractError struct {
	RelativePath string `json:"relative_path"`
	Message      string `json:"error_message"`
}
