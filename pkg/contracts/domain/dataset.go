package domain

import (
	"time"
)

// Modality identifies which capture pipeline a folder or file belongs to.
type Modality string

const (
	ModalityImage Modality = "image"
	ModalityAudio Modality = "audio"
)

// Quality is the optional capture-quality suffix on a dated folder name.
type Quality string

const (
	QualityUnspecified Quality = "u"
	QualityHigh        Quality = "h"
	QualityLow         Quality = "l"
)

// DatedFolder represents one valid dated capture folder on disk.
// Instances are immutable once computed by the scanner.
type DatedFolder struct {
	Date           time.Time `json:"date"`
	Modality       Modality  `json:"modality"`
	Quality        Quality   `json:"quality"`
	FolderName     string    `json:"folder_name"`
	FileCount      int       `json:"file_count"`
	TotalSizeBytes int64     `json:"total_size_bytes"`
}

// InvalidReason classifies why a date-shaped folder was rejected.
type InvalidReason string

const (
	ReasonBadCalendarDate InvalidReason = "bad_calendar_date"
	ReasonYearOutOfRange  InvalidReason = "year_out_of_range"
)

// InvalidFolderRecord retains a folder that matched the naming pattern but
// failed date validation. These are reported, never silently dropped.
type InvalidFolderRecord struct {
	FolderName     string        `json:"folder_name"`
	ParsedDate     string        `json:"parsed_date"`
	Modality       Modality      `json:"modality"`
	Quality        Quality       `json:"quality"`
	FileCount      int           `json:"file_count"`
	TotalSizeBytes int64         `json:"total_size_bytes"`
	Reason         InvalidReason `json:"reason"`
}

// PairStatus describes per-date folder coverage across the two modalities.
type PairStatus string

const (
	PairStatusPaired    PairStatus = "paired"
	PairStatusImageOnly PairStatus = "image_only"
	PairStatusAudioOnly PairStatus = "audio_only"
)

// PairingRecord is one row of the folder pairing report.
type PairingRecord struct {
	Date       time.Time  `json:"date"`
	HasImage   bool       `json:"has_image"`
	HasAudio   bool       `json:"has_audio"`
	PairStatus PairStatus `json:"pair_status"`
}

// DailyCount is the per-date file-count table derived from valid folders,
// consumed by the cross-dataset joiner.
type DailyCount struct {
	Date       time.Time `json:"date"`
	NImages    int       `json:"n_images"`
	NAudio     int       `json:"n_audio"`
	TotalFiles int       `json:"total_files"`
}
