package domain

import (
	"time"
)

// AudioDaily is the one-row-per-date reduction of audio file records.
type AudioDaily struct {
	Date         time.Time `json:"date"`
	NAudio       int       `json:"n_audio"`
	RMSDBFSMean  float64   `json:"rms_dbfs_mean"`
	RMSDBFSP10   float64   `json:"rms_dbfs_p10"`
	RMSDBFSP90   float64   `json:"rms_dbfs_p90"`
	ZCRMean      float64   `json:"zcr_mean"`
	ZCRStd       *float64  `json:"zcr_std"`
	DurationMean float64   `json:"duration_mean"`
	FileSizeMean float64   `json:"file_size_mean"`
}

// ImageDaily is the one-row-per-date reduction of image file records.
type ImageDaily struct {
	Date           time.Time `json:"date"`
	NImages        int       `json:"n_images"`
	BlurMean       float64   `json:"blur_mean"`
	BlurP10        float64   `json:"blur_p10"`
	BrightnessMean float64   `json:"brightness_mean"`
	ContrastMean   float64   `json:"contrast_mean"`
	FileSizeMean   float64   `json:"file_size_mean"`
}

// LogDaily is the one-row-per-date reduction of flattened log events.
// Mean fields are nil when no event that day carried the source value.
type LogDaily struct {
	Date       time.Time `json:"date"`
	NEvents    int       `json:"log_n_events"`
	ProbsMean  *float64  `json:"log_probs_mean"`
	Inter0Mean *float64  `json:"intersection_0_mean"`
	Inter1Mean *float64  `json:"intersection_1_mean"`
	Cross00Mean *float64 `json:"cross_0_0_mean"`
	Cross01Mean *float64 `json:"cross_0_1_mean"`
	Cross10Mean *float64 `json:"cross_1_0_mean"`
	Cross11Mean *float64 `json:"cross_1_1_mean"`
	BoxX1Mean  *float64  `json:"box_x1_mean"`
	BoxY1Mean  *float64  `json:"box_y1_mean"`
	BoxX2Mean  *float64  `json:"box_x2_mean"`
	BoxY2Mean  *float64  `json:"box_y2_mean"`
}

// SensorDaily is the one-row-per-date reduction of sensor readings.
type SensorDaily struct {
	Date       time.Time `json:"date"`
	SndLvlMean *float64  `json:"snd_lvl_mean"`
	DBAMean    float64   `json:"dba_mean"`
	DBAP90     float64   `json:"dba_p90"`
	NEvents    int       `json:"n_events"`
}
