package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths is the single source of truth for pipeline output locations. Every
// derived table is written under ResultsDir with a well-known name so that
// each stage can find the previous stage's output.
type Paths struct {
	ResultsDir string `yaml:"results_dir" envconfig:"RESULTS_DIR" default:"results"`

	// Well-known table files under ResultsDir
	DatasetSummaryCSV string `yaml:"-" envconfig:"-"`
	InvalidDatesCSV   string `yaml:"-" envconfig:"-"`
	DailyCountsCSV    string `yaml:"-" envconfig:"-"`
	FolderPairingCSV  string `yaml:"-" envconfig:"-"`
	AudioQualityCSV   string `yaml:"-" envconfig:"-"`
	ImageQualityCSV   string `yaml:"-" envconfig:"-"`
	LogEventsCSV      string `yaml:"-" envconfig:"-"`
	AudioDailyCSV     string `yaml:"-" envconfig:"-"`
	ImageDailyCSV     string `yaml:"-" envconfig:"-"`
	LogsDailyCSV      string `yaml:"-" envconfig:"-"`
	SensorDailyCSV    string `yaml:"-" envconfig:"-"`
	AudioJoinedCSV    string `yaml:"-" envconfig:"-"`
	DailyMasterCSV    string `yaml:"-" envconfig:"-"`
	CorrelationsCSV   string `yaml:"-" envconfig:"-"`
	MasterReportXLSX  string `yaml:"-" envconfig:"-"`
}

// Resolve fills in the well-known file paths under ResultsDir. Relative
// ResultsDir values are resolved against the current working directory.
func (p *Paths) Resolve() error {
	if p.ResultsDir == "" {
		p.ResultsDir = "results"
	}
	abs, err := filepath.Abs(p.ResultsDir)
	if err != nil {
		return fmt.Errorf("resolve results dir: %w", err)
	}
	p.ResultsDir = abs

	p.DatasetSummaryCSV = filepath.Join(abs, "dataset_summary.csv")
	p.InvalidDatesCSV = filepath.Join(abs, "dataset_invalid_dates.csv")
	p.DailyCountsCSV = filepath.Join(abs, "daily_counts.csv")
	p.FolderPairingCSV = filepath.Join(abs, "folder_pairing_summary.csv")
	p.AudioQualityCSV = filepath.Join(abs, "audio_quality.csv")
	p.ImageQualityCSV = filepath.Join(abs, "image_quality.csv")
	p.LogEventsCSV = filepath.Join(abs, "log_events.csv")
	p.AudioDailyCSV = filepath.Join(abs, "audio_quality_daily.csv")
	p.ImageDailyCSV = filepath.Join(abs, "image_quality_daily.csv")
	p.LogsDailyCSV = filepath.Join(abs, "logs_daily.csv")
	p.SensorDailyCSV = filepath.Join(abs, "audio_sensor_daily.csv")
	p.AudioJoinedCSV = filepath.Join(abs, "audio_daily_joined.csv")
	p.DailyMasterCSV = filepath.Join(abs, "daily_master.csv")
	p.CorrelationsCSV = filepath.Join(abs, "daily_master_correlations.csv")
	p.MasterReportXLSX = filepath.Join(abs, "daily_master_report.xlsx")
	return nil
}

// EnsureResultsDir creates the results directory if it does not exist.
func (p *Paths) EnsureResultsDir() error {
	if err := os.MkdirAll(p.ResultsDir, 0755); err != nil {
		return fmt.Errorf("create results directory %s: %w", p.ResultsDir, err)
	}
	return nil
}
