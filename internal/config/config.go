package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"trafficpulse/internal/errors"
)

// Config represents the complete pipeline configuration. Every component
// receives the section it needs at construction; nothing reads module-level
// state.
type Config struct {
	Dataset Dataset `yaml:"dataset" envconfig:"DATASET"`
	Extract Extract `yaml:"extract" envconfig:"EXTRACT"`
	Logs    Logs    `yaml:"logs" envconfig:"LOGS"`
	Anomaly Anomaly `yaml:"anomaly" envconfig:"ANOMALY"`
	Logging Logging `yaml:"logging" envconfig:"LOGGING"`
	Paths   Paths   `yaml:"paths" envconfig:"PATHS"`
}

// Dataset configures folder scanning and date validation.
type Dataset struct {
	ImageRoot string `yaml:"image_root" envconfig:"IMAGE_ROOT"`
	AudioRoot string `yaml:"audio_root" envconfig:"AUDIO_ROOT"`
	// Inclusive valid-year range for dated folders
	YearMin int `yaml:"year_min" envconfig:"YEAR_MIN" default:"2022" validate:"min=1970"`
	YearMax int `yaml:"year_max" envconfig:"YEAR_MAX" default:"2025" validate:"gtefield=YearMin"`
}

// Extract configures per-file metric extraction.
type Extract struct {
	Workers int `yaml:"workers" envconfig:"WORKERS" default:"0" validate:"min=0"` // 0 = GOMAXPROCS
	// Sampling caps; 0 disables the cap
	MaxFilesPerDay int   `yaml:"max_files_per_day" envconfig:"MAX_FILES_PER_DAY" default:"0" validate:"min=0"`
	MaxTotalFiles  int   `yaml:"max_total_files" envconfig:"MAX_TOTAL_FILES" default:"0" validate:"min=0"`
	RandomSeed     int64 `yaml:"random_seed" envconfig:"RANDOM_SEED" default:"42"`
	// Optional calendar CSV restricting extraction to listed dates
	CalendarFile string `yaml:"calendar_file" envconfig:"CALENDAR_FILE"`
}

// Logs configures traffic-log flattening.
type Logs struct {
	Root        string `yaml:"root" envconfig:"ROOT"`
	FilePattern string `yaml:"file_pattern" envconfig:"FILE_PATTERN" default:"traffic.txt*"`
	// 0 = unlimited
	MaxLines int `yaml:"max_lines" envconfig:"MAX_LINES" default:"0" validate:"min=0"`
	// Number of early parse errors surfaced as warnings before counting only
	MaxWarnings int `yaml:"max_warnings" envconfig:"MAX_WARNINGS" default:"10" validate:"min=0"`
}

// Anomaly holds the heuristic thresholds used by the joiner. The factors are
// applied to each column's own per-run median; the capture-failure pair is the
// sensor-vs-recordings heuristic. None of these values have a derivation
// beyond the original dataset, so they stay configurable.
type Anomaly struct {
	CountFactor   float64 `yaml:"count_factor" envconfig:"COUNT_FACTOR" default:"0.3" validate:"min=0,max=1"`
	QualityFactor float64 `yaml:"quality_factor" envconfig:"QUALITY_FACTOR" default:"0.4" validate:"min=0,max=1"`
	LogFactor     float64 `yaml:"log_factor" envconfig:"LOG_FACTOR" default:"0.3" validate:"min=0,max=1"`

	CaptureFailureDBA      float64 `yaml:"capture_failure_dba" envconfig:"CAPTURE_FAILURE_DBA" default:"75"`
	CaptureFailureMaxAudio int     `yaml:"capture_failure_max_audio" envconfig:"CAPTURE_FAILURE_MAX_AUDIO" default:"2" validate:"min=0"`
}

// Logging contains logging configuration.
type Logging struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Load loads configuration from environment variables (prefix TRAFFIC) layered
// over an optional YAML file. Environment takes precedence.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, errors.InputMissing(configFile)
		}
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configFile, err)
		}
	}

	// Environment overrides file values; envconfig also applies defaults for
	// anything still unset.
	if err := envconfig.Process("TRAFFIC", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a configuration with all documented defaults applied and no
// file or environment input. Used by tests and as a base for flag overrides.
func Default() *Config {
	var cfg Config
	// envconfig applies struct-tag defaults even with no variables set
	if err := envconfig.Process("TRAFFIC_DEFAULTS_UNUSED", &cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &cfg
}

// Validate checks the configuration against its struct-tag constraints.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.NewWithDetails("CONFIG_INVALID", "configuration validation failed", err.Error())
	}
	return nil
}
