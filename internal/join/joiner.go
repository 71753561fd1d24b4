package join

import (
	"context"
	"log/slog"

	"trafficpulse/internal/config"
)

// Standard input schemas for the pipeline's daily tables. Column choices
// avoid name collisions across the joins: the counts table is the sole
// carrier of n_images in the master join.
var (
	CountsSchema = Schema{
		DateColumn: "date",
		Columns:    []string{"n_images", "n_audio", "total_files"},
	}
	ImageDailySchema = Schema{
		DateColumn: "date",
		Columns:    []string{"blur_mean", "blur_p10", "brightness_mean", "contrast_mean"},
	}
	LogsDailySchema = Schema{
		DateColumn: "date",
		Columns: []string{
			"log_n_events", "log_probs_mean",
			"intersection_0_mean", "intersection_1_mean",
			"cross_0_0_mean", "cross_0_1_mean", "cross_1_0_mean", "cross_1_1_mean",
			"box_x1_mean", "box_y1_mean", "box_x2_mean", "box_y2_mean",
		},
	}
	AudioDailySchema = Schema{
		DateColumn: "date",
		Columns: []string{
			"n_audio", "rms_dbfs_mean", "rms_dbfs_p10", "rms_dbfs_p90",
			"zcr_mean", "zcr_std", "duration_mean", "file_size_mean",
		},
	}
	SensorDailySchema = Schema{
		DateColumn: "date",
		Columns:    []string{"snd_lvl_mean", "dba_mean", "dba_p90", "n_events"},
	}
)

// Joiner builds the cross-dataset artifacts.
type Joiner struct {
	cfg    config.Anomaly
	logger *slog.Logger
}

func NewJoiner(cfg config.Anomaly, logger *slog.Logger) *Joiner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Joiner{cfg: cfg, logger: logger}
}

// BuildMaster outer-joins counts, image quality, and log events into the
// daily master table, computes the correlation matrix over the merged
// numeric columns, and adds the anomaly flags.
func (j *Joiner) BuildMaster(ctx context.Context, countsPath, imagePath, logsPath string) (*Table, CorrelationMatrix, error) {
	counts, err := LoadTable(countsPath, CountsSchema)
	if err != nil {
		return nil, CorrelationMatrix{}, err
	}
	imageDaily, err := LoadTable(imagePath, ImageDailySchema)
	if err != nil {
		return nil, CorrelationMatrix{}, err
	}
	logsDaily, err := LoadTable(logsPath, LogsDailySchema)
	if err != nil {
		return nil, CorrelationMatrix{}, err
	}

	j.logger.InfoContext(ctx, "merging daily tables",
		slog.Int("counts_rows", len(counts.Rows)),
		slog.Int("image_rows", len(imageDaily.Rows)),
		slog.Int("logs_rows", len(logsDaily.Rows)))

	master, err := Merge(counts, imageDaily, Outer)
	if err != nil {
		return nil, CorrelationMatrix{}, err
	}
	master, err = Merge(master, logsDaily, Outer)
	if err != nil {
		return nil, CorrelationMatrix{}, err
	}

	// Correlate the measured columns only; the 1/0 flag columns appended
	// below are derived from them and would pollute the matrix.
	corr := Correlations(master)
	AddAnomalyFlags(master, j.cfg, j.logger)

	j.logger.InfoContext(ctx, "daily master built",
		slog.Int("rows", len(master.Rows)),
		slog.Int("columns", len(master.Columns)))
	return master, corr, nil
}

// BuildAudioJoined left-joins the waveform quality daily table with the
// sensor daily table, quality side primary, and adds the sensor flags.
func (j *Joiner) BuildAudioJoined(ctx context.Context, qualityPath, sensorPath string) (*Table, error) {
	quality, err := LoadTable(qualityPath, AudioDailySchema)
	if err != nil {
		return nil, err
	}
	sensor, err := LoadTable(sensorPath, SensorDailySchema)
	if err != nil {
		return nil, err
	}

	joined, err := Merge(quality, sensor, Left)
	if err != nil {
		return nil, err
	}
	AddSensorFlags(joined, j.cfg)

	withSensor := 0
	for _, r := range joined.Rows {
		if IsSet(r.Cells[joined.ColumnIndex(ColSensorPresent)]) {
			withSensor++
		}
	}
	j.logger.InfoContext(ctx, "audio join built",
		slog.Int("rows", len(joined.Rows)),
		slog.Int("with_sensor", withSensor),
		slog.Int("without_sensor", len(joined.Rows)-withSensor))
	return joined, nil
}
