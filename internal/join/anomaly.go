package join

import (
	"log/slog"

	"trafficpulse/internal/aggregate"
	"trafficpulse/internal/config"
)

// Flag column names added by the anomaly pass.
const (
	ColCountAnomaly   = "count_anomaly"
	ColQualityAnomaly = "quality_anomaly"
	ColLogAnomaly     = "log_anomaly"
	ColAnyAnomaly     = "any_anomaly"

	ColSensorMissing  = "sensor_missing"
	ColSensorPresent  = "sensor_present"
	ColCaptureFailure = "flag_capture_failure_candidate"
)

// Flag columns hold 1/0 so they stay numeric through the CSV layer.
var (
	flagTrue  = 1.0
	flagFalse = 0.0
)

func flagValue(b bool) *float64 {
	if b {
		return &flagTrue
	}
	return &flagFalse
}

// IsSet reports whether a flag cell is set.
func IsSet(cell *float64) bool {
	return cell != nil && *cell != 0
}

// medianFlagSpec flags rows whose column value is below factor times the
// column's own per-run median. Thresholds are recomputed every run.
type medianFlagSpec struct {
	column string
	factor float64
	flag   string
}

// AddAnomalyFlags appends count/quality/log anomaly flags to the master
// table, each relative to its column's median, plus their disjunction.
// A spec whose source column is absent is skipped.
func AddAnomalyFlags(t *Table, cfg config.Anomaly, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	specs := []medianFlagSpec{
		{column: "total_files", factor: cfg.CountFactor, flag: ColCountAnomaly},
		{column: "blur_mean", factor: cfg.QualityFactor, flag: ColQualityAnomaly},
		{column: "log_n_events", factor: cfg.LogFactor, flag: ColLogAnomaly},
	}

	var applied []medianFlagSpec
	for _, spec := range specs {
		if t.ColumnIndex(spec.column) < 0 {
			logger.Warn("anomaly source column absent, skipping flag",
				slog.String("column", spec.column),
				slog.String("flag", spec.flag))
			continue
		}
		applied = append(applied, spec)
	}

	thresholds := make([]float64, len(applied))
	indices := make([]int, len(applied))
	for i, spec := range applied {
		thresholds[i] = aggregate.Median(t.Column(spec.column)) * spec.factor
		indices[i] = t.ColumnIndex(spec.column)
	}

	for _, spec := range applied {
		t.Columns = append(t.Columns, spec.flag)
	}
	t.Columns = append(t.Columns, ColAnyAnomaly)

	flagged := 0
	for r := range t.Rows {
		any := false
		for i := range applied {
			cell := t.Rows[r].Cells[indices[i]]
			low := cell != nil && *cell < thresholds[i]
			any = any || low
			t.Rows[r].Cells = append(t.Rows[r].Cells, flagValue(low))
		}
		t.Rows[r].Cells = append(t.Rows[r].Cells, flagValue(any))
		if any {
			flagged++
		}
	}

	logger.Info("anomaly flags computed",
		slog.Int("rows", len(t.Rows)),
		slog.Int("flagged", flagged))
}

// AddSensorFlags appends the sensor presence flags and the capture-failure
// heuristic to the audio join: a day whose sensor-reported dBA is high while
// almost no recordings exist points at a capture problem rather than quiet
// traffic.
func AddSensorFlags(t *Table, cfg config.Anomaly) {
	nEventsIdx := t.ColumnIndex("n_events")
	dbaIdx := t.ColumnIndex("dba_mean")
	nAudioIdx := t.ColumnIndex("n_audio")

	t.Columns = append(t.Columns, ColSensorMissing, ColSensorPresent, ColCaptureFailure)
	for r := range t.Rows {
		missing := nEventsIdx < 0 || t.Rows[r].Cells[nEventsIdx] == nil

		captureFailure := false
		if dbaIdx >= 0 && nAudioIdx >= 0 {
			dba := t.Rows[r].Cells[dbaIdx]
			nAudio := t.Rows[r].Cells[nAudioIdx]
			captureFailure = dba != nil && *dba >= cfg.CaptureFailureDBA &&
				nAudio != nil && *nAudio <= float64(cfg.CaptureFailureMaxAudio)
		}

		t.Rows[r].Cells = append(t.Rows[r].Cells,
			flagValue(missing), flagValue(!missing), flagValue(captureFailure))
	}
}
