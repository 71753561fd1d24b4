package aggregate

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"trafficpulse/internal/dataset"
	"trafficpulse/internal/errors"
	"trafficpulse/pkg/contracts/domain"
)

// Aggregator reduces per-file and per-event tables to one row per calendar
// date. All reductions enforce the same integrity post-condition: the summed
// per-date counts must equal the number of contributing input records, or the
// reduction fails rather than emit a corrupted table.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates a daily aggregator
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// AudioDaily reduces audio file records to one row per date.
func (a *Aggregator) AudioDaily(ctx context.Context, records []domain.AudioFileRecord) ([]domain.AudioDaily, error) {
	byDate := make(map[time.Time][]domain.AudioFileRecord)
	for _, rec := range records {
		byDate[rec.Date] = append(byDate[rec.Date], rec)
	}

	rows := make([]domain.AudioDaily, 0, len(byDate))
	for date, recs := range byDate {
		dbfs := make([]float64, len(recs))
		zcr := make([]float64, len(recs))
		duration := make([]float64, len(recs))
		size := make([]float64, len(recs))
		for i, r := range recs {
			dbfs[i] = r.RMSDBFS
			zcr[i] = r.ZCR
			duration[i] = r.DurationSec
			size[i] = float64(r.FileSizeBytes)
		}

		rows = append(rows, domain.AudioDaily{
			Date:         date,
			NAudio:       len(recs),
			RMSDBFSMean:  Mean(dbfs),
			RMSDBFSP10:   Percentile(dbfs, 0.10),
			RMSDBFSP90:   Percentile(dbfs, 0.90),
			ZCRMean:      Mean(zcr),
			ZCRStd:       sampleStdPtr(zcr),
			DurationMean: Mean(duration),
			FileSizeMean: Mean(size),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	var total int
	for _, row := range rows {
		total += row.NAudio
	}
	if total != len(records) {
		return nil, errors.IntegrityFailure(len(records), total)
	}

	a.logger.InfoContext(ctx, "aggregated audio daily",
		slog.Int("input_records", len(records)),
		slog.Int("days", len(rows)))
	return rows, nil
}

// ImageDaily reduces image file records to one row per date.
func (a *Aggregator) ImageDaily(ctx context.Context, records []domain.ImageFileRecord) ([]domain.ImageDaily, error) {
	byDate := make(map[time.Time][]domain.ImageFileRecord)
	for _, rec := range records {
		byDate[rec.Date] = append(byDate[rec.Date], rec)
	}

	rows := make([]domain.ImageDaily, 0, len(byDate))
	for date, recs := range byDate {
		blur := make([]float64, len(recs))
		brightness := make([]float64, len(recs))
		contrast := make([]float64, len(recs))
		size := make([]float64, len(recs))
		for i, r := range recs {
			blur[i] = r.BlurVariance
			brightness[i] = r.BrightnessMean
			contrast[i] = r.ContrastStd
			size[i] = float64(r.FileSizeBytes)
		}

		rows = append(rows, domain.ImageDaily{
			Date:           date,
			NImages:        len(recs),
			BlurMean:       Mean(blur),
			BlurP10:        Percentile(blur, 0.10),
			BrightnessMean: Mean(brightness),
			ContrastMean:   Mean(contrast),
			FileSizeMean:   Mean(size),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	var total int
	for _, row := range rows {
		total += row.NImages
	}
	if total != len(records) {
		return nil, errors.IntegrityFailure(len(records), total)
	}

	a.logger.InfoContext(ctx, "aggregated image daily",
		slog.Int("input_records", len(records)),
		slog.Int("days", len(rows)))
	return rows, nil
}

// LogsDaily reduces flattened log events to one row per date. Events whose
// date field cannot be parsed are excluded and reported in the skipped count;
// rows with a missing value for one metric still count toward the date total.
func (a *Aggregator) LogsDaily(ctx context.Context, events []domain.LogEvent) ([]domain.LogDaily, int, error) {
	byDate := make(map[time.Time][]domain.LogEvent)
	var skipped int
	for _, ev := range events {
		date, ok := dataset.InferDate(ev.Date)
		if !ok {
			skipped++
			continue
		}
		byDate[date] = append(byDate[date], ev)
	}

	rows := make([]domain.LogDaily, 0, len(byDate))
	for date, evs := range byDate {
		rows = append(rows, domain.LogDaily{
			Date:        date,
			NEvents:     len(evs),
			ProbsMean:   meanPtr(evs, func(e domain.LogEvent) *float64 { return e.Probs }),
			Inter0Mean:  meanPtr(evs, func(e domain.LogEvent) *float64 { return e.Intersection0 }),
			Inter1Mean:  meanPtr(evs, func(e domain.LogEvent) *float64 { return e.Intersection1 }),
			Cross00Mean: meanPtr(evs, func(e domain.LogEvent) *float64 { return e.Cross00 }),
			Cross01Mean: meanPtr(evs, func(e domain.LogEvent) *float64 { return e.Cross01 }),
			Cross10Mean: meanPtr(evs, func(e domain.LogEvent) *float64 { return e.Cross10 }),
			Cross11Mean: meanPtr(evs, func(e domain.LogEvent) *float64 { return e.Cross11 }),
			BoxX1Mean:   meanPtr(evs, func(e domain.LogEvent) *float64 { return e.BoxX1 }),
			BoxY1Mean:   meanPtr(evs, func(e domain.LogEvent) *float64 { return e.BoxY1 }),
			BoxX2Mean:   meanPtr(evs, func(e domain.LogEvent) *float64 { return e.BoxX2 }),
			BoxY2Mean:   meanPtr(evs, func(e domain.LogEvent) *float64 { return e.BoxY2 }),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	var total int
	for _, row := range rows {
		total += row.NEvents
	}
	if total+skipped != len(events) {
		return nil, 0, errors.IntegrityFailure(len(events)-skipped, total)
	}

	a.logger.InfoContext(ctx, "aggregated logs daily",
		slog.Int("input_events", len(events)),
		slog.Int("skipped_no_date", skipped),
		slog.Int("days", len(rows)))
	return rows, skipped, nil
}

// SensorDaily reduces sensor readings to one row per date.
func (a *Aggregator) SensorDaily(ctx context.Context, readings []domain.SensorReading) ([]domain.SensorDaily, int, error) {
	byDate := make(map[time.Time][]domain.SensorReading)
	var skipped int
	for _, r := range readings {
		date, ok := dataset.InferDate(r.Date)
		if !ok {
			skipped++
			continue
		}
		byDate[date] = append(byDate[date], r)
	}

	rows := make([]domain.SensorDaily, 0, len(byDate))
	for date, rs := range byDate {
		dbaMean := make([]float64, len(rs))
		dbaP90 := make([]float64, len(rs))
		var sndLvl []float64
		for i, r := range rs {
			dbaMean[i] = r.DBAMean
			dbaP90[i] = r.DBAP90
			if r.SndLvl != nil {
				sndLvl = append(sndLvl, *r.SndLvl)
			}
		}

		row := domain.SensorDaily{
			Date:    date,
			DBAMean: Mean(dbaMean),
			DBAP90:  Mean(dbaP90),
			NEvents: len(rs),
		}
		if len(sndLvl) > 0 {
			m := Mean(sndLvl)
			row.SndLvlMean = &m
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	var total int
	for _, row := range rows {
		total += row.NEvents
	}
	if total+skipped != len(readings) {
		return nil, 0, errors.IntegrityFailure(len(readings)-skipped, total)
	}

	a.logger.InfoContext(ctx, "aggregated sensor daily",
		slog.Int("input_readings", len(readings)),
		slog.Int("skipped_no_date", skipped),
		slog.Int("days", len(rows)))
	return rows, skipped, nil
}

// sampleStdPtr wraps SampleStd for CSV-bound rows: the std is undefined below
// two values and must stay a missing cell rather than a NaN literal.
func sampleStdPtr(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}
	s := SampleStd(values)
	return &s
}

// meanPtr averages an optional field over the events that carry it; nil when
// none do.
func meanPtr(events []domain.LogEvent, get func(domain.LogEvent) *float64) *float64 {
	var values []float64
	for _, ev := range events {
		if v := get(ev); v != nil {
			values = append(values, *v)
		}
	}
	if len(values) == 0 {
		return nil
	}
	m := Mean(values)
	return &m
}
