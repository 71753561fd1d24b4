package exporter

import (
	"fmt"
	"strconv"
	"time"

	"trafficpulse/internal/errors"
	"trafficpulse/pkg/contracts/domain"
)

// Entity readers load the per-file and per-event tables back for the daily
// aggregation stage. These files are produced by the pipeline itself, so a
// cell that does not parse is a schema violation, not a skippable row.

func ReadAudioRecords(filePath string) ([]domain.AudioFileRecord, error) {
	table, err := ReadCSV(filePath,
		"date", "relative_path", "duration_sec",
		"rms", "rms_dbfs", "peak", "crest_factor", "zcr",
		"sample_rate", "file_size_bytes")
	if err != nil {
		return nil, err
	}

	records := make([]domain.AudioFileRecord, 0, len(table.Rows))
	for i := range table.Rows {
		date, err := cellDate(table, filePath, i)
		if err != nil {
			return nil, err
		}
		rec := domain.AudioFileRecord{
			Date:         date,
			RelativePath: table.Cell(i, "relative_path"),
		}
		if rec.DurationSec, err = cellFloat(table, filePath, i, "duration_sec"); err != nil {
			return nil, err
		}
		if rec.RMS, err = cellFloat(table, filePath, i, "rms"); err != nil {
			return nil, err
		}
		if rec.RMSDBFS, err = cellFloat(table, filePath, i, "rms_dbfs"); err != nil {
			return nil, err
		}
		if rec.Peak, err = cellFloat(table, filePath, i, "peak"); err != nil {
			return nil, err
		}
		if rec.CrestFactor, err = ParseFloatPtr(table.Cell(i, "crest_factor")); err != nil {
			return nil, badCell(filePath, i, "crest_factor", err)
		}
		if rec.ZCR, err = cellFloat(table, filePath, i, "zcr"); err != nil {
			return nil, err
		}
		sr, err := cellFloat(table, filePath, i, "sample_rate")
		if err != nil {
			return nil, err
		}
		rec.SampleRate = int(sr)
		size, err := cellFloat(table, filePath, i, "file_size_bytes")
		if err != nil {
			return nil, err
		}
		rec.FileSizeBytes = int64(size)
		records = append(records, rec)
	}
	return records, nil
}

func ReadImageRecords(filePath string) ([]domain.ImageFileRecord, error) {
	table, err := ReadCSV(filePath,
		"date", "relative_path",
		"blur_variance", "brightness_mean", "contrast_std", "file_size_bytes")
	if err != nil {
		return nil, err
	}

	records := make([]domain.ImageFileRecord, 0, len(table.Rows))
	for i := range table.Rows {
		date, err := cellDate(table, filePath, i)
		if err != nil {
			return nil, err
		}
		rec := domain.ImageFileRecord{
			Date:         date,
			RelativePath: table.Cell(i, "relative_path"),
		}
		if rec.BlurVariance, err = cellFloat(table, filePath, i, "blur_variance"); err != nil {
			return nil, err
		}
		if rec.BrightnessMean, err = cellFloat(table, filePath, i, "brightness_mean"); err != nil {
			return nil, err
		}
		if rec.ContrastStd, err = cellFloat(table, filePath, i, "contrast_std"); err != nil {
			return nil, err
		}
		size, err := cellFloat(table, filePath, i, "file_size_bytes")
		if err != nil {
			return nil, err
		}
		rec.FileSizeBytes = int64(size)
		records = append(records, rec)
	}
	return records, nil
}

// ReadLogEvents loads the flattened event table. Date strings are kept as
// written; the aggregator decides which of them parse.
func ReadLogEvents(filePath string) ([]domain.LogEvent, error) {
	table, err := ReadCSV(filePath,
		"date", "probs",
		"intersection_0", "intersection_1",
		"cross_0_0", "cross_0_1", "cross_1_0", "cross_1_1",
		"box_x1", "box_y1", "box_x2", "box_y2")
	if err != nil {
		return nil, err
	}

	events := make([]domain.LogEvent, 0, len(table.Rows))
	for i := range table.Rows {
		ev := domain.LogEvent{Date: table.Cell(i, "date")}

		numeric := []struct {
			column string
			dst    **float64
		}{
			{"probs", &ev.Probs},
			{"intersection_0", &ev.Intersection0},
			{"intersection_1", &ev.Intersection1},
			{"cross_0_0", &ev.Cross00},
			{"cross_0_1", &ev.Cross01},
			{"cross_1_0", &ev.Cross10},
			{"cross_1_1", &ev.Cross11},
			{"box_x1", &ev.BoxX1},
			{"box_y1", &ev.BoxY1},
			{"box_x2", &ev.BoxX2},
			{"box_y2", &ev.BoxY2},
		}
		for _, n := range numeric {
			v, err := ParseFloatPtr(table.Cell(i, n.column))
			if err != nil {
				return nil, badCell(filePath, i, n.column, err)
			}
			*n.dst = v
		}
		events = append(events, ev)
	}
	return events, nil
}

// ReadSummaryDates returns the date column of a dataset summary CSV.
func ReadSummaryDates(filePath string) ([]time.Time, error) {
	table, err := ReadCSV(filePath, "date")
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(table.Rows))
	for i := range table.Rows {
		d, err := cellDate(table, filePath, i)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func cellDate(t *Table, filePath string, row int) (time.Time, error) {
	raw := t.Cell(row, "date")
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.NewWithDetails("SCHEMA_VIOLATION",
			fmt.Sprintf("%s row %d: date %q does not parse", filePath, row+1, raw), raw)
	}
	return d, nil
}

func cellFloat(t *Table, filePath string, row int, column string) (float64, error) {
	raw := t.Cell(row, column)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, badCell(filePath, row, column, err)
	}
	return v, nil
}

func badCell(filePath string, row int, column string, err error) error {
	return errors.NewWithDetails("SCHEMA_VIOLATION",
		fmt.Sprintf("%s row %d: column %s is not numeric", filePath, row+1, column), err.Error())
}
