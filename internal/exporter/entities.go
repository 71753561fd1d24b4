package exporter

import (
	"trafficpulse/pkg/contracts/domain"
)

// Entity writers render the pipeline's domain slices with their canonical
// headers. Header names are load-bearing: the joiner's schema mappings
// reference them by name.

func (w *CSVWriter) WriteDatasetSummary(filePath string, folders []domain.DatedFolder) error {
	headers := []string{"date", "modality", "quality", "folder_name", "file_count", "total_size_bytes"}
	records := make([][]string, 0, len(folders))
	for _, f := range folders {
		records = append(records, []string{
			FormatDate(f.Date),
			string(f.Modality),
			string(f.Quality),
			f.FolderName,
			FormatInt(int64(f.FileCount)),
			FormatInt(f.TotalSizeBytes),
		})
	}
	return w.WriteSimpleCSV(filePath, headers, records)
}

func (w *CSVWriter) WriteInvalidFolders(filePath string, invalid []domain.InvalidFolderRecord) error {
	headers := []string{"folder_name", "parsed_date", "modality", "quality", "file_count", "total_size_bytes", "reason"}
	records := make([][]string, 0, len(invalid))
	for _, r := range invalid {
		records = append(records, []string{
			r.FolderName,
			r.ParsedDate,
			string(r.Modality),
			string(r.Quality),
			FormatInt(int64(r.FileCount)),
			FormatInt(r.TotalSizeBytes),
			string(r.Reason),
		})
	}
	return w.WriteSimpleCSV(filePath, headers, records)
}

func (w *CSVWriter) WritePairing(filePath string, pairing []domain.PairingRecord) error {
	headers := []string{"date", "has_image", "has_audio", "pair_status"}
	records := make([][]string, 0, len(pairing))
	for _, p := range pairing {
		records = append(records, []string{
			FormatDate(p.Date),
			FormatBool(p.HasImage),
			FormatBool(p.HasAudio),
			string(p.PairStatus),
		})
	}
	return w.WriteSimpleCSV(filePath, headers, records)
}

func (w *CSVWriter) WriteDailyCounts(filePath string, counts []domain.DailyCount) error {
	headers := []string{"date", "n_images", "n_audio", "total_files"}
	records := make([][]string, 0, len(counts))
	for _, c := range counts {
		records = append(records, []string{
			FormatDate(c.Date),
			FormatInt(int64(c.NImages)),
			FormatInt(int64(c.NAudio)),
			FormatInt(int64(c.TotalFiles)),
		})
	}
	return w.WriteSimpleCSV(filePath, headers, records)
}

func (w *CSVWriter) WriteAudioRecords(filePath string, records []domain.AudioFileRecord) error {
	headers := []string{
		"date", "relative_path", "duration_sec",
		"rms", "rms_dbfs", "peak", "crest_factor", "zcr",
		"sample_rate", "file_size_bytes",
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			FormatDate(r.Date),
			r.RelativePath,
			FormatFloat(r.DurationSec),
			FormatFloat(r.RMS),
			FormatFloat(r.RMSDBFS),
			FormatFloat(r.Peak),
			FormatFloatPtr(r.CrestFactor),
			FormatFloat(r.ZCR),
			FormatInt(int64(r.SampleRate)),
			FormatInt(r.FileSizeBytes),
		})
	}
	return w.WriteSimpleCSV(filePath, headers, rows)
}

func (w *CSVWriter) WriteImageRecords(filePath string, records []domain.ImageFileRecord) error {
	headers := []string{
		"date", "relative_path",
		"blur_variance", "brightness_mean", "contrast_std", "file_size_bytes",
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			FormatDate(r.Date),
			r.RelativePath,
			FormatFloat(r.BlurVariance),
			FormatFloat(r.BrightnessMean),
			FormatFloat(r.ContrastStd),
			FormatInt(r.FileSizeBytes),
		})
	}
	return w.WriteSimpleCSV(filePath, headers, rows)
}

func (w *CSVWriter) WriteExtractErrors(filePath string, failures []domain.ExtractError) error {
	headers := []string{"relative_path", "error"}
	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []string{f.RelativePath, f.Message})
	}
	return w.WriteSimpleCSV(filePath, headers, rows)
}

func (w *CSVWriter) WriteAudioDaily(filePath string, rows []domain.AudioDaily) error {
	headers := []string{
		"date", "n_audio", "rms_dbfs_mean", "rms_dbfs_p10", "rms_dbfs_p90",
		"zcr_mean", "zcr_std", "duration_mean", "file_size_mean",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			FormatDate(r.Date),
			FormatInt(int64(r.NAudio)),
			FormatFloat(r.RMSDBFSMean),
			FormatFloat(r.RMSDBFSP10),
			FormatFloat(r.RMSDBFSP90),
			FormatFloat(r.ZCRMean),
			FormatFloatPtr(r.ZCRStd),
			FormatFloat(r.DurationMean),
			FormatFloat(r.FileSizeMean),
		})
	}
	return w.WriteSimpleCSV(filePath, headers, records)
}

func (w *CSVWriter) WriteImageDaily(filePath string, rows []domain.ImageDaily) error {
	headers := []string{
		"date", "n_images", "blur_mean", "blur_p10",
		"brightness_mean", "contrast_mean", "file_size_mean",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			FormatDate(r.Date),
			FormatInt(int64(r.NImages)),
			FormatFloat(r.BlurMean),
			FormatFloat(r.BlurP10),
			FormatFloat(r.BrightnessMean),
			FormatFloat(r.ContrastMean),
			FormatFloat(r.FileSizeMean),
		})
	}
	return w.WriteSimpleCSV(filePath, headers, records)
}

func (w *CSVWriter) WriteLogsDaily(filePath string, rows []domain.LogDaily) error {
	headers := []string{
		"date", "log_n_events", "log_probs_mean",
		"intersection_0_mean", "intersection_1_mean",
		"cross_0_0_mean", "cross_0_1_mean", "cross_1_0_mean", "cross_1_1_mean",
		"box_x1_mean", "box_y1_mean", "box_x2_mean", "box_y2_mean",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			FormatDate(r.Date),
			FormatInt(int64(r.NEvents)),
			FormatFloatPtr(r.ProbsMean),
			FormatFloatPtr(r.Inter0Mean),
			FormatFloatPtr(r.Inter1Mean),
			FormatFloatPtr(r.Cross00Mean),
			FormatFloatPtr(r.Cross01Mean),
			FormatFloatPtr(r.Cross10Mean),
			FormatFloatPtr(r.Cross11Mean),
			FormatFloatPtr(r.BoxX1Mean),
			FormatFloatPtr(r.BoxY1Mean),
			FormatFloatPtr(r.BoxX2Mean),
			FormatFloatPtr(r.BoxY2Mean),
		})
	}
	return w.WriteSimpleCSV(filePath, headers, records)
}

func (w *CSVWriter) WriteSensorDaily(filePath string, rows []domain.SensorDaily) error {
	headers := []string{"date", "snd_lvl_mean", "dba_mean", "dba_p90", "n_events"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			FormatDate(r.Date),
			FormatFloatPtr(r.SndLvlMean),
			FormatFloat(r.DBAMean),
			FormatFloat(r.DBAP90),
			FormatInt(int64(r.NEvents)),
		})
	}
	return w.WriteSimpleCSV(filePath, headers, records)
}
