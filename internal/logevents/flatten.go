package logevents

import (
	"strings"

	"trafficpulse/internal/exporter"
	"trafficpulse/pkg/contracts/domain"
)

// Columns is the fixed output schema of the flattened event CSV, in order.
var Columns = []string{
	"date", "time", "frame_dto", "dto",
	"img_path", "img_file",
	"dba", "dba_dto",
	"intersection_0", "intersection_1",
	"cross_0_0", "cross_0_1", "cross_1_0", "cross_1_1",
	"probs", "cls", "point_len",
	"box_x1", "box_y1", "box_x2", "box_y2",
	"tid", "seq_len", "seq_path",
	"log_file",
}

// FlattenRecord maps one decoded JSON log line onto the fixed event schema.
// Missing or malformed values become nil pointers, never errors: a line that
// decoded as a JSON object always yields a row. The event date falls back
// from frame_dto to dto to the leading folder of the image path.
func FlattenRecord(rec map[string]any, logFile string) domain.LogEvent {
	ev := domain.LogEvent{LogFile: logFile}

	if frameDTO, ok := rec["frame_dto"].(string); ok {
		ev.FrameDTO = frameDTO
		if parts := strings.Fields(frameDTO); len(parts) >= 2 {
			ev.Date = parts[0]
			ev.Time = parts[1]
		}
	}
	if dto, ok := rec["dto"].(string); ok {
		ev.DTO = dto
		if ev.Date == "" {
			if parts := strings.Fields(dto); len(parts) >= 1 && strings.Contains(dto, " ") {
				ev.Date = parts[0]
			}
		}
	}

	if imgPath, ok := rec["img"].(string); ok {
		ev.ImgPath = imgPath
		segments := strings.Split(imgPath, "/")
		ev.ImgFile = segments[len(segments)-1]
		folder := segments[0]
		if ev.Date == "" && len(folder) >= 10 && folder[4] == '-' && folder[7] == '-' {
			ev.Date = folder[:10]
		}
	}

	ev.DBA = numberField(rec, "dba")
	if dbaDTO, ok := rec["dba_dto"].(string); ok {
		ev.DBADTO = dbaDTO
	}

	intersection, _ := rec["intersection"].([]any)
	ev.Intersection0 = numberAt(intersection, 0)
	ev.Intersection1 = numberAt(intersection, 1)

	cross, _ := rec["cross"].([]any)
	if len(cross) > 0 {
		if row, ok := cross[0].([]any); ok {
			ev.Cross00 = numberAt(row, 0)
			ev.Cross01 = numberAt(row, 1)
		}
	}
	if len(cross) > 1 {
		if row, ok := cross[1].([]any); ok {
			ev.Cross10 = numberAt(row, 0)
			ev.Cross11 = numberAt(row, 1)
		}
	}

	ev.Probs = numberField(rec, "probs")
	ev.Class = numberField(rec, "cls")
	ev.PointLen = numberField(rec, "point_len")

	box, _ := rec["box"].([]any)
	ev.BoxX1 = numberAt(box, 0)
	ev.BoxY1 = numberAt(box, 1)
	ev.BoxX2 = numberAt(box, 2)
	ev.BoxY2 = numberAt(box, 3)

	ev.TID = numberField(rec, "tid")
	ev.SeqLen = numberField(rec, "seq_len")
	if seqPath, ok := rec["seq_path"].(string); ok {
		ev.SeqPath = seqPath
	}

	return ev
}

// CSVRecord renders an event as one CSV row aligned with Columns.
func CSVRecord(ev domain.LogEvent) []string {
	return []string{
		ev.Date, ev.Time, ev.FrameDTO, ev.DTO,
		ev.ImgPath, ev.ImgFile,
		exporter.FormatFloatPtr(ev.DBA), ev.DBADTO,
		exporter.FormatFloatPtr(ev.Intersection0), exporter.FormatFloatPtr(ev.Intersection1),
		exporter.FormatFloatPtr(ev.Cross00), exporter.FormatFloatPtr(ev.Cross01),
		exporter.FormatFloatPtr(ev.Cross10), exporter.FormatFloatPtr(ev.Cross11),
		exporter.FormatFloatPtr(ev.Probs), exporter.FormatFloatPtr(ev.Class), exporter.FormatFloatPtr(ev.PointLen),
		exporter.FormatFloatPtr(ev.BoxX1), exporter.FormatFloatPtr(ev.BoxY1),
		exporter.FormatFloatPtr(ev.BoxX2), exporter.FormatFloatPtr(ev.BoxY2),
		exporter.FormatFloatPtr(ev.TID), exporter.FormatFloatPtr(ev.SeqLen), ev.SeqPath,
		ev.LogFile,
	}
}

func numberField(rec map[string]any, key string) *float64 {
	return asNumber(rec[key])
}

func numberAt(arr []any, i int) *float64 {
	if i >= len(arr) {
		return nil
	}
	return asNumber(arr[i])
}

func asNumber(v any) *float64 {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}
