package logevents

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"trafficpulse/internal/aggregate"
	"trafficpulse/internal/errors"
	"trafficpulse/pkg/contracts/domain"
)

// ExtractSensorReadings scans the log files for lines carrying a sensor sound
// block (snd.res.dba window) and returns one reading per matching line.
// Lines without a sound block, a timestamp, or a non-empty window are
// skipped. Zero extracted readings is a hard error.
func (p *Parser) ExtractSensorReadings(ctx context.Context) ([]domain.SensorReading, error) {
	files, err := p.logFiles()
	if err != nil {
		return nil, err
	}

	var readings []domain.SensorReading
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		readings, err = p.sensorReadingsFromFile(ctx, file, readings)
		if err != nil {
			return nil, err
		}
	}

	if len(readings) == 0 {
		return nil, errors.NoUsableRows("sensor sound records")
	}
	p.logger.InfoContext(ctx, "extracted sensor readings", slog.Int("count", len(readings)))
	return readings, nil
}

func (p *Parser) sensorReadingsFromFile(ctx context.Context, path string, readings []domain.SensorReading) ([]domain.SensorReading, error) {
	p.logger.InfoContext(ctx, "scanning for sensor records", slog.String("file", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.FileSystemError(err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec map[string]any
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		if reading, ok := sensorReading(rec); ok {
			readings = append(readings, reading)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return readings, nil
}

// sensorReading extracts one sound measurement from a decoded log line.
func sensorReading(rec map[string]any) (domain.SensorReading, bool) {
	snd, ok := rec["snd"].(map[string]any)
	if !ok {
		return domain.SensorReading{}, false
	}
	dto, ok := rec["dto"].(string)
	if !ok || len(dto) < 10 {
		return domain.SensorReading{}, false
	}

	res, _ := snd["res"].(map[string]any)
	rawWindow, _ := res["dba"].([]any)
	window := make([]float64, 0, len(rawWindow))
	for _, v := range rawWindow {
		if f, ok := v.(float64); ok {
			window = append(window, f)
		}
	}
	if len(window) == 0 {
		return domain.SensorReading{}, false
	}

	return domain.SensorReading{
		Date:    dto[:10],
		SndLvl:  asNumber(snd["snd_lvl"]),
		DBAMean: aggregate.Mean(window),
		DBAP90:  aggregate.Percentile(window, 0.9),
	}, true
}
