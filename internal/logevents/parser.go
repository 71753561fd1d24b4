package logevents

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"trafficpulse/internal/config"
	"trafficpulse/internal/errors"
	"trafficpulse/internal/exporter"
)

// Parser stream-parses traffic.txt* JSON-lines files into the flat event CSV.
type Parser struct {
	cfg    config.Logs
	logger *slog.Logger
}

// ParseResult summarizes one flattening run.
type ParseResult struct {
	Files      int
	TotalLines int
	Parsed     int
	Errors     int
}

func NewParser(cfg config.Logs, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{cfg: cfg, logger: logger}
}

// logFiles returns the matching log files under the configured root in
// filename order. Zero matches is a hard error.
func (p *Parser) logFiles() ([]string, error) {
	pattern := filepath.Join(p.cfg.Root, p.cfg.FilePattern)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, errors.InputMissing(pattern)
	}
	return matches, nil
}

// Flatten parses every log line into the fixed event schema and streams the
// rows to outputPath. Malformed lines are counted and the first few logged;
// they never abort the run. A run that parses no rows at all is an error.
func (p *Parser) Flatten(ctx context.Context, outputPath string) (ParseResult, error) {
	var res ParseResult

	files, err := p.logFiles()
	if err != nil {
		return res, err
	}
	res.Files = len(files)
	p.logger.InfoContext(ctx, "found log files",
		slog.Int("count", len(files)),
		slog.String("root", p.cfg.Root))

	writer, err := exporter.NewCSVWriter(p.logger).CreateStreamWriter(outputPath, Columns)
	if err != nil {
		return res, err
	}
	defer writer.Close()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		done, err := p.flattenFile(ctx, file, writer, &res)
		if err != nil {
			return res, err
		}
		if done {
			break
		}
	}

	if err := writer.Close(); err != nil {
		return res, err
	}

	if res.Parsed == 0 {
		return res, errors.NoUsableRows("log events")
	}

	p.logger.InfoContext(ctx, "flattening complete",
		slog.Int("total_lines", res.TotalLines),
		slog.Int("parsed", res.Parsed),
		slog.Int("errors", res.Errors))
	return res, nil
}

// flattenFile returns done=true once the line cap is reached.
func (p *Parser) flattenFile(ctx context.Context, path string, writer *exporter.StreamWriter, res *ParseResult) (bool, error) {
	p.logger.InfoContext(ctx, "parsing log file", slog.String("file", filepath.Base(path)))

	f, err := os.Open(path)
	if err != nil {
		return false, errors.FileSystemError(err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	logFile := filepath.Base(path)

	for scanner.Scan() {
		if p.cfg.MaxLines > 0 && res.TotalLines >= p.cfg.MaxLines {
			p.logger.InfoContext(ctx, "reached line cap", slog.Int("max_lines", p.cfg.MaxLines))
			return true, nil
		}
		res.TotalLines++

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec map[string]any
		if err := json.Unmarshal(line, &rec); err != nil {
			res.Errors++
			if res.Errors <= p.cfg.MaxWarnings {
				p.logger.WarnContext(ctx, "skipping malformed log line",
					slog.String("file", logFile),
					slog.Int("line", res.TotalLines),
					slog.String("error", err.Error()))
			}
			continue
		}

		if err := writer.WriteRecord(CSVRecord(FlattenRecord(rec, logFile))); err != nil {
			return false, err
		}
		res.Parsed++
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return false, nil
}
