package exporter

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// ReportWriter renders derived tables into a single xlsx workbook so the
// joined output can be handed off without a CSV-capable tool.
type ReportWriter struct {
	logger *slog.Logger
}

// NewReportWriter creates a new xlsx report writer
func NewReportWriter(logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{logger: logger}
}

// ReportSheet is one sheet of the workbook: a header row plus string cells.
// Numeric-looking cells are written as numbers so spreadsheet formulas work.
type ReportSheet struct {
	Name    string
	Headers []string
	Records [][]string
}

// WriteWorkbook writes the sheets to filePath, first sheet active. The run ID
// and write time go into a trailing "Run Info" sheet.
func (w *ReportWriter) WriteWorkbook(filePath, runID string, sheets []ReportSheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		name := sheet.Name
		if i == 0 {
			// Rename the default sheet rather than leaving "Sheet1" behind
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("rename default sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("create sheet %s: %w", name, err)
			}
		}

		if err := w.writeSheet(f, name, sheet); err != nil {
			return fmt.Errorf("write sheet %s: %w", name, err)
		}
	}

	if _, err := f.NewSheet("Run Info"); err != nil {
		return fmt.Errorf("create run info sheet: %w", err)
	}
	f.SetCellValue("Run Info", "A1", "run_id")
	f.SetCellValue("Run Info", "B1", runID)
	f.SetCellValue("Run Info", "A2", "written_at")
	f.SetCellValue("Run Info", "B2", time.Now().Format(time.RFC3339))

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("wrote xlsx report",
		slog.String("file_path", filePath),
		slog.Int("sheet_count", len(sheets)))
	return nil
}

func (w *ReportWriter) writeSheet(f *excelize.File, name string, sheet ReportSheet) error {
	for col, header := range sheet.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, header); err != nil {
			return err
		}
	}

	for row, record := range sheet.Records {
		for col, value := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if num, err := strconv.ParseFloat(value, 64); err == nil && value != "" {
				if err := f.SetCellValue(name, cell, num); err != nil {
					return err
				}
			} else if err := f.SetCellValue(name, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
