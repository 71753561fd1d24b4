package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"trafficpulse/internal/errors"
)

// Table is a CSV file loaded into memory with its header order preserved.
type Table struct {
	Headers []string
	Rows    [][]string

	index map[string]int
}

// ReadCSV loads a CSV file and validates that every required column is
// present. A missing input file is an INPUT_MISSING error and a missing column
// is a SCHEMA_VIOLATION; both are fatal at load time.
func ReadCSV(filePath string, requiredColumns ...string) (*Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.InputMissing(filePath)
		}
		return nil, fmt.Errorf("open %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	if len(records) == 0 {
		return nil, errors.SchemaViolation(filePath, requiredColumnName(requiredColumns))
	}

	headers := records[0]
	// Strip a UTF-8 BOM if the writer added one
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}

	table := &Table{
		Headers: headers,
		Rows:    records[1:],
		index:   make(map[string]int, len(headers)),
	}
	for i, h := range headers {
		table.index[h] = i
	}

	for _, col := range requiredColumns {
		if _, ok := table.index[col]; !ok {
			return nil, errors.SchemaViolation(filePath, col)
		}
	}

	return table, nil
}

func requiredColumnName(cols []string) string {
	if len(cols) == 0 {
		return "(header row)"
	}
	return cols[0]
}

// ColumnIndex returns the position of a column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Cell returns the value at (row, column name); empty string when the row is
// short or the column absent.
func (t *Table) Cell(row int, column string) string {
	i := t.ColumnIndex(column)
	if i < 0 || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}
