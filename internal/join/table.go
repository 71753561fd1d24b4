package join

import (
	"fmt"
	"sort"
	"time"

	"trafficpulse/internal/errors"
	"trafficpulse/internal/exporter"
)

// Schema declares what a joiner input must look like: the name of its date
// column and the numeric columns to carry into the join. Loading fails fast
// when a declared column is absent, instead of guessing alternate names.
type Schema struct {
	DateColumn string
	Columns    []string
}

// Table is a date-keyed numeric table. Cells are nil when the source cell was
// empty, so missingness survives the join.
type Table struct {
	Columns []string
	Rows    []Row

	byDate map[string]int
}

// Row holds one date's cells, aligned with Table.Columns.
type Row struct {
	Date  string
	Cells []*float64
}

// NewTable builds an empty table with the given numeric columns.
func NewTable(columns []string) *Table {
	return &Table{
		Columns: append([]string(nil), columns...),
		byDate:  make(map[string]int),
	}
}

// AddRow appends a row. Cells must align with Columns.
func (t *Table) AddRow(date string, cells []*float64) {
	t.byDate[date] = len(t.Rows)
	t.Rows = append(t.Rows, Row{Date: date, Cells: cells})
}

// ColumnIndex returns the position of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Get returns the cell for a date and column; nil when either is absent.
func (t *Table) Get(date, column string) *float64 {
	row, ok := t.byDate[date]
	if !ok {
		return nil
	}
	col := t.ColumnIndex(column)
	if col < 0 {
		return nil
	}
	return t.Rows[row].Cells[col]
}

// Dates returns the table's dates in row order.
func (t *Table) Dates() []string {
	dates := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		dates[i] = r.Date
	}
	return dates
}

// Column returns the non-nil values of one column, in row order.
func (t *Table) Column(name string) []float64 {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	var values []float64
	for _, r := range t.Rows {
		if r.Cells[idx] != nil {
			values = append(values, *r.Cells[idx])
		}
	}
	return values
}

// SortByDate orders rows by ascending date string and rebuilds the index.
func (t *Table) SortByDate() {
	sort.Slice(t.Rows, func(i, j int) bool { return t.Rows[i].Date < t.Rows[j].Date })
	t.reindex()
}

func (t *Table) reindex() {
	t.byDate = make(map[string]int, len(t.Rows))
	for i, r := range t.Rows {
		t.byDate[r.Date] = i
	}
}

// LoadTable reads a CSV against its declared schema. Declared columns that
// are absent from the header and rows whose date does not parse are hard
// errors; empty numeric cells load as nil.
func LoadTable(filePath string, schema Schema) (*Table, error) {
	required := append([]string{schema.DateColumn}, schema.Columns...)
	src, err := exporter.ReadCSV(filePath, required...)
	if err != nil {
		return nil, err
	}

	t := NewTable(schema.Columns)
	for i := range src.Rows {
		rawDate := src.Cell(i, schema.DateColumn)
		parsed, err := time.Parse("2006-01-02", rawDate)
		if err != nil {
			return nil, errors.NewWithDetails("SCHEMA_VIOLATION",
				fmt.Sprintf("%s row %d: date %q does not parse", filePath, i+1, rawDate), rawDate)
		}

		cells := make([]*float64, len(schema.Columns))
		for j, col := range schema.Columns {
			v, err := exporter.ParseFloatPtr(src.Cell(i, col))
			if err != nil {
				return nil, errors.NewWithDetails("SCHEMA_VIOLATION",
					fmt.Sprintf("%s row %d: column %s is not numeric", filePath, i+1, col), err.Error())
			}
			cells[j] = v
		}
		t.AddRow(parsed.Format("2006-01-02"), cells)
	}
	t.SortByDate()
	return t, nil
}

// WriteCSV renders the table as date plus the numeric columns.
func (t *Table) WriteCSV(writer *exporter.CSVWriter, filePath string) error {
	headers := append([]string{"date"}, t.Columns...)
	records := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rec := make([]string, 0, len(headers))
		rec = append(rec, r.Date)
		for _, c := range r.Cells {
			rec = append(rec, exporter.FormatFloatPtr(c))
		}
		records = append(records, rec)
	}
	return writer.WriteSimpleCSV(filePath, headers, records)
}

// Records renders the table rows as strings, for the xlsx report.
func (t *Table) Records() ([]string, [][]string) {
	headers := append([]string{"date"}, t.Columns...)
	records := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rec := make([]string, 0, len(headers))
		rec = append(rec, r.Date)
		for _, c := range r.Cells {
			rec = append(rec, exporter.FormatFloatPtr(c))
		}
		records = append(records, rec)
	}
	return headers, records
}
