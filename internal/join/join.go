package join

import (
	"fmt"
	"sort"
)

// Kind selects how the date axis of a merge is formed.
type Kind string

const (
	// Inner keeps only dates present on both sides.
	Inner Kind = "inner"
	// Left keeps the left side's dates; right cells are best-effort.
	Left Kind = "left"
	// Outer keeps the union of dates.
	Outer Kind = "outer"
)

// Merge joins two tables on date. Column names must be distinct across the
// two sides; cells missing on either side are nil in the result.
func Merge(left, right *Table, kind Kind) (*Table, error) {
	for _, c := range right.Columns {
		if left.ColumnIndex(c) >= 0 {
			return nil, fmt.Errorf("column %q present on both sides of the join", c)
		}
	}

	var dates []string
	switch kind {
	case Inner:
		for _, d := range left.Dates() {
			if _, ok := right.byDate[d]; ok {
				dates = append(dates, d)
			}
		}
	case Left:
		dates = left.Dates()
	case Outer:
		seen := make(map[string]bool)
		for _, d := range left.Dates() {
			seen[d] = true
			dates = append(dates, d)
		}
		for _, d := range right.Dates() {
			if !seen[d] {
				dates = append(dates, d)
			}
		}
		sort.Strings(dates)
	default:
		return nil, fmt.Errorf("unknown join kind %q", kind)
	}

	merged := NewTable(append(append([]string(nil), left.Columns...), right.Columns...))
	for _, d := range dates {
		cells := make([]*float64, 0, len(merged.Columns))
		cells = append(cells, sideCells(left, d)...)
		cells = append(cells, sideCells(right, d)...)
		merged.AddRow(d, cells)
	}
	return merged, nil
}

// sideCells returns one side's cells for a date, or all-nil when the date is
// absent on that side.
func sideCells(t *Table, date string) []*float64 {
	if i, ok := t.byDate[date]; ok {
		return t.Rows[i].Cells
	}
	return make([]*float64, len(t.Columns))
}
