package join

import (
	"math"

	"trafficpulse/internal/exporter"
)

// CorrelationMatrix is the pairwise Pearson correlation of a table's numeric
// columns, computed over rows where both columns are present.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// Correlations computes the full pairwise matrix. Pairs with fewer than two
// complete rows, or with a constant column, yield NaN.
func Correlations(t *Table) CorrelationMatrix {
	n := len(t.Columns)
	m := CorrelationMatrix{
		Columns: append([]string(nil), t.Columns...),
		Values:  make([][]float64, n),
	}
	for i := range m.Values {
		m.Values[i] = make([]float64, n)
		for j := range m.Values[i] {
			m.Values[i][j] = pearson(t, i, j)
		}
	}
	return m
}

func pearson(t *Table, i, j int) float64 {
	var xs, ys []float64
	for _, r := range t.Rows {
		if r.Cells[i] != nil && r.Cells[j] != nil {
			xs = append(xs, *r.Cells[i])
			ys = append(ys, *r.Cells[j])
		}
	}
	n := float64(len(xs))
	if n < 2 {
		return math.NaN()
	}

	var sumX, sumY float64
	for k := range xs {
		sumX += xs[k]
		sumY += ys[k]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for k := range xs {
		dx, dy := xs[k]-meanX, ys[k]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}

// WriteCSV renders the matrix with column names down the first column,
// mirroring the usual labeled square layout.
func (m CorrelationMatrix) WriteCSV(writer *exporter.CSVWriter, filePath string) error {
	headers := append([]string{""}, m.Columns...)
	records := make([][]string, 0, len(m.Columns))
	for i, name := range m.Columns {
		rec := make([]string, 0, len(headers))
		rec = append(rec, name)
		for _, v := range m.Values[i] {
			if math.IsNaN(v) {
				rec = append(rec, "")
			} else {
				rec = append(rec, exporter.FormatFloat(v))
			}
		}
		records = append(records, rec)
	}
	return writer.WriteSimpleCSV(filePath, headers, records)
}

// Records renders the matrix for the xlsx report.
func (m CorrelationMatrix) Records() ([]string, [][]string) {
	headers := append([]string{""}, m.Columns...)
	records := make([][]string, 0, len(m.Columns))
	for i, name := range m.Columns {
		rec := make([]string, 0, len(headers))
		rec = append(rec, name)
		for _, v := range m.Values[i] {
			if math.IsNaN(v) {
				rec = append(rec, "")
			} else {
				rec = append(rec, exporter.FormatFloat(v))
			}
		}
		records = append(records, rec)
	}
	return headers, records
}
