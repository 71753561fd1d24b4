package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"simple", []float64{0.1, 0.2, 0.3}, 0.2},
		{"single", []float64{42}, 42},
		{"negative", []float64{-1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Mean(tt.values), 1e-9)
		})
	}

	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestSampleStd(t *testing.T) {
	// pandas .std() of [1, 2, 3, 4] = 1.2909944487...
	assert.InDelta(t, 1.2909944487358056, SampleStd([]float64{1, 2, 3, 4}), 1e-9)
	assert.True(t, math.IsNaN(SampleStd([]float64{1})))
}

func TestPercentile(t *testing.T) {
	values := []float64{15, 20, 35, 40, 50}

	tests := []struct {
		name string
		q    float64
		want float64
	}{
		{"p0 is min", 0, 15},
		{"p100 is max", 1, 50},
		{"median", 0.5, 35},
		{"p10 interpolates", 0.10, 17}, // rank 0.4 between 15 and 20
		{"p90 interpolates", 0.90, 46}, // rank 3.6 between 40 and 50
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(values, tt.q), 1e-9)
		})
	}

	t.Run("input order irrelevant", func(t *testing.T) {
		shuffled := []float64{50, 15, 40, 20, 35}
		assert.InDelta(t, Percentile(values, 0.9), Percentile(shuffled, 0.9), 1e-9)
		// input slice must not be reordered
		assert.Equal(t, []float64{50, 15, 40, 20, 35}, shuffled)
	})

	assert.True(t, math.IsNaN(Percentile(nil, 0.5)))
}

func TestMedian(t *testing.T) {
	assert.InDelta(t, 2.5, Median([]float64{1, 2, 3, 4}), 1e-9)
	assert.InDelta(t, 3, Median([]float64{1, 3, 100}), 1e-9)
}
