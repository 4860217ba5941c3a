package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 5},
		{"several", []float64{1, 2, 3, 4}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Mean(tt.values), 1e-9)
		})
	}
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{7}))
	// Sample standard deviation of {2,4,4,4,5,5,7,9} is sqrt(32/7).
	assert.InDelta(t, 2.13809, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-4)
}

func TestPercentile(t *testing.T) {
	values := []float64{15, 20, 35, 40, 50}

	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"min", 0, 15},
		{"median", 50, 35},
		{"interpolated", 40, 29},
		{"max", 100, 50},
		{"clamped low", -10, 15},
		{"clamped high", 150, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(values, tt.p), 1e-9)
		})
	}

	assert.Equal(t, 0.0, Percentile(nil, 50))
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Percentile(values, 50)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestPercentiles(t *testing.T) {
	got := Percentiles([]float64{10, 20, 30}, []float64{0, 50, 100})
	assert.Equal(t, []float64{10, 20, 30}, got)
}

func TestMinMaxSum(t *testing.T) {
	values := []float64{4, -1, 7, 2}
	assert.Equal(t, -1.0, Min(values))
	assert.Equal(t, 7.0, Max(values))
	assert.Equal(t, 12.0, Sum(values))

	assert.Equal(t, 0.0, Min(nil))
	assert.Equal(t, 0.0, Max(nil))
	assert.Equal(t, 0.0, Sum(nil))
}
