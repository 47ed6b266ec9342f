package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{"median odd", []float64{1000, 3000, 4000}, 0.5, 3000},
		{"median even interpolates", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"first quartile", []float64{1, 2, 3, 4, 5}, 0.25, 2},
		{"interpolated quartile", []float64{1, 2, 3, 4}, 0.25, 1.75},
		{"minimum", []float64{5, 1, 3}, 0, 1},
		{"maximum", []float64{5, 1, 3}, 1, 5},
		{"single value", []float64{42}, 0.75, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(tt.values, tt.p), 1e-9)
		})
	}
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Percentile(values, 0.5)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestPercentileEmpty(t *testing.T) {
	assert.True(t, math.IsNaN(Percentile(nil, 0.5)))
	assert.True(t, math.IsNaN(Median(nil)))
}

func TestMode(t *testing.T) {
	assert.Equal(t, 2.0, Mode([]float64{1, 2, 2, 3}))
	assert.Equal(t, 1.0, Mode([]float64{1, 1, 2, 2, 3}), "ties break toward the smallest value")
	assert.True(t, math.IsNaN(Mode(nil)))
}

func TestModeString(t *testing.T) {
	mode, ok := ModeString([]string{"B", "A", "B"})
	assert.True(t, ok)
	assert.Equal(t, "B", mode)

	mode, ok = ModeString([]string{"B", "A"})
	assert.True(t, ok)
	assert.Equal(t, "A", mode, "ties break toward the smallest value")

	_, ok = ModeString(nil)
	assert.False(t, ok)
}
