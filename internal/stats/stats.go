// Package stats provides the order statistics the toolkit needs with the
// conventions the rest of the pipeline assumes: percentiles use linear
// interpolation on the (n-1)p index, and mode breaks ties toward the
// smallest value. Moment statistics (mean, stddev, skewness, correlation)
// come from gonum and are not wrapped here.
package stats

import (
	"math"
	"slices"
)

// Percentile returns the p-th percentile of values using linear
// interpolation between the two nearest ranks. p must be in [0, 1].
// The input slice is not modified. Returns NaN for an empty slice.
func Percentile(values []float64, p float64) float64 {
	count := len(values)
	if count == 0 {
		return math.NaN()
	}

	sorted := make([]float64, count)
	copy(sorted, values)
	slices.Sort(sorted)

	idx := p * float64(count-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))

	if lower == upper || upper >= count {
		return sorted[lower]
	}

	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// Median returns the middle value, averaging the two central values for an
// even count. Returns NaN for an empty slice.
func Median(values []float64) float64 {
	return Percentile(values, 0.5)
}

// Mode returns the most frequent value. Ties break toward the smallest
// value. Returns NaN for an empty slice.
func Mode(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	best := math.NaN()
	bestCount := 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best = v
			bestCount = c
		}
	}
	return best
}

// ModeString returns the most frequent string. Ties break toward the
// lexicographically smallest value. ok is false for an empty slice.
func ModeString(values []string) (mode string, ok bool) {
	if len(values) == 0 {
		return "", false
	}

	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	bestCount := 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < mode) {
			mode = v
			bestCount = c
		}
	}
	return mode, true
}
