// Package correlation computes a Pearson correlation matrix over the
// numeric columns of a dataset and prunes columns that are highly
// correlated with an earlier column, keeping the first of each pair.
package correlation

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"loanlens/internal/dataset"
)

// Matrix returns the pairwise Pearson correlation matrix over the numeric
// columns of ds, with the column names in matrix order. Rows where either
// value of a pair is null are skipped for that pair (pairwise-complete
// observations). Undefined correlations (a constant or empty pairing)
// come back as NaN.
func Matrix(ds *dataset.Dataset) (*mat.SymDense, []string) {
	names := ds.NumericNames()
	n := len(names)
	cols := make([]*dataset.Column, n)
	for i, name := range names {
		cols[i], _ = ds.Column(name)
	}

	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		m.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			m.SetSym(i, j, pairwiseCorrelation(cols[i], cols[j]))
		}
	}
	return m, names
}

// Prune drops every numeric column whose absolute correlation with an
// earlier numeric column exceeds threshold, scanning the upper triangle
// of the correlation matrix. Dropped column names are returned in drop
// order; the dataset is mutated in place.
func Prune(ds *dataset.Dataset, threshold float64, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m, names := Matrix(ds)
	var dropped []string
	for j := 1; j < len(names); j++ {
		for i := 0; i < j; i++ {
			r := m.At(i, j)
			if math.IsNaN(r) || math.Abs(r) <= threshold {
				continue
			}
			logger.Info("dropping highly correlated column",
				slog.String("column", names[j]),
				slog.String("correlated_with", names[i]),
				slog.Float64("correlation", r),
				slog.Float64("threshold", threshold))
			if err := ds.DropColumn(names[j]); err != nil {
				return dropped, err
			}
			dropped = append(dropped, names[j])
			break
		}
	}
	return dropped, nil
}

// pairwiseCorrelation computes the Pearson correlation over the rows
// where both columns are non-null.
func pairwiseCorrelation(a, b *dataset.Column) float64 {
	var xs, ys []float64
	for i := range a.Floats {
		if math.IsNaN(a.Floats[i]) || math.IsNaN(b.Floats[i]) {
			continue
		}
		xs = append(xs, a.Floats[i])
		ys = append(ys, b.Floats[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
