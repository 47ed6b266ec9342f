package profile

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"loanlens/internal/dataset"
	apperrors "loanlens/internal/errors"
	"loanlens/internal/stats"
)

// Statistic names recognized by ColumnStatistic and Statistics.
const (
	StatMedian = "median"
	StatMean   = "mean"
	StatStd    = "std"
)

var recognizedStatistics = []string{StatMedian, StatStd, StatMean}

// Info produces read-only projections over a dataset. It never mutates the
// dataset it was built from.
type Info struct {
	ds *dataset.Dataset
}

// New creates an Info over the given dataset.
func New(ds *dataset.Dataset) *Info {
	return &Info{ds: ds}
}

// Shape returns (rows, cols).
func (i *Info) Shape() (rows, cols int) {
	return i.ds.Shape()
}

// ColumnSummary is the per-column block of Describe: count of non-null
// values and the usual eight-number summary over them.
type ColumnSummary struct {
	Name   string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Describe summarizes every numeric column in dataset order. Columns with
// no non-null values report NaN statistics.
func (i *Info) Describe() []ColumnSummary {
	var out []ColumnSummary
	for _, c := range i.ds.Columns() {
		if !c.IsNumeric() {
			continue
		}
		vals := c.NonNullFloats()
		s := ColumnSummary{Name: c.Name, Count: len(vals)}
		if len(vals) == 0 {
			s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max =
				nan(), nan(), nan(), nan(), nan(), nan(), nan()
			out = append(out, s)
			continue
		}
		s.Mean = stat.Mean(vals, nil)
		s.Std = stat.StdDev(vals, nil)
		s.Min = stats.Percentile(vals, 0)
		s.Q25 = stats.Percentile(vals, 0.25)
		s.Median = stats.Percentile(vals, 0.5)
		s.Q75 = stats.Percentile(vals, 0.75)
		s.Max = stats.Percentile(vals, 1)
		out = append(out, s)
	}
	return out
}

// ColumnStatistic computes a single named statistic (median, std or mean)
// over the non-null values of one numeric column.
func (i *Info) ColumnStatistic(name, column string) (float64, error) {
	if !statisticRecognized(name) {
		return 0, apperrors.InvalidStatistic(name, recognizedStatistics...)
	}
	c, err := i.ds.Column(column)
	if err != nil {
		return 0, err
	}
	if !c.IsNumeric() {
		return 0, apperrors.WrongColumnType(column, "numeric", c.Kind.String())
	}
	return computeStatistic(name, c.NonNullFloats()), nil
}

// Statistics computes a named statistic for every numeric column.
func (i *Info) Statistics(name string) (map[string]float64, error) {
	if !statisticRecognized(name) {
		return nil, apperrors.InvalidStatistic(name, recognizedStatistics...)
	}
	out := make(map[string]float64)
	for _, c := range i.ds.Columns() {
		if c.IsNumeric() {
			out[c.Name] = computeStatistic(name, c.NonNullFloats())
		}
	}
	return out, nil
}

// CategoryCount is one entry of a category-value count table.
type CategoryCount struct {
	Value string
	Count int
}

// CategoryCounts counts the distinct values of a categorical column,
// sorted by count descending, ties by value. Columns that have not been
// converted to Categorical are rejected.
func (i *Info) CategoryCounts(column string) ([]CategoryCount, error) {
	c, err := i.ds.Column(column)
	if err != nil {
		return nil, err
	}
	if c.Kind != dataset.Categorical {
		return nil, apperrors.WrongColumnType(column, "categorical", c.Kind.String())
	}

	counts := make(map[string]int)
	for _, v := range c.NonNullStrings() {
		counts[v]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, CategoryCount{Value: v, Count: n})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return out[a].Value < out[b].Value
	})
	return out, nil
}

// MissingValue is one row of the missing-value percentage table.
type MissingValue struct {
	Column         string
	PercentMissing float64
}

// MissingTable reports the percentage of missing values per column,
// rounded to two decimals, for every column with at least one null,
// in dataset order.
func (i *Info) MissingTable() []MissingValue {
	rows := i.ds.Rows()
	var out []MissingValue
	for _, c := range i.ds.Columns() {
		nulls := c.NullCount()
		if nulls == 0 {
			continue
		}
		pct := 0.0
		if rows > 0 {
			pct = round2(100 * float64(nulls) / float64(rows))
		}
		out = append(out, MissingValue{Column: c.Name, PercentMissing: pct})
	}
	return out
}

func statisticRecognized(name string) bool {
	return name == StatMedian || name == StatStd || name == StatMean
}

func computeStatistic(name string, vals []float64) float64 {
	if len(vals) == 0 {
		return nan()
	}
	switch name {
	case StatMedian:
		return stats.Median(vals)
	case StatStd:
		return stat.StdDev(vals, nil)
	default:
		return stat.Mean(vals, nil)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func nan() float64 { return math.NaN() }
