package remediate

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/stat"

	"loanlens/internal/dataset"
	apperrors "loanlens/internal/errors"
	"loanlens/internal/stats"
)

// Method selects what Remediate does with columns at or under the
// missingness threshold.
type Method string

const (
	// MethodImpute fills nulls with the policy statistic.
	MethodImpute Method = "impute"
	// MethodRemove drops the rows where the column is null.
	MethodRemove Method = "remove"
)

// Statistic names an imputation statistic.
type Statistic string

const (
	StatisticMedian Statistic = "median"
	StatisticMean   Statistic = "mean"
	StatisticMode   Statistic = "mode"
)

// Policy drives Remediate: columns whose null percentage exceeds
// ThresholdPercentage are dropped outright, the rest are imputed or have
// their null rows removed depending on Method.
type Policy struct {
	ThresholdPercentage float64   `validate:"gte=0,lte=100"`
	Method              Method    `validate:"oneof=impute remove"`
	Statistic           Statistic `validate:"oneof=median mean mode"`
}

// ColumnMissingness is one row of the missingness report.
type ColumnMissingness struct {
	Name           string
	NullCount      int
	NullPercentage float64
}

var validate = validator.New()

// Remediator inspects and repairs missing values in a dataset.
// Its mutating operations work in place on the dataset it was built with.
type Remediator struct {
	ds     *dataset.Dataset
	logger *slog.Logger
}

// New creates a Remediator over ds. A nil logger falls back to
// slog.Default.
func New(ds *dataset.Dataset, logger *slog.Logger) *Remediator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Remediator{ds: ds, logger: logger}
}

// Report lists every column with at least one null, with its null count
// and percentage (two decimals), sorted by percentage descending. Ties
// keep dataset column order, so the report ordering is deterministic.
// Report never mutates the dataset.
func (r *Remediator) Report() []ColumnMissingness {
	rows := r.ds.Rows()
	var out []ColumnMissingness
	for _, c := range r.ds.Columns() {
		nulls := c.NullCount()
		if nulls == 0 {
			continue
		}
		pct := 0.0
		if rows > 0 {
			pct = round2(100 * float64(nulls) / float64(rows))
		}
		out = append(out, ColumnMissingness{
			Name:           c.Name,
			NullCount:      nulls,
			NullPercentage: pct,
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].NullPercentage > out[b].NullPercentage
	})
	return out
}

// Remediate applies the policy to every column in the missingness report,
// in report order. Columns over the threshold are dropped with a notice;
// the rest are imputed or have their null rows removed. The dataset is
// mutated in place and returned for chaining.
func (r *Remediator) Remediate(policy Policy) (*dataset.Dataset, error) {
	if err := validate.Struct(policy); err != nil {
		return nil, fmt.Errorf("invalid remediation policy: %w", err)
	}

	for _, entry := range r.Report() {
		if entry.NullPercentage > policy.ThresholdPercentage {
			r.logger.Info("dropping column over missingness threshold",
				slog.String("column", entry.Name),
				slog.Float64("null_percentage", entry.NullPercentage),
				slog.Float64("threshold", policy.ThresholdPercentage))
			if err := r.ds.DropColumn(entry.Name); err != nil {
				return nil, err
			}
			continue
		}

		switch policy.Method {
		case MethodRemove:
			if err := r.ds.DropRowsWhereNull(entry.Name); err != nil {
				return nil, err
			}
			r.logger.Info("dropped rows with null values",
				slog.String("column", entry.Name),
				slog.Int("null_count", entry.NullCount))
		default:
			if err := r.ImputeColumn(entry.Name, policy.Statistic); err != nil {
				return nil, err
			}
		}
	}
	return r.ds, nil
}

// ImputeColumn fills the nulls of one column in place. Numeric columns
// accept median or mean; anything else is rejected with an
// INVALID_STATISTIC error. Non-numeric columns always take the mode, and a
// warning is logged when a different statistic was requested. A column
// with no non-null values cannot be imputed.
func (r *Remediator) ImputeColumn(name string, statistic Statistic) error {
	c, err := r.ds.Column(name)
	if err != nil {
		return err
	}

	if c.IsNumeric() {
		return r.imputeNumeric(c, statistic)
	}
	if statistic != StatisticMode {
		r.logger.Warn("non-numeric column imputed with mode instead of requested statistic",
			slog.String("column", name),
			slog.String("requested", string(statistic)))
	}
	return r.imputeMode(c)
}

func (r *Remediator) imputeNumeric(c *dataset.Column, statistic Statistic) error {
	vals := c.NonNullFloats()
	if len(vals) == 0 {
		return apperrors.ImputationImpossible(c.Name)
	}

	var fill float64
	switch statistic {
	case StatisticMedian:
		fill = stats.Median(vals)
	case StatisticMean:
		fill = stat.Mean(vals, nil)
	default:
		return apperrors.InvalidStatistic(string(statistic),
			string(StatisticMedian), string(StatisticMean))
	}

	filled := 0
	for i, v := range c.Floats {
		if math.IsNaN(v) {
			c.Floats[i] = fill
			filled++
		}
	}
	r.logger.Info("imputed column",
		slog.String("column", c.Name),
		slog.String("statistic", string(statistic)),
		slog.Float64("value", fill),
		slog.Int("filled", filled))
	return nil
}

func (r *Remediator) imputeMode(c *dataset.Column) error {
	mode, ok := stats.ModeString(c.NonNullStrings())
	if !ok {
		return apperrors.ImputationImpossible(c.Name)
	}

	filled := 0
	for i, null := range c.Nulls {
		if null {
			c.Strings[i] = mode
			c.Nulls[i] = false
			filled++
		}
	}
	r.logger.Info("imputed column",
		slog.String("column", c.Name),
		slog.String("statistic", string(StatisticMode)),
		slog.String("value", mode),
		slog.Int("filled", filled))
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
