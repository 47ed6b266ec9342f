package skew

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/stat"

	"loanlens/internal/dataset"
)

// Transform names a de-skewing transform.
type Transform string

const (
	// TransformLog applies log1p after clipping negatives to zero.
	TransformLog Transform = "log"
	// TransformBoxCox applies a Box-Cox power transform with an
	// MLE-fitted parameter. Requires strictly positive values.
	TransformBoxCox Transform = "box-cox"
)

// Policy selects the skewness threshold and the transform to apply.
type Policy struct {
	Threshold float64   `validate:"gte=0"`
	Transform Transform `validate:"oneof=log box-cox"`
}

// Pair holds the skewness of a column before and after a transform.
type Pair struct {
	Before float64
	After  float64
}

var validate = validator.New()

// Corrector identifies skewed numeric columns and transforms them toward
// a normal distribution. Mutating operations work in place on the dataset
// the Corrector was built with.
type Corrector struct {
	ds     *dataset.Dataset
	logger *slog.Logger
}

// New creates a Corrector over ds. A nil logger falls back to
// slog.Default.
func New(ds *dataset.Dataset, logger *slog.Logger) *Corrector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Corrector{ds: ds, logger: logger}
}

// IdentifySkewed returns the names of numeric columns whose absolute
// skewness exceeds threshold, in dataset column order. Columns where the
// estimator is undefined (fewer than three non-null values, or zero
// variance) are never flagged.
func (c *Corrector) IdentifySkewed(threshold float64) []string {
	var out []string
	for _, col := range c.ds.Columns() {
		if !col.IsNumeric() {
			continue
		}
		if sk, ok := skewness(col.NonNullFloats()); ok && math.Abs(sk) > threshold {
			out = append(out, col.Name)
		}
	}
	return out
}

// Apply validates the policy and runs the selected transform over every
// column past the threshold.
func (c *Corrector) Apply(policy Policy) error {
	if err := validate.Struct(policy); err != nil {
		return fmt.Errorf("invalid skew policy: %w", err)
	}
	if policy.Transform == TransformBoxCox {
		c.ApplyBoxCox(policy.Threshold)
	} else {
		c.ApplyLog(policy.Threshold)
	}
	return nil
}

// ApplyLog transforms every skewed column in place: values below zero are
// clipped to zero, then log1p is applied. log1p is defined at zero and
// numerically stable near it, unlike a raw log.
func (c *Corrector) ApplyLog(threshold float64) {
	for _, name := range c.IdentifySkewed(threshold) {
		col, err := c.ds.Column(name)
		if err != nil {
			continue
		}
		for i, v := range col.Floats {
			if math.IsNaN(v) {
				continue
			}
			if v < 0 {
				v = 0
			}
			col.Floats[i] = math.Log1p(v)
		}
		c.logger.Info("applied log1p transform", slog.String("column", name))
	}
}

// ApplyBoxCox transforms every skewed, strictly positive column in place
// with a Box-Cox power transform; the fitted parameter is discarded.
// Columns containing non-positive values are outside the Box-Cox domain
// and are skipped with a notice, not failed. Constant columns are skipped
// too: the likelihood is degenerate there.
func (c *Corrector) ApplyBoxCox(threshold float64) {
	for _, name := range c.IdentifySkewed(threshold) {
		col, err := c.ds.Column(name)
		if err != nil {
			continue
		}
		vals := col.NonNullFloats()
		if !allPositive(vals) {
			c.logger.Info("skipping box-cox: column contains non-positive values",
				slog.String("column", name))
			continue
		}
		if constant(vals) {
			c.logger.Info("skipping box-cox: column is constant",
				slog.String("column", name))
			continue
		}

		lambda := fitLambda(vals)
		for i, v := range col.Floats {
			if !math.IsNaN(v) {
				col.Floats[i] = boxcox(v, lambda)
			}
		}
		c.logger.Info("applied box-cox transform",
			slog.String("column", name),
			slog.Float64("lambda", lambda))
	}
}

// Comparison applies the transform to a deep copy and reports the
// skewness of every numeric column before and after. The caller's dataset
// is never mutated. Both sides use the same estimator, otherwise the
// comparison would be meaningless.
func (c *Corrector) Comparison(threshold float64, transform Transform) (map[string]Pair, error) {
	working := c.ds.Copy()
	corrector := New(working, c.logger)

	before := corrector.numericSkewness()
	if err := corrector.Apply(Policy{Threshold: threshold, Transform: transform}); err != nil {
		return nil, err
	}
	after := corrector.numericSkewness()

	out := make(map[string]Pair, len(before))
	for name, b := range before {
		out[name] = Pair{Before: b, After: after[name]}
	}
	return out, nil
}

func (c *Corrector) numericSkewness() map[string]float64 {
	out := make(map[string]float64)
	for _, col := range c.ds.Columns() {
		if !col.IsNumeric() {
			continue
		}
		sk, ok := skewness(col.NonNullFloats())
		if !ok {
			sk = math.NaN()
		}
		out[col.Name] = sk
	}
	return out
}

// skewness computes the adjusted Fisher-Pearson skewness coefficient.
// ok is false when the estimator is undefined for the sample.
func skewness(vals []float64) (sk float64, ok bool) {
	if len(vals) < 3 {
		return 0, false
	}
	if constant(vals) {
		return 0, false
	}
	sk = stat.Skew(vals, nil)
	if math.IsNaN(sk) || math.IsInf(sk, 0) {
		return 0, false
	}
	return sk, true
}

func allPositive(vals []float64) bool {
	for _, v := range vals {
		if v <= 0 {
			return false
		}
	}
	return true
}

func constant(vals []float64) bool {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}
