package skew

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanlens/internal/dataset"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func numericDataset(t *testing.T, name string, vals []float64) *dataset.Dataset {
	t.Helper()
	d := dataset.New()
	require.NoError(t, d.AddColumn(&dataset.Column{
		Name:   name,
		Kind:   dataset.Numeric,
		Floats: append([]float64(nil), vals...),
	}))
	return d
}

func TestIdentifySkewed(t *testing.T) {
	d := numericDataset(t, "amount", []float64{1, 1, 1, 1, 100})
	require.NoError(t, d.AddColumn(&dataset.Column{
		Name:   "age",
		Kind:   dataset.Numeric,
		Floats: []float64{1, 2, 3, 4, 5},
	}))
	require.NoError(t, d.AddColumn(&dataset.Column{
		Name:    "grade",
		Kind:    dataset.Text,
		Strings: []string{"A", "B", "A", "B", "A"},
		Nulls:   make([]bool, 5),
	}))

	skewed := New(d, quietLogger()).IdentifySkewed(2)
	assert.Equal(t, []string{"amount"}, skewed,
		"only the heavily right-skewed numeric column is flagged")
}

func TestIdentifySkewedNeverReturnsNonNumeric(t *testing.T) {
	d := dataset.New()
	require.NoError(t, d.AddColumn(&dataset.Column{
		Name:    "notes",
		Kind:    dataset.Text,
		Strings: []string{"x", "y", "z"},
		Nulls:   make([]bool, 3),
	}))
	assert.Empty(t, New(d, quietLogger()).IdentifySkewed(0))
}

func TestIdentifySkewedSkipsDegenerateColumns(t *testing.T) {
	d := numericDataset(t, "constant", []float64{7, 7, 7, 7})
	require.NoError(t, d.AddColumn(&dataset.Column{
		Name:   "tiny",
		Kind:   dataset.Numeric,
		Floats: []float64{1, 100, math.NaN(), math.NaN()},
	}))
	assert.Empty(t, New(d, quietLogger()).IdentifySkewed(0))
}

func TestApplyLog(t *testing.T) {
	original := []float64{1, 1, 1, 1, 100}
	d := numericDataset(t, "amount", original)

	New(d, quietLogger()).ApplyLog(2)

	amount, err := d.Column("amount")
	require.NoError(t, err)
	for i, v := range amount.Floats {
		assert.InDelta(t, math.Log1p(original[i]), v, 1e-12)
	}
}

func TestApplyLogInverseRecoversOriginal(t *testing.T) {
	original := []float64{0, 1, 2, 3, 200}
	d := numericDataset(t, "amount", original)

	New(d, quietLogger()).ApplyLog(2)

	amount, err := d.Column("amount")
	require.NoError(t, err)
	for i, v := range amount.Floats {
		assert.InDelta(t, original[i], math.Expm1(v), 1e-9,
			"expm1 inverts log1p for values that were >= 0")
	}
}

func TestApplyLogClipsNegatives(t *testing.T) {
	d := numericDataset(t, "amount", []float64{-5, 1, 1, 1, 100})

	New(d, quietLogger()).ApplyLog(1)

	amount, err := d.Column("amount")
	require.NoError(t, err)
	assert.Equal(t, 0.0, amount.Floats[0], "negative values clip to zero before log1p")
}

func TestApplyLogLeavesUnskewedColumnsAlone(t *testing.T) {
	d := numericDataset(t, "age", []float64{1, 2, 3, 4, 5})
	New(d, quietLogger()).ApplyLog(2)

	age, err := d.Column("age")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, age.Floats)
}

func TestApplyBoxCoxReducesSkewness(t *testing.T) {
	vals := []float64{1, 1.2, 1.5, 2, 2.5, 3, 4, 5, 8, 100}
	d := numericDataset(t, "amount", vals)

	before, ok := skewness(vals)
	require.True(t, ok)
	require.Greater(t, before, 2.0)

	New(d, quietLogger()).ApplyBoxCox(2)

	amount, err := d.Column("amount")
	require.NoError(t, err)
	after, ok := skewness(amount.Floats)
	require.True(t, ok)
	assert.Less(t, math.Abs(after), math.Abs(before))
}

func TestApplyBoxCoxSkipsNonPositiveColumns(t *testing.T) {
	vals := []float64{0, 1, 1, 1, 100}
	d := numericDataset(t, "amount", vals)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	New(d, logger).ApplyBoxCox(1)

	amount, err := d.Column("amount")
	require.NoError(t, err)
	assert.Equal(t, vals, amount.Floats, "column is left completely unchanged")
	assert.Contains(t, buf.String(), "non-positive")
}

func TestApplyPolicyValidation(t *testing.T) {
	d := numericDataset(t, "amount", []float64{1, 2, 3})
	err := New(d, quietLogger()).Apply(Policy{Threshold: -1, Transform: TransformLog})
	assert.Error(t, err)

	err = New(d, quietLogger()).Apply(Policy{Threshold: 2, Transform: "yeo-johnson"})
	assert.Error(t, err)
}

func TestComparisonDoesNotMutateCaller(t *testing.T) {
	original := []float64{1, 1, 1, 1, 100}
	d := numericDataset(t, "amount", original)

	pairs, err := New(d, quietLogger()).Comparison(2, TransformLog)
	require.NoError(t, err)

	amount, err := d.Column("amount")
	require.NoError(t, err)
	assert.Equal(t, original, amount.Floats, "caller's dataset is untouched")

	pair, ok := pairs["amount"]
	require.True(t, ok)
	assert.Greater(t, pair.Before, 2.0)
	assert.Less(t, math.Abs(pair.After), math.Abs(pair.Before))
}

func TestComparisonCoversEveryNumericColumn(t *testing.T) {
	d := numericDataset(t, "amount", []float64{1, 1, 1, 1, 100})
	require.NoError(t, d.AddColumn(&dataset.Column{
		Name:   "age",
		Kind:   dataset.Numeric,
		Floats: []float64{1, 2, 3, 4, 5},
	}))

	pairs, err := New(d, quietLogger()).Comparison(2, TransformBoxCox)
	require.NoError(t, err)
	assert.Len(t, pairs, 2, "unskewed numeric columns appear too")

	age := pairs["age"]
	assert.InDelta(t, age.Before, age.After, 1e-12, "untransformed column keeps its skewness")
}

func TestFitLambdaRecoversLogForLognormalShape(t *testing.T) {
	// Exponentials of a symmetric sample: log (lambda ~ 0) is the best
	// power transform, so the fit should land near zero.
	base := []float64{-2, -1.5, -1, -0.5, 0, 0.5, 1, 1.5, 2}
	vals := make([]float64, len(base))
	for i, v := range base {
		vals[i] = math.Exp(v)
	}
	lambda := fitLambda(vals)
	assert.InDelta(t, 0, lambda, 0.05)
}

func TestBoxCoxValueTransform(t *testing.T) {
	assert.InDelta(t, math.Log(10), boxcox(10, 0), 1e-12)
	assert.InDelta(t, 9.0/1.0, boxcox(10, 1), 1e-12, "lambda 1 shifts by -1")
	assert.InDelta(t, (math.Sqrt(10)-1)/0.5, boxcox(10, 0.5), 1e-12)
}
