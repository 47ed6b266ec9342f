package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanlens/internal/dataset"
	apperrors "loanlens/internal/errors"
)

func textColumn(t *testing.T, name string, cells []string) *dataset.Dataset {
	t.Helper()
	records := [][]string{{name}}
	for _, c := range cells {
		records = append(records, []string{c})
	}
	d, err := dataset.FromRecords(records)
	require.NoError(t, err)
	return d
}

func TestStripWhitespace(t *testing.T) {
	d := textColumn(t, "grade", []string{"  A ", "B", " C"})
	StripWhitespace(d)

	grade, err := d.Column("grade")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, grade.Strings)
}

func TestToDateDayFirst(t *testing.T) {
	d := textColumn(t, "issue_date", []string{"05/03/2021", "Jan-2021", "2021-07-15", "garbage"})
	require.NoError(t, ToDate(d, "issue_date"))

	col, err := d.Column("issue_date")
	require.NoError(t, err)
	assert.Equal(t, "2021-03-05", col.Strings[0], "day comes first")
	assert.Equal(t, "2021-01-01", col.Strings[1])
	assert.Equal(t, "2021-07-15", col.Strings[2])
	assert.True(t, col.IsNull(3), "unparseable cells become null")
}

func TestExtractNumber(t *testing.T) {
	d := textColumn(t, "term", []string{"36 months", "60 months", "", "no digits"})
	require.NoError(t, ExtractNumber(d, "term"))

	term, err := d.Column("term")
	require.NoError(t, err)
	assert.Equal(t, dataset.Numeric, term.Kind)
	assert.Equal(t, 36.0, term.Floats[0])
	assert.Equal(t, 60.0, term.Floats[1])
	assert.True(t, math.IsNaN(term.Floats[2]))
	assert.True(t, math.IsNaN(term.Floats[3]))
}

func TestToCategorical(t *testing.T) {
	d := textColumn(t, "grade", []string{"A", "B"})
	require.NoError(t, ToCategorical(d, "grade"))

	grade, err := d.Column("grade")
	require.NoError(t, err)
	assert.Equal(t, dataset.Categorical, grade.Kind)
}

func TestFactorize(t *testing.T) {
	d := textColumn(t, "grade", []string{"B", "A", "B", "", "C"})
	require.NoError(t, Factorize(d, "grade"))

	grade, err := d.Column("grade")
	require.NoError(t, err)
	assert.Equal(t, dataset.Numeric, grade.Kind)
	assert.Equal(t, 1.0, grade.Floats[0], "codes follow first appearance")
	assert.Equal(t, 2.0, grade.Floats[1])
	assert.Equal(t, 1.0, grade.Floats[2])
	assert.True(t, math.IsNaN(grade.Floats[3]), "nulls stay null")
	assert.Equal(t, 3.0, grade.Floats[4])
}

func TestToNumeric(t *testing.T) {
	d := textColumn(t, "rate", []string{"1.5", "2.25", "x"})
	err := ToNumeric(d, "rate")
	assert.Error(t, err, "unparseable non-null cells are an error")

	d = textColumn(t, "rate", []string{"1.5", "", "2.25"})
	require.NoError(t, ToNumeric(d, "rate"))
	rate, err := d.Column("rate")
	require.NoError(t, err)
	assert.Equal(t, dataset.Numeric, rate.Kind)
	assert.True(t, math.IsNaN(rate.Floats[1]))
}

func TestWrongColumnKind(t *testing.T) {
	d, err := dataset.FromRecords([][]string{{"amount"}, {"1"}, {"2"}})
	require.NoError(t, err)

	assert.True(t, errors.Is(ToDate(d, "amount"), apperrors.ErrWrongColumnType))
	assert.True(t, errors.Is(ExtractNumber(d, "amount"), apperrors.ErrWrongColumnType))
	assert.True(t, errors.Is(ToCategorical(d, "amount"), apperrors.ErrWrongColumnType))
	assert.True(t, errors.Is(Factorize(d, "amount"), apperrors.ErrWrongColumnType))
	assert.True(t, errors.Is(ToDate(d, "missing"), apperrors.ErrColumnNotFound))
}
