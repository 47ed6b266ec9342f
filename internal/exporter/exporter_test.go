package exporter

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"loanlens/internal/dataset"
	"loanlens/internal/profile"
	"loanlens/internal/skew"
)

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	ds := dataset.New()
	require.NoError(t, ds.AddColumn(&dataset.Column{
		Name:   "loan_amount",
		Kind:   dataset.Numeric,
		Floats: []float64{1000, math.NaN(), 2500},
	}))
	require.NoError(t, ds.AddColumn(&dataset.Column{
		Name:    "grade",
		Kind:    dataset.Text,
		Strings: []string{"A", "B", ""},
		Nulls:   []bool{false, false, true},
	}))
	return ds
}

func TestCSVWriterRoundTrip(t *testing.T) {
	ds := testDataset(t)
	path := filepath.Join(t.TempDir(), "out", "cleaned.csv")

	w := NewCSVWriter(nil)
	require.NoError(t, w.Write(ds, path, CSVWriteOptions{}))

	got, err := dataset.ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, ds.Records(), got.Records())
}

func TestCSVWriterBOM(t *testing.T) {
	ds := testDataset(t)
	path := filepath.Join(t.TempDir(), "cleaned.csv")

	w := NewCSVWriter(nil)
	require.NoError(t, w.Write(ds, path, CSVWriteOptions{IncludeBOM: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])

	// The reader strips the BOM, so the round trip still matches.
	got, err := dataset.ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, ds.Records(), got.Records())
}

func TestReportWriterXLSX(t *testing.T) {
	report := Report{
		Summaries: []profile.ColumnSummary{
			{Name: "loan_amount", Count: 3, Mean: 2000, Std: 763.76, Min: 1000, Q25: 1500, Median: 2000, Q75: 2500, Max: 3000},
		},
		Missing: []profile.MissingValue{
			{Column: "loan_amount", PercentMissing: 25.0},
		},
		Skewness: map[string]skew.Pair{
			"loan_amount": {Before: 2.1, After: 0.3},
		},
	}

	path := filepath.Join(t.TempDir(), "reports", "profile.xlsx")
	w := NewReportWriter(nil)
	require.NoError(t, w.WriteXLSX(report, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Describe", "Missing", "Skewness"}, f.GetSheetList())

	rows, err := f.GetRows("Missing")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"column", "percent_missing"}, rows[0])
	assert.Equal(t, "loan_amount", rows[1][0])

	rows, err = f.GetRows("Skewness")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"loan_amount", "2.1", "0.3"}, rows[1])
}
