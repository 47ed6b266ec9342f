package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVFrom(t *testing.T) {
	input := "age,grade\n25,A\n,B\n40,A\n"
	d, err := ReadCSVFrom(strings.NewReader(input))
	require.NoError(t, err)

	rows, cols := d.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)

	age, err := d.Column("age")
	require.NoError(t, err)
	assert.Equal(t, Numeric, age.Kind)
	assert.Equal(t, 1, age.NullCount())
}

func TestReadCSVFromStripsBOM(t *testing.T) {
	input := string([]byte{0xEF, 0xBB, 0xBF}) + "age\n1\n2\n"
	d, err := ReadCSVFrom(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"age"}, d.Names())
}

func TestReadCSVFromEmpty(t *testing.T) {
	_, err := ReadCSVFrom(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loans.csv")
	require.NoError(t, os.WriteFile(path, []byte("income\n1000\n3000\n"), 0644))

	d, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Rows())

	_, err = ReadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
