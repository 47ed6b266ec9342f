package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "loanlens/internal/errors"
)

// Dataset is an ordered collection of named columns of equal length.
// Transforms mutate it in place; callers that need a before/after view
// take a Copy first.
type Dataset struct {
	cols   []*Column
	byName map[string]int
}

// New returns an empty dataset.
func New() *Dataset {
	return &Dataset{byName: make(map[string]int)}
}

// AddColumn appends a column. The column length must match the dataset's
// row count unless the dataset is empty.
func (d *Dataset) AddColumn(c *Column) error {
	if len(d.cols) > 0 && c.Len() != d.Rows() {
		return fmt.Errorf("column %q has %d rows, dataset has %d", c.Name, c.Len(), d.Rows())
	}
	if _, exists := d.byName[c.Name]; exists {
		return fmt.Errorf("column %q already exists", c.Name)
	}
	d.byName[c.Name] = len(d.cols)
	d.cols = append(d.cols, c)
	return nil
}

// Column returns the named column, or an error when it does not exist.
func (d *Dataset) Column(name string) (*Column, error) {
	idx, ok := d.byName[name]
	if !ok {
		return nil, apperrors.ColumnNotFound(name)
	}
	return d.cols[idx], nil
}

// Names returns the column names in dataset order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.cols))
	for i, c := range d.cols {
		names[i] = c.Name
	}
	return names
}

// NumericNames returns the names of numeric columns in dataset order.
func (d *Dataset) NumericNames() []string {
	var names []string
	for _, c := range d.cols {
		if c.IsNumeric() {
			names = append(names, c.Name)
		}
	}
	return names
}

// Columns returns the columns in dataset order. The slice is fresh but the
// columns are shared.
func (d *Dataset) Columns() []*Column {
	return append([]*Column(nil), d.cols...)
}

// Rows returns the row count.
func (d *Dataset) Rows() int {
	if len(d.cols) == 0 {
		return 0
	}
	return d.cols[0].Len()
}

// Cols returns the column count.
func (d *Dataset) Cols() int {
	return len(d.cols)
}

// Shape returns (rows, cols).
func (d *Dataset) Shape() (rows, cols int) {
	return d.Rows(), d.Cols()
}

// Copy returns a deep copy of the dataset.
func (d *Dataset) Copy() *Dataset {
	out := New()
	for _, c := range d.cols {
		// AddColumn cannot fail here: names are unique and lengths match.
		_ = out.AddColumn(c.clone())
	}
	return out
}

// DropColumn removes the named column in place.
func (d *Dataset) DropColumn(name string) error {
	idx, ok := d.byName[name]
	if !ok {
		return apperrors.ColumnNotFound(name)
	}
	d.cols = append(d.cols[:idx], d.cols[idx+1:]...)
	delete(d.byName, name)
	for i := idx; i < len(d.cols); i++ {
		d.byName[d.cols[i].Name] = i
	}
	return nil
}

// ReplaceColumn swaps the named column for a new one of the same length,
// keeping its position. The new column may have a different kind.
func (d *Dataset) ReplaceColumn(name string, c *Column) error {
	idx, ok := d.byName[name]
	if !ok {
		return apperrors.ColumnNotFound(name)
	}
	if c.Len() != d.Rows() {
		return fmt.Errorf("column %q has %d rows, dataset has %d", c.Name, c.Len(), d.Rows())
	}
	if c.Name != name {
		if _, exists := d.byName[c.Name]; exists {
			return fmt.Errorf("column %q already exists", c.Name)
		}
		delete(d.byName, name)
		d.byName[c.Name] = idx
	}
	d.cols[idx] = c
	return nil
}

// DropRowsWhereNull removes every row where the named column is null.
func (d *Dataset) DropRowsWhereNull(name string) error {
	target, err := d.Column(name)
	if err != nil {
		return err
	}

	keep := make([]bool, d.Rows())
	for i := range keep {
		keep[i] = !target.IsNull(i)
	}
	d.filterRows(keep)
	return nil
}

// filterRows keeps only the rows where keep[i] is true.
func (d *Dataset) filterRows(keep []bool) {
	for _, c := range d.cols {
		if c.Kind == Numeric {
			out := c.Floats[:0]
			for i, v := range c.Floats {
				if keep[i] {
					out = append(out, v)
				}
			}
			c.Floats = out
			continue
		}
		outS := c.Strings[:0]
		outN := c.Nulls[:0]
		for i, v := range c.Strings {
			if keep[i] {
				outS = append(outS, v)
				outN = append(outN, c.Nulls[i])
			}
		}
		c.Strings = outS
		c.Nulls = outN
	}
}

// Records renders the dataset as a header row followed by one string slice
// per data row, the shape encoding/csv and excelize work with.
func (d *Dataset) Records() [][]string {
	rows := d.Rows()
	records := make([][]string, 0, rows+1)
	records = append(records, d.Names())
	for i := 0; i < rows; i++ {
		row := make([]string, len(d.cols))
		for j, c := range d.cols {
			row[j] = c.Cell(i)
		}
		records = append(records, row)
	}
	return records
}

// FromRecords builds a dataset from a header row plus data rows. Column
// kinds are inferred: a column whose every non-null cell parses as a float
// becomes Numeric, everything else becomes Text. Empty cells and the
// tokens NA, NaN and null (case-insensitive) load as nulls.
func FromRecords(records [][]string) (*Dataset, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	header := records[0]
	rows := records[1:]
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+1, len(row), len(header))
		}
	}

	d := New()
	for j, name := range header {
		cells := make([]string, len(rows))
		for i, row := range rows {
			cells[i] = row[j]
		}
		if err := d.AddColumn(inferColumn(name, cells)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// IsNullToken reports whether a raw cell represents a missing value.
func IsNullToken(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "na", "nan", "null":
		return true
	}
	return false
}

func inferColumn(name string, cells []string) *Column {
	numeric := true
	for _, cell := range cells {
		if IsNullToken(cell) {
			continue
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
			numeric = false
			break
		}
	}

	if numeric {
		floats := make([]float64, len(cells))
		for i, cell := range cells {
			if IsNullToken(cell) {
				floats[i] = math.NaN()
				continue
			}
			floats[i], _ = strconv.ParseFloat(strings.TrimSpace(cell), 64)
		}
		return &Column{Name: name, Kind: Numeric, Floats: floats}
	}

	strs := make([]string, len(cells))
	nulls := make([]bool, len(cells))
	for i, cell := range cells {
		if IsNullToken(cell) {
			nulls[i] = true
			continue
		}
		strs[i] = cell
	}
	return &Column{Name: name, Kind: Text, Strings: strs, Nulls: nulls}
}
