package dataset

import (
	"math"
	"strconv"
)

// Kind identifies how a column stores and interprets its values.
type Kind int

const (
	// Numeric columns hold float64 values; NaN marks a null.
	Numeric Kind = iota
	// Categorical columns hold a bounded set of string labels.
	Categorical
	// Text columns hold free-form strings.
	Text
)

// String returns the lower-case kind name used in errors and logs.
func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "text"
	}
}

// Column is a single named column. Numeric columns use Floats with NaN as
// the null marker; Categorical and Text columns use Strings with Nulls as
// the null mask. Exactly one of the two storages is populated.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
	Nulls   []bool
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// IsNumeric reports whether the column stores float64 values.
func (c *Column) IsNumeric() bool {
	return c.Kind == Numeric
}

// IsNull reports whether the value at row i is null.
func (c *Column) IsNull(i int) bool {
	if c.Kind == Numeric {
		return math.IsNaN(c.Floats[i])
	}
	return c.Nulls[i]
}

// NullCount returns the number of null values in the column.
func (c *Column) NullCount() int {
	count := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			count++
		}
	}
	return count
}

// NonNullFloats returns the non-null values of a numeric column in row
// order. The result is a fresh slice.
func (c *Column) NonNullFloats() []float64 {
	out := make([]float64, 0, len(c.Floats))
	for _, v := range c.Floats {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// NonNullStrings returns the non-null values of a string column in row
// order. The result is a fresh slice.
func (c *Column) NonNullStrings() []string {
	out := make([]string, 0, len(c.Strings))
	for i, v := range c.Strings {
		if !c.Nulls[i] {
			out = append(out, v)
		}
	}
	return out
}

// Cell renders the value at row i as a string for CSV/XLSX output.
// Nulls render as the empty string.
func (c *Column) Cell(i int) string {
	if c.IsNull(i) {
		return ""
	}
	if c.Kind == Numeric {
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	}
	return c.Strings[i]
}

// clone returns a deep copy of the column.
func (c *Column) clone() *Column {
	out := &Column{Name: c.Name, Kind: c.Kind}
	if c.Floats != nil {
		out.Floats = append([]float64(nil), c.Floats...)
	}
	if c.Strings != nil {
		out.Strings = append([]string(nil), c.Strings...)
	}
	if c.Nulls != nil {
		out.Nulls = append([]bool(nil), c.Nulls...)
	}
	return out
}
