// Package transform holds the type-coercion pass that runs before
// profiling and cleaning: whitespace stripping, day-first date parsing,
// digit extraction from mixed text ("36 months"), and conversions between
// text, categorical and numeric columns.
package transform

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"loanlens/internal/dataset"
	apperrors "loanlens/internal/errors"
)

var digitsRe = regexp.MustCompile(`\d+`)

// dateLayouts are tried in order. Day-first layouts come before the ISO
// form, matching the source data's European-style dates.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02 Jan 2006",
	"Jan-2006",
	"Jan-06",
	"2006-01-02",
}

// StripWhitespace trims leading and trailing whitespace from every cell of
// every string column, in place.
func StripWhitespace(ds *dataset.Dataset) {
	for _, c := range ds.Columns() {
		if c.IsNumeric() {
			continue
		}
		for i, v := range c.Strings {
			if !c.Nulls[i] {
				c.Strings[i] = strings.TrimSpace(v)
			}
		}
	}
}

// ToDate parses a string column as day-first dates and rewrites it in the
// canonical 2006-01-02 form. Non-null cells that fail every layout become
// null; the parse is preferential, not strict, like the source data's
// mixed date formats require.
func ToDate(ds *dataset.Dataset, column string) error {
	c, err := ds.Column(column)
	if err != nil {
		return err
	}
	if c.IsNumeric() {
		return apperrors.WrongColumnType(column, "text", c.Kind.String())
	}

	for i, v := range c.Strings {
		if c.Nulls[i] {
			continue
		}
		parsed, ok := parseDate(strings.TrimSpace(v))
		if !ok {
			c.Strings[i] = ""
			c.Nulls[i] = true
			continue
		}
		c.Strings[i] = parsed.Format("2006-01-02")
	}
	return nil
}

// ExtractNumber replaces a string column with a numeric one holding the
// first run of digits in each cell ("36 months" becomes 36). Cells
// without digits become null.
func ExtractNumber(ds *dataset.Dataset, column string) error {
	c, err := ds.Column(column)
	if err != nil {
		return err
	}
	if c.IsNumeric() {
		return apperrors.WrongColumnType(column, "text", c.Kind.String())
	}

	floats := make([]float64, len(c.Strings))
	for i, v := range c.Strings {
		if c.Nulls[i] {
			floats[i] = math.NaN()
			continue
		}
		match := digitsRe.FindString(v)
		if match == "" {
			floats[i] = math.NaN()
			continue
		}
		floats[i], _ = strconv.ParseFloat(match, 64)
	}
	return ds.ReplaceColumn(column, &dataset.Column{
		Name:   column,
		Kind:   dataset.Numeric,
		Floats: floats,
	})
}

// ToCategorical marks a text column as categorical so that category-aware
// operations (value counts) accept it.
func ToCategorical(ds *dataset.Dataset, column string) error {
	c, err := ds.Column(column)
	if err != nil {
		return err
	}
	if c.IsNumeric() {
		return apperrors.WrongColumnType(column, "text", c.Kind.String())
	}
	c.Kind = dataset.Categorical
	return nil
}

// Factorize replaces a string column with 1-based numeric codes assigned
// in order of first appearance. Nulls stay null.
func Factorize(ds *dataset.Dataset, column string) error {
	c, err := ds.Column(column)
	if err != nil {
		return err
	}
	if c.IsNumeric() {
		return apperrors.WrongColumnType(column, "text or categorical", c.Kind.String())
	}

	codes := make(map[string]float64)
	floats := make([]float64, len(c.Strings))
	next := 1.0
	for i, v := range c.Strings {
		if c.Nulls[i] {
			floats[i] = math.NaN()
			continue
		}
		code, ok := codes[v]
		if !ok {
			code = next
			codes[v] = code
			next++
		}
		floats[i] = code
	}
	return ds.ReplaceColumn(column, &dataset.Column{
		Name:   column,
		Kind:   dataset.Numeric,
		Floats: floats,
	})
}

// ToNumeric converts a string column to numeric. Every non-null cell must
// parse as a float; anything else is an error, there is no coercion to
// null here.
func ToNumeric(ds *dataset.Dataset, column string) error {
	c, err := ds.Column(column)
	if err != nil {
		return err
	}
	if c.IsNumeric() {
		return nil
	}

	floats := make([]float64, len(c.Strings))
	for i, v := range c.Strings {
		if c.Nulls[i] {
			floats[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("column %q row %d: %q is not numeric", column, i, v)
		}
		floats[i] = f
	}
	return ds.ReplaceColumn(column, &dataset.Column{
		Name:   column,
		Kind:   dataset.Numeric,
		Floats: floats,
	})
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
