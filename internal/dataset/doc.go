// Package dataset holds the in-memory tabular representation the toolkit
// operates on: an ordered collection of named, typed columns of equal
// length. Numeric columns store float64 with NaN marking nulls; categorical
// and text columns store strings under an explicit null mask.
//
// Loaders exist for CSV (BOM-tolerant, header row required) and for the
// first sheet of an Excel workbook. Saving goes through internal/exporter.
//
// Transforms mutate a Dataset in place by design; Copy gives callers a deep
// before/after snapshot.
package dataset
