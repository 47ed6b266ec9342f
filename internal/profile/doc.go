// Package profile exposes read-only descriptive projections over a
// dataset: shape, per-column summary statistics, single named statistics,
// category value counts and the missing-value percentage table.
package profile
