// Package errors defines the coded errors the toolkit reports for
// recoverable failures: unknown statistics, wrong column types,
// impossible imputations, unknown columns and missing credentials.
// Errors with the same code compare equal under errors.Is regardless of
// their details.
package errors
