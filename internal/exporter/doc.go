// Package exporter writes pipeline outputs to disk: cleaned datasets as
// CSV files and profiling results as multi-sheet XLSX workbooks.
package exporter
