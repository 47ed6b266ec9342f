// Package rds connects to the relational data source and extracts whole
// tables into datasets. It supports PostgreSQL and SQLite and performs a
// single one-shot query per fetch; credentials are validated up front so
// a missing key fails fast instead of surfacing as a driver error.
package rds
