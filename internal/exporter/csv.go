package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"loanlens/internal/dataset"
)

// CSVWriteOptions control CSV output formatting.
type CSVWriteOptions struct {
	// IncludeBOM prepends a UTF-8 byte order mark so spreadsheet tools
	// detect the encoding.
	IncludeBOM bool
}

// CSVWriter writes datasets to CSV files.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer. A nil logger falls back to the
// default logger.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// Write saves the dataset to path, creating parent directories as needed.
// The first row is the header; nulls are written as empty cells.
func (w *CSVWriter) Write(ds *dataset.Dataset, path string, opts CSVWriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if opts.IncludeBOM {
		if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(ds.Records()); err != nil {
		return fmt.Errorf("write records: %w", err)
	}

	rows, cols := ds.Shape()
	w.logger.Info("wrote CSV",
		slog.String("path", path),
		slog.Int("rows", rows),
		slog.Int("columns", cols))
	return nil
}
