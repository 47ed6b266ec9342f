package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"loanlens/internal/profile"
	"loanlens/internal/skew"
)

// Report bundles the profiling results written to a workbook.
type Report struct {
	Summaries []profile.ColumnSummary
	Missing   []profile.MissingValue
	Skewness  map[string]skew.Pair
}

// ReportWriter writes profiling reports as XLSX workbooks, one sheet per
// section.
type ReportWriter struct {
	logger *slog.Logger
}

// NewReportWriter creates a report writer. A nil logger falls back to
// the default logger.
func NewReportWriter(logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{logger: logger}
}

// WriteXLSX saves the report to path with Describe, Missing and Skewness
// sheets, creating parent directories as needed.
func (w *ReportWriter) WriteXLSX(report Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeDescribe(f, report.Summaries); err != nil {
		return err
	}
	if err := w.writeMissing(f, report.Missing); err != nil {
		return err
	}
	if err := w.writeSkewness(f, report.Skewness); err != nil {
		return err
	}

	// Drop the default sheet created by excelize.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("wrote profiling report", slog.String("path", path))
	return nil
}

func (w *ReportWriter) writeDescribe(f *excelize.File, summaries []profile.ColumnSummary) error {
	const sheet = "Describe"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	header := []any{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, s := range summaries {
		row := []any{s.Name, s.Count, s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writeMissing(f *excelize.File, missing []profile.MissingValue) error {
	const sheet = "Missing"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	if err := setRow(f, sheet, 1, []any{"column", "percent_missing"}); err != nil {
		return err
	}
	for i, m := range missing {
		if err := setRow(f, sheet, i+2, []any{m.Column, m.PercentMissing}); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writeSkewness(f *excelize.File, pairs map[string]skew.Pair) error {
	const sheet = "Skewness"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	if err := setRow(f, sheet, 1, []any{"column", "before", "after"}); err != nil {
		return err
	}

	names := make([]string, 0, len(pairs))
	for name := range pairs {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		pair := pairs[name]
		if err := setRow(f, sheet, i+2, []any{name, pair.Before, pair.After}); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("compute cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d of %s: %w", row, sheet, err)
	}
	return nil
}
