// Command cleaner runs the full preparation pipeline on a loan payments
// CSV file: optional type coercion, missing-value remediation, optional
// correlation pruning and a skew transform, then saves the cleaned CSV.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"loanlens/internal/config"
	"loanlens/internal/correlation"
	"loanlens/internal/dataset"
	"loanlens/internal/exporter"
	"loanlens/internal/infrastructure"
	"loanlens/internal/remediate"
	"loanlens/internal/skew"
	"loanlens/internal/transform"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file (optional, env vars apply first)")
	in := flag.String("in", "", "input csv file path (required)")
	out := flag.String("out", "", "output csv file path (defaults to <data_dir>/cleaned.csv)")
	strip := flag.Bool("strip", true, "strip surrounding whitespace from text cells")
	dateColumns := flag.String("date-columns", "", "comma-separated columns to parse as dates")
	numberColumns := flag.String("number-columns", "", "comma-separated columns to extract a leading number from")
	threshold := flag.Float64("threshold", 50, "drop columns whose missing percentage exceeds this")
	method := flag.String("method", "impute", "remediation for columns under the threshold: impute | remove")
	statistic := flag.String("statistic", "median", "imputation statistic: median | mean | mode")
	corrThreshold := flag.Float64("corr-threshold", 0, "drop one of each numeric pair correlated above this (0 disables)")
	skewThreshold := flag.Float64("skew-threshold", 0.5, "transform numeric columns with absolute skewness above this")
	transformName := flag.String("transform", "log", "skew transform: log | box-cox")
	bom := flag.Bool("bom", false, "prepend a UTF-8 BOM to the output file")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: cleaner -in <file.csv> [-out <file.csv>]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	logger, closeLogger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
		closeLogger = func() error { return nil }
	}
	defer closeLogger()

	if *out == "" {
		*out = cfg.DataPath("cleaned.csv")
	}

	logger.Info("Starting cleaning pipeline",
		slog.String("input_file", *in),
		slog.String("output_file", *out),
		slog.Float64("threshold", *threshold),
		slog.String("transform", *transformName))

	ds, err := dataset.ReadCSV(*in)
	if err != nil {
		logger.Error("Failed to read CSV",
			slog.String("path", *in),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *strip {
		transform.StripWhitespace(ds)
	}
	for _, column := range splitList(*dateColumns) {
		if err := transform.ToDate(ds, column); err != nil {
			logger.Error("Failed to parse dates",
				slog.String("column", column),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	for _, column := range splitList(*numberColumns) {
		if err := transform.ExtractNumber(ds, column); err != nil {
			logger.Error("Failed to extract numbers",
				slog.String("column", column),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	remediator := remediate.New(ds, logger)
	cleaned, err := remediator.Remediate(remediate.Policy{
		ThresholdPercentage: *threshold,
		Method:              remediate.Method(*method),
		Statistic:           remediate.Statistic(*statistic),
	})
	if err != nil {
		logger.Error("Remediation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *corrThreshold > 0 {
		dropped, err := correlation.Prune(cleaned, *corrThreshold, logger)
		if err != nil {
			logger.Error("Correlation pruning failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if len(dropped) > 0 {
			logger.Info("Dropped correlated columns",
				slog.String("columns", strings.Join(dropped, ",")))
		}
	}

	corrector := skew.New(cleaned, logger)
	err = corrector.Apply(skew.Policy{
		Threshold: *skewThreshold,
		Transform: skew.Transform(*transformName),
	})
	if err != nil {
		logger.Error("Skew transform failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(logger)
	if err := writer.Write(cleaned, *out, exporter.CSVWriteOptions{IncludeBOM: *bom}); err != nil {
		logger.Error("Failed to write CSV",
			slog.String("path", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	rows, cols := cleaned.Shape()
	logger.Info("Cleaning complete",
		slog.Int("rows", rows),
		slog.Int("columns", cols),
		slog.String("output_file", *out))
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
