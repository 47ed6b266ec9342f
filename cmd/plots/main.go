// Command plots renders diagnostic PNG charts for a loan payments CSV
// file: histograms, a missing-value comparison, a correlation heat map
// and before/after skew comparisons.
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
	"loanlens/internal/infrastructure"
	"loanlens/internal/plotting"
	"loanlens/internal/profile"
	"loanlens/internal/remediate"
	"loanlens/internal/skew"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file (optional, env vars apply first)")
	in := flag.String("in", "", "input csv file path (required)")
	columns := flag.String("columns", "", "comma-separated columns to plot histograms for (defaults to all numeric)")
	bins := flag.Int("bins", 16, "histogram bin count")
	threshold := flag.Float64("threshold", 50, "remediation threshold for the missing-value comparison")
	skewThreshold := flag.Float64("skew-threshold", 0.5, "absolute skewness above which a before/after chart is drawn")
	transformName := flag.String("transform", "log", "skew transform for the comparison charts: log | box-cox")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: plots -in <file.csv>")
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

	ds, err := dataset.ReadCSV(*in)
	if err != nil {
		logger.Error("Failed to read CSV",
			slog.String("path", *in),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Rendering plots",
		slog.String("input_file", *in),
		slog.String("plots_dir", cfg.Paths.PlotsDir))

	names := splitList(*columns)
	if len(names) == 0 {
		names = ds.NumericNames()
	}
	for _, name := range names {
		path := cfg.PlotPath("hist_" + name + ".png")
		if err := plotting.Histogram(ds, name, *bins, path); err != nil {
			logger.Error("Failed to render histogram",
				slog.String("column", name),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Rendered histogram", slog.String("path", path))
	}

	if err := renderNullComparison(ds, *threshold, cfg, logger); err != nil {
		logger.Error("Failed to render missing-value comparison", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, corrNames := correlation.Matrix(ds)
	if len(corrNames) > 1 {
		path := cfg.PlotPath("correlation.png")
		if err := plotting.CorrelationHeatmap(m, corrNames, path); err != nil {
			logger.Error("Failed to render correlation heat map", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Rendered correlation heat map", slog.String("path", path))
	}

	if err := renderSkewComparisons(ds, *skewThreshold, skew.Transform(*transformName), *bins, cfg, logger); err != nil {
		logger.Error("Failed to render skew comparisons", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Plot rendering complete", slog.String("plots_dir", cfg.Paths.PlotsDir))
}

// renderNullComparison remediates a copy of the dataset with the default
// impute policy and charts the missing percentages before and after.
func renderNullComparison(ds *dataset.Dataset, threshold float64, cfg *config.Config, logger *slog.Logger) error {
	before := profile.New(ds).MissingTable()
	if len(before) == 0 {
		logger.Info("No missing values, skipping comparison chart")
		return nil
	}

	work := ds.Copy()
	cleaned, err := remediate.New(work, logger).Remediate(remediate.Policy{
		ThresholdPercentage: threshold,
		Method:              remediate.MethodImpute,
		Statistic:           remediate.StatisticMedian,
	})
	if err != nil {
		return err
	}
	after := profile.New(cleaned).MissingTable()

	path := cfg.PlotPath("missing.png")
	if err := plotting.NullComparison(before, after, path); err != nil {
		return err
	}
	logger.Info("Rendered missing-value comparison", slog.String("path", path))
	return nil
}

// renderSkewComparisons applies the transform to a copy of the dataset
// and charts each transformed column against its original distribution.
func renderSkewComparisons(ds *dataset.Dataset, threshold float64, t skew.Transform, bins int, cfg *config.Config, logger *slog.Logger) error {
	corrector := skew.New(ds, logger)
	skewed := corrector.IdentifySkewed(threshold)
	if len(skewed) == 0 {
		logger.Info("No skewed columns, skipping comparison charts")
		return nil
	}

	work := ds.Copy()
	if err := skew.New(work, logger).Apply(skew.Policy{Threshold: threshold, Transform: t}); err != nil {
		return err
	}

	for _, name := range skewed {
		original, err := ds.Column(name)
		if err != nil {
			return err
		}
		transformed, err := work.Column(name)
		if err != nil {
			return err
		}

		path := cfg.PlotPath("skew_" + name + ".png")
		err = plotting.SkewComparison(name, original.NonNullFloats(), transformed.NonNullFloats(), bins, path)
		if err != nil {
			return err
		}
		logger.Info("Rendered skew comparison", slog.String("path", path))
	}
	return nil
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
