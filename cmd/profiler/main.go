// Command profiler prints summary statistics for a loan payments CSV
// file and optionally saves them as an XLSX report.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"loanlens/internal/config"
	"loanlens/internal/dataset"
	"loanlens/internal/exporter"
	"loanlens/internal/infrastructure"
	"loanlens/internal/profile"
	"loanlens/internal/skew"
	"loanlens/internal/transform"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file (optional, env vars apply first)")
	in := flag.String("in", "", "input csv file path (required)")
	report := flag.String("report", "", "write an XLSX report to this path (optional)")
	categories := flag.String("categories", "", "comma-separated columns to show category counts for")
	skewThreshold := flag.Float64("skew-threshold", 0.5, "absolute skewness above which a column is reported as skewed")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: profiler -in <file.csv> [-report <file.xlsx>]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
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

	info := profile.New(ds)
	rows, cols := info.Shape()

	heading := color.New(color.FgCyan, color.Bold)
	heading.Printf("Dataset: %s (%d rows, %d columns)\n\n", *in, rows, cols)

	summaries := info.Describe()
	printDescribe(summaries)

	missing := info.MissingTable()
	printMissing(missing)

	for _, column := range splitList(*categories) {
		if err := transform.ToCategorical(ds, column); err != nil {
			logger.Error("Failed to convert column to categorical",
				slog.String("column", column),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		counts, err := info.CategoryCounts(column)
		if err != nil {
			logger.Error("Failed to count categories",
				slog.String("column", column),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		printCategories(column, counts)
	}

	pairs, err := skew.New(ds, logger).Comparison(*skewThreshold, skew.TransformLog)
	if err != nil {
		logger.Error("Failed to compute skewness", slog.String("error", err.Error()))
		os.Exit(1)
	}
	printSkewness(pairs, summaries)

	if *report != "" {
		writer := exporter.NewReportWriter(logger)
		err := writer.WriteXLSX(exporter.Report{
			Summaries: summaries,
			Missing:   missing,
			Skewness:  pairs,
		}, *report)
		if err != nil {
			logger.Error("Failed to write report",
				slog.String("path", *report),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		heading.Printf("\nReport written to %s\n", *report)
	}
}

func printDescribe(summaries []profile.ColumnSummary) {
	color.New(color.Bold).Println("Numeric summary")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"})
	for _, s := range summaries {
		table.Append([]string{
			s.Name,
			strconv.Itoa(s.Count),
			num(s.Mean), num(s.Std), num(s.Min),
			num(s.Q25), num(s.Median), num(s.Q75), num(s.Max),
		})
	}
	table.Render()
	fmt.Println()
}

func printMissing(missing []profile.MissingValue) {
	color.New(color.Bold).Println("Missing values")
	if len(missing) == 0 {
		fmt.Println("none")
		fmt.Println()
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Column", "% Missing"})
	for _, m := range missing {
		table.Append([]string{m.Column, num(m.PercentMissing)})
	}
	table.Render()
	fmt.Println()
}

func printCategories(column string, counts []profile.CategoryCount) {
	color.New(color.Bold).Printf("Categories: %s\n", column)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Value", "Count"})
	for _, c := range counts {
		table.Append([]string{c.Value, strconv.Itoa(c.Count)})
	}
	table.Render()
	fmt.Println()
}

func printSkewness(pairs map[string]skew.Pair, summaries []profile.ColumnSummary) {
	color.New(color.Bold).Println("Skewed columns (log transform preview)")
	if len(pairs) == 0 {
		fmt.Println("none")
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Column", "Skew before", "Skew after"})
	// Keep dataset column order.
	for _, s := range summaries {
		pair, ok := pairs[s.Name]
		if !ok {
			continue
		}
		table.Append([]string{s.Name, num(pair.Before), num(pair.After)})
	}
	table.Render()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
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
