// Command fetcher extracts the loan payments table from the relational
// source and saves it as a local CSV file.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"loanlens/internal/config"
	"loanlens/internal/exporter"
	"loanlens/internal/infrastructure"
	"loanlens/internal/rds"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file (optional, env vars apply first)")
	table := flag.String("table", "", "table to fetch (defaults to the configured table)")
	out := flag.String("out", "", "output csv file path (defaults to <data_dir>/loan_payments.csv)")
	bom := flag.Bool("bom", false, "prepend a UTF-8 BOM to the output file")
	flag.Parse()

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

	if *table == "" {
		*table = cfg.Database.Table
	}
	if *out == "" {
		*out = cfg.DataPath("loan_payments.csv")
	}

	logger.Info("Starting table extraction",
		slog.String("driver", cfg.Database.Driver),
		slog.String("table", *table),
		slog.String("output_file", *out))

	ctx := context.Background()
	conn, err := rds.Open(ctx, rds.CredentialsFromConfig(cfg.Database), logger)
	if err != nil {
		logger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer conn.Close()

	ds, err := conn.FetchTable(ctx, *table)
	if err != nil {
		logger.Error("Failed to fetch table",
			slog.String("table", *table),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(logger)
	if err := writer.Write(ds, *out, exporter.CSVWriteOptions{IncludeBOM: *bom}); err != nil {
		logger.Error("Failed to write CSV",
			slog.String("path", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	rows, cols := ds.Shape()
	logger.Info("Extraction complete",
		slog.Int("rows", rows),
		slog.Int("columns", cols),
		slog.String("output_file", *out))
}
