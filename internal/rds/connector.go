package rds

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver

	"loanlens/internal/config"
	"loanlens/internal/dataset"
	apperrors "loanlens/internal/errors"
)

// DriverPostgres and DriverSQLite are the supported relational sources.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const pingTimeout = 5 * time.Second

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Credentials are the connection parameters for the relational source.
// For SQLite, Database is the database file path and the other keys are
// unused.
type Credentials struct {
	Driver   string
	Host     string
	Database string
	User     string
	Password string
	Port     int
}

// CredentialsFromConfig lifts the database section of the application
// configuration into Credentials.
func CredentialsFromConfig(cfg config.DatabaseConfig) Credentials {
	return Credentials{
		Driver:   cfg.Driver,
		Host:     cfg.Host,
		Database: cfg.Database,
		User:     cfg.User,
		Password: cfg.Password,
		Port:     cfg.Port,
	}
}

// Validate checks that every credential the driver needs is present,
// before any connection is attempted.
func (c Credentials) Validate() error {
	if c.Database == "" {
		return apperrors.MissingCredential("database")
	}
	if c.Driver == DriverSQLite {
		return nil
	}
	if c.Host == "" {
		return apperrors.MissingCredential("host")
	}
	if c.User == "" {
		return apperrors.MissingCredential("user")
	}
	if c.Password == "" {
		return apperrors.MissingCredential("password")
	}
	if c.Port <= 0 {
		return apperrors.MissingCredential("port")
	}
	return nil
}

// DSN renders the driver-specific connection string.
func (c Credentials) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Database
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Database)
}

// Connector wraps a database handle for one-shot table fetches.
type Connector struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open validates the credentials, opens the database and pings it with a
// timeout. Connection errors propagate unchanged; there is no retry.
func Open(ctx context.Context, creds Credentials, logger *slog.Logger) (*Connector, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open(creds.Driver, creds.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	logger.Info("connected to database",
		slog.String("driver", creds.Driver),
		slog.String("database", creds.Database))
	return &Connector{db: db, logger: logger}, nil
}

// Close releases the database handle.
func (c *Connector) Close() error {
	return c.db.Close()
}

// FetchTable loads every row of the named table into a dataset with a
// single SELECT * query. SQL NULL values load as dataset nulls. The table
// name must be a plain identifier; it is interpolated into the query.
func (c *Connector) FetchTable(ctx context.Context, table string) (*dataset.Dataset, error) {
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	rows, err := c.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", table))
	if err != nil {
		return nil, fmt.Errorf("query table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read column names: %w", err)
	}

	records := [][]string{columns}
	values := make([]sql.NullString, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		record := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				record[i] = v.String
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	c.logger.Info("fetched table",
		slog.String("table", table),
		slog.Int("rows", len(records)-1),
		slog.Int("columns", len(columns)))
	return dataset.FromRecords(records)
}
