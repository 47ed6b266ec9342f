package rds

import (
	"context"
	"database/sql"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanlens/internal/dataset"
	apperrors "loanlens/internal/errors"
)

func TestCredentialsValidate(t *testing.T) {
	base := Credentials{
		Driver:   DriverPostgres,
		Host:     "localhost",
		Database: "loans",
		User:     "analyst",
		Password: "secret",
		Port:     5432,
	}

	tests := []struct {
		name    string
		mutate  func(*Credentials)
		wantErr bool
	}{
		{name: "complete", mutate: func(c *Credentials) {}},
		{name: "missing host", mutate: func(c *Credentials) { c.Host = "" }, wantErr: true},
		{name: "missing database", mutate: func(c *Credentials) { c.Database = "" }, wantErr: true},
		{name: "missing user", mutate: func(c *Credentials) { c.User = "" }, wantErr: true},
		{name: "missing password", mutate: func(c *Credentials) { c.Password = "" }, wantErr: true},
		{name: "zero port", mutate: func(c *Credentials) { c.Port = 0 }, wantErr: true},
		{
			name: "sqlite needs only database",
			mutate: func(c *Credentials) {
				*c = Credentials{Driver: DriverSQLite, Database: "loans.db"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := base
			tt.mutate(&creds)
			err := creds.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrMissingCredential)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCredentialsDSN(t *testing.T) {
	creds := Credentials{
		Driver:   DriverPostgres,
		Host:     "db.example.com",
		Database: "loans",
		User:     "analyst",
		Password: "secret",
		Port:     5432,
	}
	assert.Equal(t,
		"host=db.example.com port=5432 user=analyst password=secret dbname=loans sslmode=disable",
		creds.DSN())

	creds = Credentials{Driver: DriverSQLite, Database: "/tmp/loans.db"}
	assert.Equal(t, "/tmp/loans.db", creds.DSN())
}

func seedDatabase(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "loans.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE loan_payments (
		loan_amount REAL,
		grade TEXT
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO loan_payments (loan_amount, grade) VALUES
		(1000, 'A'),
		(2500, 'B'),
		(NULL, 'A'),
		(4000, NULL)`)
	require.NoError(t, err)
	return path
}

func TestFetchTable(t *testing.T) {
	path := seedDatabase(t)
	ctx := context.Background()

	conn, err := Open(ctx, Credentials{Driver: DriverSQLite, Database: path}, nil)
	require.NoError(t, err)
	defer conn.Close()

	ds, err := conn.FetchTable(ctx, "loan_payments")
	require.NoError(t, err)

	rows, cols := ds.Shape()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 2, cols)

	amount, err := ds.Column("loan_amount")
	require.NoError(t, err)
	assert.Equal(t, dataset.Numeric, amount.Kind)
	assert.Equal(t, 1000.0, amount.Floats[0])
	assert.True(t, math.IsNaN(amount.Floats[2]))

	grade, err := ds.Column("grade")
	require.NoError(t, err)
	assert.Equal(t, dataset.Text, grade.Kind)
	assert.Equal(t, "A", grade.Strings[0])
	assert.True(t, grade.IsNull(3))
}

func TestFetchTableRejectsBadIdentifier(t *testing.T) {
	path := seedDatabase(t)
	ctx := context.Background()

	conn, err := Open(ctx, Credentials{Driver: DriverSQLite, Database: path}, nil)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.FetchTable(ctx, "loan_payments; DROP TABLE loan_payments")
	assert.Error(t, err)
}

func TestOpenMissingCredential(t *testing.T) {
	_, err := Open(context.Background(), Credentials{Driver: DriverPostgres}, nil)
	assert.ErrorIs(t, err, apperrors.ErrMissingCredential)
}
