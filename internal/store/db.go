// Package store implements the persistence layer: a generic CRUD store over a
// single table, its director and movie instantiations, and the credential
// store. PostgreSQL (pgx) and SQLite are supported behind a small Dialect.
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the subset of database/sql used by the stores.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect captures what differs between the supported databases.
type Dialect interface {
	// Driver is the database/sql driver name.
	Driver() string
	// Rebind rewrites a query written with $n placeholders.
	Rebind(query string) string
	// Schema returns the CREATE TABLE IF NOT EXISTS statements.
	Schema() []string
	IsUniqueViolation(err error) bool
}

// DB is an open connection pool together with its dialect.
type DB struct {
	*sql.DB
	dialect Dialect
}

// DialectFor returns the dialect registered under the given driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case Postgres.Driver():
		return Postgres, nil
	case SQLite.Driver():
		return SQLite, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	d, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.Driver(), dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	// A single SQLite connection serializes writes and keeps :memory: databases alive.
	if d == SQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return &DB{DB: db, dialect: d}, nil
}

// Dialect returns the dialect the connection was opened with.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate creates the directors, movies and users tables if they don't exist.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range db.dialect.Schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}
