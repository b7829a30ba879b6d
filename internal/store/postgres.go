package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Postgres is the dialect for PostgreSQL through the pgx stdlib driver.
var Postgres Dialect = postgresDialect{}

type postgresDialect struct{}

func (postgresDialect) Driver() string { return "pgx" }

func (postgresDialect) Rebind(query string) string { return query }

func (postgresDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS directors (
			id        BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			name      TEXT NOT NULL,
			birthyear INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS movies (
			id       BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			title    TEXT NOT NULL,
			director TEXT NOT NULL,
			year     INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id       BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		)`,
	}
}

func (postgresDialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
