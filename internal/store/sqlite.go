package store

import (
	"errors"
	"regexp"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var placeholder = regexp.MustCompile(`\$\d+`)

// SQLite is the dialect for SQLite through modernc.org/sqlite.
var SQLite Dialect = sqliteDialect{}

type sqliteDialect struct{}

func (sqliteDialect) Driver() string { return "sqlite" }

// Rebind turns $n into ?. Every query binds its arguments in placeholder order.
func (sqliteDialect) Rebind(query string) string {
	return placeholder.ReplaceAllString(query, "?")
}

func (sqliteDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS directors (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			name      TEXT NOT NULL,
			birthyear INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS movies (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			title    TEXT NOT NULL,
			director TEXT NOT NULL,
			year     INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		)`,
	}
}

func (sqliteDialect) IsUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
