package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Driver string

const (
	DriverPostgres Driver = "pgx"
	DriverSQLite   Driver = "sqlite"
)

// Open connects to Postgres when databaseURL is set, else to the SQLite file at sqlitePath.
func Open(databaseURL, sqlitePath string) (*sql.DB, Driver, error) {
	if databaseURL != "" {
		db, err := OpenPostgres(databaseURL)
		return db, DriverPostgres, err
	}
	db, err := OpenSQLite(sqlitePath)
	return db, DriverSQLite, err
}

func OpenPostgres(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open(string(DriverPostgres), databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}

// OpenSQLite uses a single connection; SQLite serializes writers anyway and
// ":memory:" databases are per connection.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open(string(DriverSQLite), path)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", path, err)
	}

	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", path, err)
	}

	return db, nil
}
