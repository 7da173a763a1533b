package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"car-dashboard/models"
)

// SQLiteWriter persists the cleaned dataset to a local SQLite file. Same
// contract as the Postgres backend; intended for local and dev use.
type SQLiteWriter struct {
	db    *sql.DB
	table string
}

// NewSQLiteWriter opens (creating if needed) the SQLite database file.
func NewSQLiteWriter(path, table string) (*SQLiteWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("sqlite: create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &SQLiteWriter{db: db, table: table}, nil
}

// Write mirrors the Postgres backend: drop + recreate, commit, sequential
// row inserts, commit.
func (sw *SQLiteWriter) Write(cars []*models.Car) error {
	tx, err := sw.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin schema tx: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, sw.table)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("sqlite: drop table: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf(`
		CREATE TABLE %s (
			title           TEXT    NOT NULL,
			price           REAL    NOT NULL,
			year            INTEGER NOT NULL,
			mileage         REAL    NOT NULL,
			fuel            TEXT    NOT NULL,
			engine_capacity REAL    NOT NULL,
			transmission    TEXT    NOT NULL,
			registered_in   TEXT    NOT NULL,
			color           TEXT    NOT NULL,
			body_type       TEXT    NOT NULL,
			assembly        TEXT    NOT NULL,
			last_updated    TEXT    NOT NULL
		)`, sw.table)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("sqlite: create table: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit schema: %w", err)
	}

	tx, err = sw.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin insert tx: %w", err)
	}
	stmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO %s (title, price, year, mileage, fuel, engine_capacity,
			transmission, registered_in, color, body_type, assembly, last_updated)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`, sw.table))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	for _, car := range cars {
		if _, err := stmt.Exec(insertArgs(car)...); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("sqlite: insert row: %w", err)
		}
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("sqlite: close insert stmt: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit inserts: %w", err)
	}

	return nil
}

// FetchAll reads the stored table back.
func (sw *SQLiteWriter) FetchAll() ([]*models.Car, error) {
	rows, err := sw.db.Query(fmt.Sprintf(`
		SELECT title, price, year, mileage, fuel, engine_capacity,
			transmission, registered_in, color, body_type, assembly, last_updated
		FROM %s`, sw.table))
	if err != nil {
		return nil, fmt.Errorf("sqlite: fetch all: %w", err)
	}
	defer rows.Close()

	return scanCars(rows)
}

// Close closes the database file.
func (sw *SQLiteWriter) Close() error {
	return sw.db.Close()
}
