package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"car-dashboard/models"
	"car-dashboard/utils"
)

// PostgresWriter persists the cleaned dataset to a PostgreSQL table.
type PostgresWriter struct {
	db    *sql.DB
	table string
}

// NewPostgresWriter opens a connection to PostgreSQL, waiting for the
// server to come up, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn, table string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres-connect", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return &PostgresWriter{db: db, table: table}, nil
}

// Write drops and recreates the destination table, commits, then inserts
// the rows one at a time and commits again. Those are the only two commit
// points: a failure mid-insert leaves the table partially populated with no
// rollback, and the whole load is considered failed.
func (pw *PostgresWriter) Write(cars []*models.Car) error {
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin schema tx: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, pw.table)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("postgres: drop table: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf(`
		CREATE TABLE %s (
			title           TEXT             NOT NULL,
			price           DOUBLE PRECISION NOT NULL,
			year            INTEGER          NOT NULL,
			mileage         DOUBLE PRECISION NOT NULL,
			fuel            TEXT             NOT NULL,
			engine_capacity DOUBLE PRECISION NOT NULL,
			transmission    TEXT             NOT NULL,
			registered_in   TEXT             NOT NULL,
			color           TEXT             NOT NULL,
			body_type       TEXT             NOT NULL,
			assembly        TEXT             NOT NULL,
			last_updated    TEXT             NOT NULL
		)`, pw.table)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("postgres: create table: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit schema: %w", err)
	}

	tx, err = pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin insert tx: %w", err)
	}
	stmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO %s (title, price, year, mileage, fuel, engine_capacity,
			transmission, registered_in, color, body_type, assembly, last_updated)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`, pw.table))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("postgres: prepare insert: %w", err)
	}
	for _, car := range cars {
		if _, err := stmt.Exec(insertArgs(car)...); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("postgres: insert row: %w", err)
		}
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("postgres: close insert stmt: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit inserts: %w", err)
	}

	return nil
}

// FetchAll reads the stored table back. The brand column is not stored;
// callers re-derive it from the title.
func (pw *PostgresWriter) FetchAll() ([]*models.Car, error) {
	rows, err := pw.db.Query(fmt.Sprintf(`
		SELECT title, price, year, mileage, fuel, engine_capacity,
			transmission, registered_in, color, body_type, assembly, last_updated
		FROM %s`, pw.table))
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	return scanCars(rows)
}

// Close closes the underlying connection pool.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// scanCars rebuilds cars from stored rows. Stored zeros are surfaced as
// zeros, not as missing; the zero-default insert policy is not reversible.
func scanCars(rows *sql.Rows) ([]*models.Car, error) {
	var cars []*models.Car
	for rows.Next() {
		var (
			car   models.Car
			price float64
			year  int
		)
		if err := rows.Scan(
			&car.Title, &price, &year, &car.Mileage, &car.Fuel,
			&car.EngineCapacity, &car.Transmission, &car.RegisteredIn,
			&car.Color, &car.BodyType, &car.Assembly, &car.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("storage: scan row: %w", err)
		}
		car.Price = models.Num(price)
		car.Year = models.Num(float64(year))
		cars = append(cars, &car)
	}
	return cars, rows.Err()
}
