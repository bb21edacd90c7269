package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"car-scraper/models"
	"car-scraper/utils"
)

const (
	carColumns = 10
	batchSize  = 50
)

// PostgresWriter persists normalised car listings to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}
	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS car_listings (
			id                SERIAL PRIMARY KEY,
			brand             TEXT          NOT NULL,
			model             TEXT          NOT NULL,
			body_type         TEXT          NOT NULL DEFAULT '',
			seats             INTEGER       NOT NULL DEFAULT 0,
			variant           TEXT          NOT NULL DEFAULT '',
			price             NUMERIC(14,2) NOT NULL DEFAULT 0,
			fuel_type         TEXT          NOT NULL DEFAULT '',
			transmission_type TEXT          NOT NULL DEFAULT '',
			colour_variant    TEXT          NOT NULL DEFAULT '',
			location          TEXT          NOT NULL DEFAULT '',
			created_at        TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_car_listings_price     ON car_listings(price);
		CREATE INDEX IF NOT EXISTS idx_car_listings_fuel_type ON car_listings(fuel_type);
		CREATE INDEX IF NOT EXISTS idx_car_listings_location  ON car_listings(location);
	`)
	return err
}

// Write replaces the table contents with cars. The delete and every insert
// batch run in one transaction, so a failed batch leaves the previous
// contents in place.
func (pw *PostgresWriter) Write(cars []*models.Car) error {
	if len(cars) == 0 {
		return nil
	}

	ctx := context.Background()
	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM car_listings"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	for i, batch := range splitBatches(cars, batchSize) {
		query, args := buildInsert(batch)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func splitBatches(cars []*models.Car, size int) [][]*models.Car {
	var batches [][]*models.Car
	for i := 0; i < len(cars); i += size {
		end := i + size
		if end > len(cars) {
			end = len(cars)
		}
		batches = append(batches, cars[i:end])
	}
	return batches
}

func buildInsert(batch []*models.Car) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*carColumns)

	for idx, c := range batch {
		base := idx * carColumns
		placeholders := make([]string, carColumns)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			c.Brand, c.Model, c.BodyType, c.Seats, c.Variant,
			c.Price, c.FuelType, c.TransmissionType, c.ColourVariant, c.Location)
	}

	query := `INSERT INTO car_listings (brand, model, body_type, seats, variant, price, fuel_type, transmission_type, colour_variant, location) VALUES ` +
		strings.Join(valueStrings, ",")
	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored listings; used by the insight service.
func (pw *PostgresWriter) FetchAll() ([]*models.Car, error) {
	rows, err := pw.db.Query(`
		SELECT id, brand, model, body_type, seats, variant, price, fuel_type,
		       transmission_type, colour_variant, location, created_at
		FROM car_listings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var cars []*models.Car
	for rows.Next() {
		c := &models.Car{}
		if err := rows.Scan(
			&c.ID, &c.Brand, &c.Model, &c.BodyType, &c.Seats, &c.Variant, &c.Price,
			&c.FuelType, &c.TransmissionType, &c.ColourVariant, &c.Location, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}
