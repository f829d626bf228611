// Package repository implements weather reading persistence.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16).
// Readings are insert-only; there is no update or delete path.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/allisson/weathervane/internal/database"
	apperrors "github.com/allisson/weathervane/internal/errors"
	weatherDomain "github.com/allisson/weathervane/internal/weather/domain"
)

// PostgreSQLWeatherRepository implements WeatherReading persistence for
// PostgreSQL. Uses native UUID types with transaction support via
// database.GetTx().
type PostgreSQLWeatherRepository struct {
	db *sql.DB
}

// Create inserts a new WeatherReading into the PostgreSQL database.
func (p *PostgreSQLWeatherRepository) Create(
	ctx context.Context,
	reading *weatherDomain.WeatherReading,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO weather_readings
			  (id, location, temperature_c, humidity, wind_kph, condition, observed_at, source, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		reading.ID,
		reading.Location,
		reading.TemperatureC,
		reading.Humidity,
		reading.WindKph,
		reading.Condition,
		reading.ObservedAt,
		reading.Source,
		reading.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create weather reading")
	}

	return nil
}

// GetLatestByLocation retrieves the most recent reading for a location.
// Returns ErrReadingNotFound when nothing is stored for the location yet.
func (p *PostgreSQLWeatherRepository) GetLatestByLocation(
	ctx context.Context,
	location string,
) (*weatherDomain.WeatherReading, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, location, temperature_c, humidity, wind_kph, condition, observed_at, source, created_at
			  FROM weather_readings
			  WHERE location = $1
			  ORDER BY observed_at DESC
			  LIMIT 1`

	var reading weatherDomain.WeatherReading

	err := querier.QueryRowContext(ctx, query, location).Scan(
		&reading.ID,
		&reading.Location,
		&reading.TemperatureC,
		&reading.Humidity,
		&reading.WindKph,
		&reading.Condition,
		&reading.ObservedAt,
		&reading.Source,
		&reading.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, weatherDomain.ErrReadingNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get latest weather reading")
	}

	return &reading, nil
}

// ListRange retrieves readings for a location observed within [from, to),
// oldest first. The forecast aggregation consumes this window.
func (p *PostgreSQLWeatherRepository) ListRange(
	ctx context.Context,
	location string,
	from, to time.Time,
) ([]*weatherDomain.WeatherReading, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, location, temperature_c, humidity, wind_kph, condition, observed_at, source, created_at
			  FROM weather_readings
			  WHERE location = $1 AND observed_at >= $2 AND observed_at < $3
			  ORDER BY observed_at ASC`

	rows, err := querier.QueryContext(ctx, query, location, from, to)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list weather readings")
	}
	defer func() {
		_ = rows.Close()
	}()

	// Initialize empty slice to avoid returning nil for empty results
	readings := make([]*weatherDomain.WeatherReading, 0)
	for rows.Next() {
		var reading weatherDomain.WeatherReading

		err := rows.Scan(
			&reading.ID,
			&reading.Location,
			&reading.TemperatureC,
			&reading.Humidity,
			&reading.WindKph,
			&reading.Condition,
			&reading.ObservedAt,
			&reading.Source,
			&reading.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan weather reading")
		}

		readings = append(readings, &reading)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate weather readings")
	}

	return readings, nil
}

// NewPostgreSQLWeatherRepository creates a new PostgreSQL WeatherReading
// repository.
func NewPostgreSQLWeatherRepository(db *sql.DB) *PostgreSQLWeatherRepository {
	return &PostgreSQLWeatherRepository{db: db}
}
