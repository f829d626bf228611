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

// MySQLWeatherRepository implements WeatherReading persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
// The condition column is quoted because CONDITION is a reserved word in
// MySQL.
type MySQLWeatherRepository struct {
	db *sql.DB
}

// Create inserts a new WeatherReading into the MySQL database using BINARY(16)
// for UUIDs.
func (m *MySQLWeatherRepository) Create(
	ctx context.Context,
	reading *weatherDomain.WeatherReading,
) error {
	querier := database.GetTx(ctx, m.db)

	query := "INSERT INTO weather_readings " +
		"(id, location, temperature_c, humidity, wind_kph, `condition`, observed_at, source, created_at) " +
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"

	id, err := reading.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal weather reading id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLWeatherRepository) GetLatestByLocation(
	ctx context.Context,
	location string,
) (*weatherDomain.WeatherReading, error) {
	querier := database.GetTx(ctx, m.db)

	query := "SELECT id, location, temperature_c, humidity, wind_kph, `condition`, observed_at, source, created_at " +
		"FROM weather_readings " +
		"WHERE location = ? " +
		"ORDER BY observed_at DESC " +
		"LIMIT 1"

	var reading weatherDomain.WeatherReading
	var idBytes []byte

	err := querier.QueryRowContext(ctx, query, location).Scan(
		&idBytes,
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

	if err := reading.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal weather reading id")
	}

	return &reading, nil
}

// ListRange retrieves readings for a location observed within [from, to),
// oldest first. The forecast aggregation consumes this window.
func (m *MySQLWeatherRepository) ListRange(
	ctx context.Context,
	location string,
	from, to time.Time,
) ([]*weatherDomain.WeatherReading, error) {
	querier := database.GetTx(ctx, m.db)

	query := "SELECT id, location, temperature_c, humidity, wind_kph, `condition`, observed_at, source, created_at " +
		"FROM weather_readings " +
		"WHERE location = ? AND observed_at >= ? AND observed_at < ? " +
		"ORDER BY observed_at ASC"

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
		var idBytes []byte

		err := rows.Scan(
			&idBytes,
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

		if err := reading.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal weather reading id")
		}

		readings = append(readings, &reading)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate weather readings")
	}

	return readings, nil
}

// NewMySQLWeatherRepository creates a new MySQL WeatherReading repository.
func NewMySQLWeatherRepository(db *sql.DB) *MySQLWeatherRepository {
	return &MySQLWeatherRepository{db: db}
}
