package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/weathervane/internal/database"
	apperrors "github.com/allisson/weathervane/internal/errors"
	subscriptionDomain "github.com/allisson/weathervane/internal/subscription/domain"
)

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint
// violation (error 1062).
func isMySQLUniqueViolation(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "duplicate entry") || strings.Contains(errStr, "1062")
}

// MySQLSubscriptionRepository implements Subscription persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLSubscriptionRepository struct {
	db *sql.DB
}

// Create inserts a new Subscription into the MySQL database using BINARY(16)
// for UUIDs. Returns ErrSubscriptionExists if the user already subscribes to
// the location, or an error if UUID marshaling or database insertion fails.
func (m *MySQLSubscriptionRepository) Create(
	ctx context.Context,
	subscription *subscriptionDomain.Subscription,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO subscriptions (id, user_id, location, created_at)
			  VALUES (?, ?, ?, ?)`

	id, err := subscription.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal subscription id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		subscription.UserID,
		subscription.Location,
		subscription.CreatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return subscriptionDomain.ErrSubscriptionExists
		}
		return apperrors.Wrap(err, "failed to create subscription")
	}
	return nil
}

// GetByID retrieves a Subscription by ID from the MySQL database using
// BINARY(16) for UUIDs. Returns ErrSubscriptionNotFound if the subscription
// doesn't exist, or an error if UUID unmarshaling or database query fails.
func (m *MySQLSubscriptionRepository) GetByID(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (*subscriptionDomain.Subscription, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, location, created_at
			  FROM subscriptions WHERE id = ?`

	id, err := subscriptionID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal subscription id")
	}

	var subscription subscriptionDomain.Subscription
	var idBytes []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
		&subscription.UserID,
		&subscription.Location,
		&subscription.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, subscriptionDomain.ErrSubscriptionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get subscription")
	}

	if err := subscription.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal subscription id")
	}

	return &subscription, nil
}

// ListByUserID retrieves subscriptions owned by a user ordered by ID
// descending (newest first, since IDs are UUIDv7) with offset and limit for
// pagination. Returns empty slice if the user has no subscriptions.
func (m *MySQLSubscriptionRepository) ListByUserID(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]*subscriptionDomain.Subscription, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, location, created_at
			  FROM subscriptions
			  WHERE user_id = ?
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list subscriptions")
	}
	defer func() {
		_ = rows.Close()
	}()

	// Initialize empty slice to avoid returning nil for empty results
	subscriptions := make([]*subscriptionDomain.Subscription, 0)
	for rows.Next() {
		var subscription subscriptionDomain.Subscription
		var idBytes []byte

		err := rows.Scan(
			&idBytes,
			&subscription.UserID,
			&subscription.Location,
			&subscription.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan subscription")
		}

		if err := subscription.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal subscription id")
		}

		subscriptions = append(subscriptions, &subscription)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate subscriptions")
	}

	return subscriptions, nil
}

// Delete removes a subscription. Deleting a missing subscription affects zero
// rows and returns no error; existence and ownership are the caller's concern.
func (m *MySQLSubscriptionRepository) Delete(ctx context.Context, subscriptionID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM subscriptions WHERE id = ?`

	id, err := subscriptionID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal subscription id")
	}

	_, err = querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete subscription")
	}

	return nil
}

// DistinctLocations returns every location with at least one subscriber. The
// weather poller uses this to fetch each location once regardless of how many
// users subscribe to it.
func (m *MySQLSubscriptionRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT DISTINCT location FROM subscriptions ORDER BY location`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list distinct locations")
	}
	defer func() {
		_ = rows.Close()
	}()

	locations := make([]string, 0)
	for rows.Next() {
		var location string

		if err := rows.Scan(&location); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan location")
		}

		locations = append(locations, location)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate locations")
	}

	return locations, nil
}

// ListByLocation retrieves all subscriptions for a location. The weather
// poller uses this to fan a fresh reading out to every subscriber.
func (m *MySQLSubscriptionRepository) ListByLocation(
	ctx context.Context,
	location string,
) ([]*subscriptionDomain.Subscription, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, location, created_at
			  FROM subscriptions
			  WHERE location = ?
			  ORDER BY id`

	rows, err := querier.QueryContext(ctx, query, location)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list subscriptions by location")
	}
	defer func() {
		_ = rows.Close()
	}()

	subscriptions := make([]*subscriptionDomain.Subscription, 0)
	for rows.Next() {
		var subscription subscriptionDomain.Subscription
		var idBytes []byte

		err := rows.Scan(
			&idBytes,
			&subscription.UserID,
			&subscription.Location,
			&subscription.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan subscription")
		}

		if err := subscription.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal subscription id")
		}

		subscriptions = append(subscriptions, &subscription)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate subscriptions")
	}

	return subscriptions, nil
}

// NewMySQLSubscriptionRepository creates a new MySQL Subscription repository.
func NewMySQLSubscriptionRepository(db *sql.DB) *MySQLSubscriptionRepository {
	return &MySQLSubscriptionRepository{db: db}
}
