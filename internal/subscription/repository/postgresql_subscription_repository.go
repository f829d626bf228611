// Package repository implements subscription persistence.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16).
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

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique
// constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint")
}

// PostgreSQLSubscriptionRepository implements Subscription persistence for
// PostgreSQL. Uses native UUID types with transaction support via
// database.GetTx().
type PostgreSQLSubscriptionRepository struct {
	db *sql.DB
}

// Create inserts a new Subscription into the PostgreSQL database. Returns
// ErrSubscriptionExists if the user already subscribes to the location, or an
// error if database insertion fails.
func (p *PostgreSQLSubscriptionRepository) Create(
	ctx context.Context,
	subscription *subscriptionDomain.Subscription,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO subscriptions (id, user_id, location, created_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(
		ctx,
		query,
		subscription.ID,
		subscription.UserID,
		subscription.Location,
		subscription.CreatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return subscriptionDomain.ErrSubscriptionExists
		}
		return apperrors.Wrap(err, "failed to create subscription")
	}
	return nil
}

// GetByID retrieves a Subscription by ID from the PostgreSQL database. Returns
// ErrSubscriptionNotFound if the subscription doesn't exist, or an error if
// database query fails.
func (p *PostgreSQLSubscriptionRepository) GetByID(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (*subscriptionDomain.Subscription, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, location, created_at
			  FROM subscriptions WHERE id = $1`

	var subscription subscriptionDomain.Subscription

	err := querier.QueryRowContext(ctx, query, subscriptionID).Scan(
		&subscription.ID,
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

	return &subscription, nil
}

// ListByUserID retrieves subscriptions owned by a user ordered by ID
// descending (newest first, since IDs are UUIDv7) with offset and limit for
// pagination. Returns empty slice if the user has no subscriptions.
func (p *PostgreSQLSubscriptionRepository) ListByUserID(
	ctx context.Context,
	userID string,
	offset, limit int,
) ([]*subscriptionDomain.Subscription, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, location, created_at
			  FROM subscriptions
			  WHERE user_id = $1
			  ORDER BY id DESC
			  LIMIT $2 OFFSET $3`

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

		err := rows.Scan(
			&subscription.ID,
			&subscription.UserID,
			&subscription.Location,
			&subscription.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan subscription")
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
func (p *PostgreSQLSubscriptionRepository) Delete(ctx context.Context, subscriptionID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM subscriptions WHERE id = $1`

	_, err := querier.ExecContext(ctx, query, subscriptionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete subscription")
	}

	return nil
}

// DistinctLocations returns every location with at least one subscriber. The
// weather poller uses this to fetch each location once regardless of how many
// users subscribe to it.
func (p *PostgreSQLSubscriptionRepository) DistinctLocations(ctx context.Context) ([]string, error) {
	querier := database.GetTx(ctx, p.db)

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
func (p *PostgreSQLSubscriptionRepository) ListByLocation(
	ctx context.Context,
	location string,
) ([]*subscriptionDomain.Subscription, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, location, created_at
			  FROM subscriptions
			  WHERE location = $1
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

		err := rows.Scan(
			&subscription.ID,
			&subscription.UserID,
			&subscription.Location,
			&subscription.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan subscription")
		}

		subscriptions = append(subscriptions, &subscription)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate subscriptions")
	}

	return subscriptions, nil
}

// NewPostgreSQLSubscriptionRepository creates a new PostgreSQL Subscription
// repository.
func NewPostgreSQLSubscriptionRepository(db *sql.DB) *PostgreSQLSubscriptionRepository {
	return &PostgreSQLSubscriptionRepository{db: db}
}
