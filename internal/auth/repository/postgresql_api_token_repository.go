// Package repository implements API token persistence.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/weathervane/internal/auth/domain"
	"github.com/allisson/weathervane/internal/database"
	apperrors "github.com/allisson/weathervane/internal/errors"
)

// PostgreSQLApiTokenRepository implements ApiToken persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLApiTokenRepository struct {
	db *sql.DB
}

// Create inserts a new ApiToken into the PostgreSQL database. Uses transaction
// support via database.GetTx(). Returns an error if database insertion fails,
// including unique violations on token_hash.
func (p *PostgreSQLApiTokenRepository) Create(ctx context.Context, token *authDomain.ApiToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO api_tokens (id, user_id, token_hash, name, prefix, created_at, last_used_at, expires_at, revoked)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.Name,
		token.Prefix,
		token.CreatedAt,
		token.LastUsedAt,
		token.ExpiresAt,
		token.Revoked,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create api token")
	}
	return nil
}

// GetByID retrieves an ApiToken by ID from the PostgreSQL database. Uses
// transaction support via database.GetTx(). Returns ErrApiTokenNotFound if the
// token doesn't exist, or an error if database query fails.
func (p *PostgreSQLApiTokenRepository) GetByID(
	ctx context.Context,
	tokenID uuid.UUID,
) (*authDomain.ApiToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, token_hash, name, prefix, created_at, last_used_at, expires_at, revoked
			  FROM api_tokens WHERE id = $1`

	var token authDomain.ApiToken

	err := querier.QueryRowContext(ctx, query, tokenID).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.Name,
		&token.Prefix,
		&token.CreatedAt,
		&token.LastUsedAt,
		&token.ExpiresAt,
		&token.Revoked,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrApiTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get api token")
	}

	return &token, nil
}

// GetByTokenHash retrieves an ApiToken by its SHA-256 hash from the PostgreSQL
// database. The hash is the only stored form of the credential, so this is the
// authentication lookup. Returns ErrApiTokenNotFound if no token matches, or
// an error if database query fails.
func (p *PostgreSQLApiTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.ApiToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, token_hash, name, prefix, created_at, last_used_at, expires_at, revoked
			  FROM api_tokens WHERE token_hash = $1`

	var token authDomain.ApiToken

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.Name,
		&token.Prefix,
		&token.CreatedAt,
		&token.LastUsedAt,
		&token.ExpiresAt,
		&token.Revoked,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrApiTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get api token by hash")
	}

	return &token, nil
}

// ListByUserID retrieves all tokens owned by a user ordered by ID descending
// (newest first, since IDs are UUIDv7). Returns empty slice if the user has no
// tokens.
func (p *PostgreSQLApiTokenRepository) ListByUserID(
	ctx context.Context,
	userID string,
) ([]*authDomain.ApiToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, token_hash, name, prefix, created_at, last_used_at, expires_at, revoked
			  FROM api_tokens
			  WHERE user_id = $1
			  ORDER BY id DESC`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list api tokens")
	}
	defer func() {
		_ = rows.Close()
	}()

	// Initialize empty slice to avoid returning nil for empty results
	tokens := make([]*authDomain.ApiToken, 0)
	for rows.Next() {
		var token authDomain.ApiToken

		err := rows.Scan(
			&token.ID,
			&token.UserID,
			&token.TokenHash,
			&token.Name,
			&token.Prefix,
			&token.CreatedAt,
			&token.LastUsedAt,
			&token.ExpiresAt,
			&token.Revoked,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan api token")
		}

		tokens = append(tokens, &token)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate api tokens")
	}

	return tokens, nil
}

// Revoke marks a token as revoked. Revoking an already revoked or missing
// token affects zero rows and returns no error; existence and ownership are
// the caller's concern.
func (p *PostgreSQLApiTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE api_tokens SET revoked = TRUE WHERE id = $1`

	_, err := querier.ExecContext(ctx, query, tokenID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke api token")
	}

	return nil
}

// TouchLastUsed records when a token last authenticated a request.
func (p *PostgreSQLApiTokenRepository) TouchLastUsed(
	ctx context.Context,
	tokenID uuid.UUID,
	usedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE api_tokens SET last_used_at = $1 WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, usedAt, tokenID)
	if err != nil {
		return apperrors.Wrap(err, "failed to touch api token")
	}

	return nil
}

// CountExpired counts tokens whose expiry passed before the cutoff. Tokens
// without an expiry are never counted.
func (p *PostgreSQLApiTokenRepository) CountExpired(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM api_tokens WHERE expires_at IS NOT NULL AND expires_at < $1`

	var count int64
	if err := querier.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired api tokens")
	}

	return count, nil
}

// DeleteExpired removes tokens whose expiry passed before the cutoff and
// returns the number of rows removed. Tokens without an expiry are never
// deleted.
func (p *PostgreSQLApiTokenRepository) DeleteExpired(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM api_tokens WHERE expires_at IS NOT NULL AND expires_at < $1`

	result, err := querier.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired api tokens")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get deleted api tokens count")
	}

	return deleted, nil
}

// NewPostgreSQLApiTokenRepository creates a new PostgreSQL ApiToken repository.
func NewPostgreSQLApiTokenRepository(db *sql.DB) *PostgreSQLApiTokenRepository {
	return &PostgreSQLApiTokenRepository{db: db}
}
