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

// MySQLApiTokenRepository implements ApiToken persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLApiTokenRepository struct {
	db *sql.DB
}

// Create inserts a new ApiToken into the MySQL database using BINARY(16) for
// UUIDs. Returns an error if UUID marshaling or database insertion fails.
func (m *MySQLApiTokenRepository) Create(ctx context.Context, token *authDomain.ApiToken) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO api_tokens (id, user_id, token_hash, name, prefix, created_at, last_used_at, expires_at, revoked)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal api token id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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

// GetByID retrieves an ApiToken by ID from the MySQL database using BINARY(16)
// for UUIDs. Returns ErrApiTokenNotFound if the token doesn't exist, or an
// error if UUID unmarshaling or database query fails.
func (m *MySQLApiTokenRepository) GetByID(
	ctx context.Context,
	tokenID uuid.UUID,
) (*authDomain.ApiToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, token_hash, name, prefix, created_at, last_used_at, expires_at, revoked
			  FROM api_tokens WHERE id = ?`

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal api token id")
	}

	var token authDomain.ApiToken
	var idBytes []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
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

	if err := token.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal api token id")
	}

	return &token, nil
}

// GetByTokenHash retrieves an ApiToken by its SHA-256 hash from the MySQL
// database. The hash is the only stored form of the credential, so this is the
// authentication lookup. Returns ErrApiTokenNotFound if no token matches, or
// an error if UUID unmarshaling or database query fails.
func (m *MySQLApiTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.ApiToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, token_hash, name, prefix, created_at, last_used_at, expires_at, revoked
			  FROM api_tokens WHERE token_hash = ?`

	var token authDomain.ApiToken
	var idBytes []byte

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&idBytes,
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

	if err := token.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal api token id")
	}

	return &token, nil
}

// ListByUserID retrieves all tokens owned by a user ordered by ID descending
// (newest first, since UUIDv7 bytes sort chronologically). Returns empty slice
// if the user has no tokens.
func (m *MySQLApiTokenRepository) ListByUserID(
	ctx context.Context,
	userID string,
) ([]*authDomain.ApiToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, token_hash, name, prefix, created_at, last_used_at, expires_at, revoked
			  FROM api_tokens
			  WHERE user_id = ?
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
		var idBytes []byte

		err := rows.Scan(
			&idBytes,
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

		if err := token.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal api token id")
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
func (m *MySQLApiTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE api_tokens SET revoked = TRUE WHERE id = ?`

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal api token id")
	}

	_, err = querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke api token")
	}

	return nil
}

// TouchLastUsed records when a token last authenticated a request.
func (m *MySQLApiTokenRepository) TouchLastUsed(
	ctx context.Context,
	tokenID uuid.UUID,
	usedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE api_tokens SET last_used_at = ? WHERE id = ?`

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal api token id")
	}

	_, err = querier.ExecContext(ctx, query, usedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to touch api token")
	}

	return nil
}

// CountExpired counts tokens whose expiry passed before the cutoff. Tokens
// without an expiry are never counted.
func (m *MySQLApiTokenRepository) CountExpired(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM api_tokens WHERE expires_at IS NOT NULL AND expires_at < ?`

	var count int64
	if err := querier.QueryRowContext(ctx, query, cutoff).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired api tokens")
	}

	return count, nil
}

// DeleteExpired removes tokens whose expiry passed before the cutoff and
// returns the number of rows removed. Tokens without an expiry are never
// deleted.
func (m *MySQLApiTokenRepository) DeleteExpired(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM api_tokens WHERE expires_at IS NOT NULL AND expires_at < ?`

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

// NewMySQLApiTokenRepository creates a new MySQL ApiToken repository.
func NewMySQLApiTokenRepository(db *sql.DB) *MySQLApiTokenRepository {
	return &MySQLApiTokenRepository{db: db}
}
