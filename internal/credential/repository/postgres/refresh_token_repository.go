package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/prasetyowira/credential-core/internal/credential/domain"
	autherror "github.com/prasetyowira/credential-core/internal/errors"
)

type RefreshTokenRepository struct {
	db DB
}

func NewRefreshTokenRepository(db DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

const refreshTokenColumns = `id, user_id, token_hash, issued_at, expires_at, revoked_at, replaced_by_hash, ip_address, user_agent`

func (r *RefreshTokenRepository) Store(ctx context.Context, token *domain.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (id, user_id, token_hash, issued_at, expires_at, revoked_at, replaced_by_hash, ip_address, user_agent)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		token.ID, token.UserID, token.TokenHash, token.IssuedAt, token.ExpiresAt,
		token.RevokedAt, token.ReplacedByHash, token.IPAddress, token.UserAgent)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

func (r *RefreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	query := `SELECT ` + refreshTokenColumns + `
	          FROM refresh_tokens
	          WHERE token_hash = $1
	          LIMIT 1`

	return r.scanOne(r.db.QueryRow(ctx, query, tokenHash))
}

func (r *RefreshTokenRepository) GetPredecessor(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	query := `SELECT ` + refreshTokenColumns + `
	          FROM refresh_tokens
	          WHERE replaced_by_hash = $1
	          LIMIT 1`

	return r.scanOne(r.db.QueryRow(ctx, query, tokenHash))
}

// Rotate revokes the current record and inserts its replacement in a single
// transaction. The revoke is conditional on revoked_at still being NULL; when
// a concurrent rotation already claimed the record, nothing is written and
// ErrConflict is returned so the caller can reclassify the presented token.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, currentID string, replacement *domain.RefreshToken) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rotation: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `UPDATE refresh_tokens
	                          SET revoked_at = $1, replaced_by_hash = $2
	                          WHERE id = $3 AND revoked_at IS NULL`,
		replacement.IssuedAt, replacement.TokenHash, currentID)
	if err != nil {
		return fmt.Errorf("failed to revoke rotated token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrConflict
	}

	_, err = tx.Exec(ctx, `INSERT INTO refresh_tokens (id, user_id, token_hash, issued_at, expires_at, revoked_at, replaced_by_hash, ip_address, user_agent)
	                       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		replacement.ID, replacement.UserID, replacement.TokenHash, replacement.IssuedAt,
		replacement.ExpiresAt, replacement.RevokedAt, replacement.ReplacedByHash,
		replacement.IPAddress, replacement.UserAgent)
	if err != nil {
		return fmt.Errorf("failed to store replacement token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rotation: %w", err)
	}

	return nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	// No-op when already revoked; revocation is idempotent.
	_, err := r.db.Exec(ctx, `UPDATE refresh_tokens
	                          SET revoked_at = $1
	                          WHERE id = $2 AND revoked_at IS NULL`, at, id)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE refresh_tokens
	                          SET revoked_at = $1
	                          WHERE user_id = $2 AND revoked_at IS NULL`, at, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh tokens for user: %w", err)
	}

	return nil
}

func (r *RefreshTokenRepository) scanOne(row pgx.Row) (*domain.RefreshToken, error) {
	var token domain.RefreshToken
	err := row.Scan(&token.ID, &token.UserID, &token.TokenHash, &token.IssuedAt,
		&token.ExpiresAt, &token.RevokedAt, &token.ReplacedByHash,
		&token.IPAddress, &token.UserAgent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &token, nil
}
