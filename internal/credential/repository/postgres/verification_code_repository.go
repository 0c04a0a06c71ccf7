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

type VerificationCodeRepository struct {
	db DB
}

func NewVerificationCodeRepository(db DB) *VerificationCodeRepository {
	return &VerificationCodeRepository{db: db}
}

const verificationCodeColumns = `id, user_id, kind, code_hash, expires_at, consumed_at, created_at`

func (r *VerificationCodeRepository) Store(ctx context.Context, code *domain.VerificationCode) error {
	query := `INSERT INTO verification_codes (id, user_id, kind, code_hash, expires_at, consumed_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		code.ID, code.UserID, string(code.Kind), code.CodeHash,
		code.ExpiresAt, code.ConsumedAt, code.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	return nil
}

func (r *VerificationCodeRepository) GetByID(ctx context.Context, id string) (*domain.VerificationCode, error) {
	query := `SELECT ` + verificationCodeColumns + `
	          FROM verification_codes
	          WHERE id = $1
	          LIMIT 1`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *VerificationCodeRepository) GetLatestByUserAndKind(ctx context.Context, userID string, kind domain.CodeKind) (*domain.VerificationCode, error) {
	query := `SELECT ` + verificationCodeColumns + `
	          FROM verification_codes
	          WHERE user_id = $1 AND kind = $2
	          ORDER BY created_at DESC
	          LIMIT 1`

	return r.scanOne(r.db.QueryRow(ctx, query, userID, string(kind)))
}

// MarkConsumed sets consumed-at with a single conditional update. Two
// concurrent verification attempts can both read an unconsumed record; only
// the one whose update matches the NULL consumed_at wins, the other gets
// ErrConflict.
func (r *VerificationCodeRepository) MarkConsumed(ctx context.Context, id string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE verification_codes
	                            SET consumed_at = $1
	                            WHERE id = $2 AND consumed_at IS NULL`, at, id)
	if err != nil {
		return fmt.Errorf("failed to mark verification code consumed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrConflict
	}

	return nil
}

func (r *VerificationCodeRepository) scanOne(row pgx.Row) (*domain.VerificationCode, error) {
	var code domain.VerificationCode
	var kind string
	err := row.Scan(&code.ID, &code.UserID, &kind, &code.CodeHash,
		&code.ExpiresAt, &code.ConsumedAt, &code.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get verification code: %w", err)
	}
	code.Kind = domain.CodeKind(kind)

	return &code, nil
}
