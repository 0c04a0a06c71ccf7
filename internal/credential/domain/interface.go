package domain

//go:generate mockgen -destination=../../mocks/mock_refresh_token_repository.go -package=mocks github.com/prasetyowira/credential-core/internal/credential/domain RefreshTokenRepository
//go:generate mockgen -destination=../../mocks/mock_verification_code_repository.go -package=mocks github.com/prasetyowira/credential-core/internal/credential/domain VerificationCodeRepository

import (
	"context"
	"time"
)

// RefreshTokenRepository persists rotation lineages. Get methods return
// (nil, nil) when no row matches.
type RefreshTokenRepository interface {
	Store(ctx context.Context, token *RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	// GetPredecessor returns the token whose replacement pointer names
	// tokenHash, i.e. the previous link in the lineage.
	GetPredecessor(ctx context.Context, tokenHash string) (*RefreshToken, error)
	// Rotate revokes the current record, sets its replacement pointer, and
	// inserts the replacement in one transaction. The revoke is conditional
	// on the record still being unrevoked; losing that race returns
	// ErrConflict and inserts nothing.
	Rotate(ctx context.Context, currentID string, replacement *RefreshToken) error
	Revoke(ctx context.Context, id string, at time.Time) error
	RevokeAllForUser(ctx context.Context, userID string, at time.Time) error
}

// VerificationCodeRepository persists single-use codes.
type VerificationCodeRepository interface {
	Store(ctx context.Context, code *VerificationCode) error
	GetByID(ctx context.Context, id string) (*VerificationCode, error)
	GetLatestByUserAndKind(ctx context.Context, userID string, kind CodeKind) (*VerificationCode, error)
	// MarkConsumed sets consumed-at conditionally on it being unset; losing
	// the race returns ErrConflict.
	MarkConsumed(ctx context.Context, id string, at time.Time) error
}
