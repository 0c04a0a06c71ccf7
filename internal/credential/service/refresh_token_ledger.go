package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prasetyowira/credential-core/internal/credential/domain"
	"github.com/prasetyowira/credential-core/internal/credential/dto"
	autherror "github.com/prasetyowira/credential-core/internal/errors"
)

// RotateOutcome is the caller-facing classification of a rotation attempt.
// Reused is the theft signal: the presented token was already superseded, so
// the whole lineage has been revoked and UserID identifies whose sessions
// were killed.
type RotateOutcome struct {
	Result domain.RotateResult
	Tokens *dto.TokenPairOutput
	Record *domain.RefreshToken
	UserID string
}

type RefreshTokenLedger struct {
	repo         domain.RefreshTokenRepository
	signer       AccessTokenSigner
	ttl          time.Duration
	maxWalkDepth int
	logger       *zap.Logger
}

func NewRefreshTokenLedger(repo domain.RefreshTokenRepository, signer AccessTokenSigner,
	ttlMinutes, maxWalkDepth int, logger *zap.Logger) *RefreshTokenLedger {
	return &RefreshTokenLedger{
		repo:         repo,
		signer:       signer,
		ttl:          time.Duration(ttlMinutes) * time.Minute,
		maxWalkDepth: maxWalkDepth,
		logger:       logger,
	}
}

// Issue mints a refresh token for an already-authenticated user. The
// plaintext is returned exactly once; only its hash is stored.
func (l *RefreshTokenLedger) Issue(ctx context.Context, input dto.IssueTokenInput) (*dto.TokenPairOutput, *domain.RefreshToken, error) {
	if input.UserID == "" {
		return nil, nil, autherror.ErrInvalidInput
	}

	plaintext, err := domain.NewSecret()
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	record := &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		TokenHash: domain.HashSecret(plaintext),
		IssuedAt:  now,
		ExpiresAt: now.Add(l.ttl),
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	}

	if err := l.repo.Store(ctx, record); err != nil {
		return nil, nil, err
	}

	accessToken, accessExpiresAt, err := l.signer.Sign(input.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &dto.TokenPairOutput{
		AccessToken:      accessToken,
		RefreshToken:     plaintext,
		AccessExpiresAt:  accessExpiresAt,
		RefreshExpiresAt: record.ExpiresAt,
	}, record, nil
}

// Rotate exchanges a presented refresh token for a fresh pair. Classification
// order: unknown hash, reuse of a superseded token, expired or revoked, then
// the conditional rotation itself. A reused token revokes its entire lineage.
func (l *RefreshTokenLedger) Rotate(ctx context.Context, input dto.RotateTokenInput) (*RotateOutcome, error) {
	if input.RefreshToken == "" {
		return &RotateOutcome{Result: domain.RotateInvalid}, nil
	}

	record, err := l.repo.GetByTokenHash(ctx, domain.HashSecret(input.RefreshToken))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return &RotateOutcome{Result: domain.RotateInvalid}, nil
	}

	if record.IsRevoked() {
		if record.WasReplaced() {
			return l.handleReuse(ctx, record)
		}

		return &RotateOutcome{Result: domain.RotateExpiredOrRevoked, UserID: record.UserID}, nil
	}

	if record.IsExpired(time.Now().UTC()) {
		return &RotateOutcome{Result: domain.RotateExpiredOrRevoked, UserID: record.UserID}, nil
	}

	plaintext, err := domain.NewSecret()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	replacement := &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    record.UserID,
		TokenHash: domain.HashSecret(plaintext),
		IssuedAt:  now,
		ExpiresAt: now.Add(l.ttl),
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
	}

	err = l.repo.Rotate(ctx, record.ID, replacement)
	if errors.Is(err, autherror.ErrConflict) {
		// Lost the race. Re-read to see what the winner did to this record.
		return l.reclassify(ctx, record.TokenHash)
	}
	if err != nil {
		return nil, err
	}

	accessToken, accessExpiresAt, err := l.signer.Sign(record.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &RotateOutcome{
		Result: domain.RotateRotated,
		Tokens: &dto.TokenPairOutput{
			AccessToken:      accessToken,
			RefreshToken:     plaintext,
			AccessExpiresAt:  accessExpiresAt,
			RefreshExpiresAt: replacement.ExpiresAt,
		},
		Record: replacement,
		UserID: record.UserID,
	}, nil
}

func (l *RefreshTokenLedger) Revoke(ctx context.Context, recordID string) error {
	if recordID == "" {
		return autherror.ErrInvalidInput
	}

	return l.repo.Revoke(ctx, recordID, time.Now().UTC())
}

func (l *RefreshTokenLedger) RevokeAllForUser(ctx context.Context, userID string) error {
	if userID == "" {
		return autherror.ErrInvalidInput
	}

	return l.repo.RevokeAllForUser(ctx, userID, time.Now().UTC())
}

func (l *RefreshTokenLedger) handleReuse(ctx context.Context, record *domain.RefreshToken) (*RotateOutcome, error) {
	l.logger.Warn("refresh token reuse detected, revoking lineage",
		zap.String("record_id", record.ID),
		zap.String("user_id", record.UserID))

	if err := l.revokeLineage(ctx, record); err != nil {
		return nil, err
	}

	return &RotateOutcome{Result: domain.RotateReused, UserID: record.UserID}, nil
}

// revokeLineage walks the replacement chain in both directions from the
// reused record and revokes every link. The walk is depth-capped so a
// corrupted chain forming a cycle surfaces as ErrLineageCorrupted instead of
// looping forever.
func (l *RefreshTokenLedger) revokeLineage(ctx context.Context, start *domain.RefreshToken) error {
	now := time.Now().UTC()

	current := start
	for depth := 0; current != nil; depth++ {
		if depth >= l.maxWalkDepth {
			return autherror.ErrLineageCorrupted
		}

		if err := l.repo.Revoke(ctx, current.ID, now); err != nil {
			return err
		}

		if current.ReplacedByHash == nil {
			break
		}

		next, err := l.repo.GetByTokenHash(ctx, *current.ReplacedByHash)
		if err != nil {
			return err
		}
		current = next
	}

	current = start
	for depth := 0; ; depth++ {
		if depth >= l.maxWalkDepth {
			return autherror.ErrLineageCorrupted
		}

		prev, err := l.repo.GetPredecessor(ctx, current.TokenHash)
		if err != nil {
			return err
		}
		if prev == nil {
			break
		}

		if err := l.repo.Revoke(ctx, prev.ID, now); err != nil {
			return err
		}
		current = prev
	}

	return nil
}

// reclassify runs after losing the conditional rotation: by the time we
// re-read, the winner has already revoked and replaced the record. Treating
// our own lost race as theft would revoke the winner's fresh token, so the
// loser simply observes post-rotation state. A genuinely stolen token
// presented later never takes this path; it reads the revoked record up front
// and lands in handleReuse.
func (l *RefreshTokenLedger) reclassify(ctx context.Context, tokenHash string) (*RotateOutcome, error) {
	record, err := l.repo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return &RotateOutcome{Result: domain.RotateInvalid}, nil
	}

	return &RotateOutcome{Result: domain.RotateExpiredOrRevoked, UserID: record.UserID}, nil
}
