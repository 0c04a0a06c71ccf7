package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prasetyowira/credential-core/internal/credential/domain"
	autherror "github.com/prasetyowira/credential-core/internal/errors"
)

const numericCodeDigits = 6

// CodeTTLs configures the validity window per code kind.
type CodeTTLs struct {
	Registration   time.Duration
	PasswordReset  time.Duration
	TwoFactorSetup time.Duration
	Generic        time.Duration
}

func (t CodeTTLs) For(kind domain.CodeKind) time.Duration {
	switch kind {
	case domain.CodeKindRegistration:
		return t.Registration
	case domain.CodeKindPasswordReset:
		return t.PasswordReset
	case domain.CodeKindTwoFactorSetup:
		return t.TwoFactorSetup
	default:
		return t.Generic
	}
}

type VerificationCodeLedger struct {
	repo   domain.VerificationCodeRepository
	ttls   CodeTTLs
	logger *zap.Logger
}

func NewVerificationCodeLedger(repo domain.VerificationCodeRepository, ttls CodeTTLs, logger *zap.Logger) *VerificationCodeLedger {
	return &VerificationCodeLedger{repo: repo, ttls: ttls, logger: logger}
}

// Issue generates a code for the given purpose and returns the plaintext
// exactly once. Two-factor setup codes are short and numeric so they survive
// SMS entry; everything else gets an opaque link-style token.
func (l *VerificationCodeLedger) Issue(ctx context.Context, userID string, kind domain.CodeKind) (string, *domain.VerificationCode, error) {
	if userID == "" || !kind.Valid() {
		return "", nil, autherror.ErrInvalidInput
	}

	var plaintext string
	var err error
	if kind == domain.CodeKindTwoFactorSetup {
		plaintext, err = domain.NewNumericCode(numericCodeDigits)
	} else {
		plaintext, err = domain.NewSecret()
	}
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	record := &domain.VerificationCode{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      kind,
		CodeHash:  domain.HashSecret(plaintext),
		ExpiresAt: now.Add(l.ttls.For(kind)),
		CreatedAt: now,
	}

	if err := l.repo.Store(ctx, record); err != nil {
		return "", nil, err
	}

	l.logger.Debug("verification code issued",
		zap.String("record_id", record.ID),
		zap.String("kind", string(kind)))

	return plaintext, record, nil
}

// ConsumeOutcome pairs the classification with the record it was made
// against, so callers can act on the record's kind and owner no matter which
// lookup path found it. Record is nil only for NotFound.
type ConsumeOutcome struct {
	Result domain.ConsumeResult
	Record *domain.VerificationCode
}

// Consume verifies the supplied code against the most recent code of the
// given kind. An expired or already-consumed record never reports Success,
// even on a matching hash; the consumed-at flip is a single conditional
// update so concurrent attempts have exactly one winner.
func (l *VerificationCodeLedger) Consume(ctx context.Context, userID string, kind domain.CodeKind, supplied string) (*ConsumeOutcome, error) {
	if userID == "" || !kind.Valid() || supplied == "" {
		return nil, autherror.ErrInvalidInput
	}

	record, err := l.repo.GetLatestByUserAndKind(ctx, userID, kind)
	if err != nil {
		return nil, err
	}

	return l.consume(ctx, record, supplied)
}

// ConsumeByID is the variant for flows that kept the record id from Issue.
func (l *VerificationCodeLedger) ConsumeByID(ctx context.Context, recordID, supplied string) (*ConsumeOutcome, error) {
	if recordID == "" || supplied == "" {
		return nil, autherror.ErrInvalidInput
	}

	record, err := l.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	return l.consume(ctx, record, supplied)
}

func (l *VerificationCodeLedger) consume(ctx context.Context, record *domain.VerificationCode, supplied string) (*ConsumeOutcome, error) {
	if record == nil {
		return &ConsumeOutcome{Result: domain.ConsumeNotFound}, nil
	}

	outcome := &ConsumeOutcome{Record: record}

	if record.IsConsumed() {
		outcome.Result = domain.ConsumeAlreadyConsumed
		return outcome, nil
	}

	if record.IsExpired(time.Now().UTC()) {
		outcome.Result = domain.ConsumeExpired
		return outcome, nil
	}

	if !domain.SecretMatches(record.CodeHash, supplied) {
		outcome.Result = domain.ConsumeMismatch
		return outcome, nil
	}

	err := l.repo.MarkConsumed(ctx, record.ID, time.Now().UTC())
	if errors.Is(err, autherror.ErrConflict) {
		// A concurrent attempt with the same code won the conditional update.
		outcome.Result = domain.ConsumeAlreadyConsumed
		return outcome, nil
	}
	if err != nil {
		return nil, err
	}

	outcome.Result = domain.ConsumeSuccess

	return outcome, nil
}
