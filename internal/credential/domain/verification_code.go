package domain

import "time"

// CodeKind is the purpose a verification code was issued for.
type CodeKind string

const (
	CodeKindRegistration   CodeKind = "registration"
	CodeKindPasswordReset  CodeKind = "password_reset"
	CodeKindTwoFactorSetup CodeKind = "two_factor_setup"
	CodeKindGeneric        CodeKind = "generic"
)

func (k CodeKind) Valid() bool {
	switch k {
	case CodeKindRegistration, CodeKindPasswordReset, CodeKindTwoFactorSetup, CodeKindGeneric:
		return true
	}
	return false
}

// VerificationCode stores the hash of a single-use code. Once consumed-at is
// set the record is permanently inert; expiry makes it inert without mutation.
type VerificationCode struct {
	ID         string
	UserID     string
	Kind       CodeKind
	CodeHash   string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

func (c *VerificationCode) IsConsumed() bool {
	return c.ConsumedAt != nil
}

func (c *VerificationCode) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// ConsumeResult classifies a verification attempt.
type ConsumeResult int

const (
	ConsumeNotFound ConsumeResult = iota
	ConsumeSuccess
	ConsumeExpired
	ConsumeAlreadyConsumed
	ConsumeMismatch
)

func (r ConsumeResult) String() string {
	switch r {
	case ConsumeSuccess:
		return "success"
	case ConsumeExpired:
		return "expired"
	case ConsumeAlreadyConsumed:
		return "already_consumed"
	case ConsumeMismatch:
		return "mismatch"
	default:
		return "not_found"
	}
}
