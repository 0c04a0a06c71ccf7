package domain

import "time"

// RefreshToken is one link in a rotation lineage. Only the hash of the issued
// secret is ever stored; the plaintext leaves the ledger exactly once, at
// issuance. Records are never deleted, only revoked, so that a rotated token
// presented again can be recognised as reuse.
type RefreshToken struct {
	ID             string
	UserID         string
	TokenHash      string
	IssuedAt       time.Time
	ExpiresAt      time.Time
	RevokedAt      *time.Time
	ReplacedByHash *string
	IPAddress      string
	UserAgent      string
}

func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.IsRevoked() && !t.IsExpired(now)
}

// WasReplaced reports whether this token was superseded by rotation, as
// opposed to being revoked outright.
func (t *RefreshToken) WasReplaced() bool {
	return t.ReplacedByHash != nil
}

// RotateResult classifies the outcome of presenting a token for rotation.
type RotateResult int

const (
	RotateInvalid RotateResult = iota
	RotateRotated
	RotateReused
	RotateExpiredOrRevoked
)

func (r RotateResult) String() string {
	switch r {
	case RotateRotated:
		return "rotated"
	case RotateReused:
		return "reused"
	case RotateExpiredOrRevoked:
		return "expired_or_revoked"
	default:
		return "invalid"
	}
}
