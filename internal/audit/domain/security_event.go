package domain

import "time"

// EventType labels a persisted security event.
type EventType string

const (
	EventTypeLogin           EventType = "login"
	EventTypeLogout          EventType = "logout"
	EventTypeTwoFactorFailed EventType = "twofactor_failed"
	EventTypeTokenReused     EventType = "token_reused"
	EventTypeTokenRevoked    EventType = "token_revoked"
	EventTypeCodeConsumed    EventType = "code_consumed"
)

// SecurityEvent is the durable audit record. It is immutable once persisted;
// OccurredAt is assigned by the publisher at acceptance, never by the caller,
// so events from a single publisher instance are strictly ordered.
type SecurityEvent struct {
	ID              string
	Type            EventType
	UserID          *string
	UserDisplayName *string
	TenantID        *string
	OccurredAt      time.Time
	IPAddress       string
	UserAgent       string
	Description     string
	Metadata        map[string]string
}
