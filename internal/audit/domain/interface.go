package domain

//go:generate mockgen -destination=../../mocks/mock_security_event_repository.go -package=mocks github.com/prasetyowira/credential-core/internal/audit/domain SecurityEventRepository

import (
	"context"
	"time"
)

// Filter narrows a security event listing. Cursor fields implement keyset
// pagination on (occurred_at, id) descending; offset paging would skip or
// duplicate rows as new events arrive.
type Filter struct {
	UserID   string
	TenantID string
	Type     EventType
	From     *time.Time
	To       *time.Time

	BeforeAt *time.Time
	BeforeID string
	Limit    int
}

type SecurityEventRepository interface {
	Store(ctx context.Context, e *SecurityEvent) error
	List(ctx context.Context, f Filter) ([]*SecurityEvent, error)
}
