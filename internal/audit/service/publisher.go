package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prasetyowira/credential-core/internal/audit/domain"
	"github.com/prasetyowira/credential-core/internal/audit/dto"
)

// Draft is what a caller supplies to Publish. Identity and occurred-at are
// assigned by the publisher, never taken from the caller.
type Draft struct {
	Type            domain.EventType
	UserID          *string
	UserDisplayName *string
	TenantID        *string
	IPAddress       string
	UserAgent       string
	Description     string
	Metadata        map[string]string
}

type Publisher struct {
	repo   domain.SecurityEventRepository
	hub    *Hub
	logger *zap.Logger

	mu   sync.Mutex
	last time.Time
}

func NewPublisher(repo domain.SecurityEventRepository, hub *Hub, logger *zap.Logger) *Publisher {
	return &Publisher{repo: repo, hub: hub, logger: logger}
}

// Publish persists the event and forwards it to live subscribers.
// Persistence failure is returned to the caller; forwarding is best-effort
// and never fails a publish. Audit durability is mandatory, observers are
// optional.
func (p *Publisher) Publish(ctx context.Context, draft Draft) (*domain.SecurityEvent, error) {
	if draft.Metadata == nil {
		draft.Metadata = map[string]string{}
	}

	e := &domain.SecurityEvent{
		ID:              uuid.NewString(),
		Type:            draft.Type,
		UserID:          draft.UserID,
		UserDisplayName: draft.UserDisplayName,
		TenantID:        draft.TenantID,
		OccurredAt:      p.nextOccurredAt(),
		IPAddress:       draft.IPAddress,
		UserAgent:       draft.UserAgent,
		Description:     draft.Description,
		Metadata:        draft.Metadata,
	}

	if err := p.repo.Store(ctx, e); err != nil {
		return nil, err
	}

	p.logger.Debug("security event recorded",
		zap.String("event_id", e.ID),
		zap.String("event_type", string(e.Type)))

	p.hub.Broadcast(toOutput(e))

	return e, nil
}

// nextOccurredAt assigns acceptance time, nudged forward by a microsecond
// (the timestamptz resolution) when the wall clock has not advanced, so
// events from this publisher instance are strictly ordered.
func (p *Publisher) nextOccurredAt() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Microsecond)
	if !now.After(p.last) {
		now = p.last.Add(time.Microsecond)
	}
	p.last = now

	return now
}

func toOutput(e *domain.SecurityEvent) dto.SecurityEventOutput {
	return dto.SecurityEventOutput{
		ID:              e.ID,
		Type:            string(e.Type),
		UserID:          e.UserID,
		UserDisplayName: e.UserDisplayName,
		TenantID:        e.TenantID,
		OccurredAt:      e.OccurredAt,
		IPAddress:       e.IPAddress,
		UserAgent:       e.UserAgent,
		Description:     e.Description,
		Metadata:        e.Metadata,
	}
}
