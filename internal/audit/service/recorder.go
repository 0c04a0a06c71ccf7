package service

import (
	"context"
	"fmt"

	"github.com/prasetyowira/credential-core/internal/audit/domain"
	"github.com/prasetyowira/credential-core/internal/event"
)

// Recorder is the dispatcher handler that turns domain events into durable
// security events. It is idempotent enough for at-least-once delivery: a
// duplicate dispatch produces a duplicate audit row, never corrupted state.
type Recorder struct {
	publisher *Publisher
}

func NewRecorder(publisher *Publisher) *Recorder {
	return &Recorder{publisher: publisher}
}

// RegisterWith subscribes the recorder to every event kind it translates.
func (r *Recorder) RegisterWith(d *event.Dispatcher) {
	for _, kind := range []event.Kind{
		event.KindUserLoggedIn,
		event.KindUserLoggedOut,
		event.KindTwoFactorFailed,
		event.KindTokenReused,
		event.KindTokenRevoked,
		event.KindCodeConsumed,
	} {
		d.Register(kind, r)
	}
}

func (r *Recorder) Handle(ctx context.Context, e event.Event) error {
	draft, ok := r.translate(e)
	if !ok {
		return nil
	}

	_, err := r.publisher.Publish(ctx, draft)

	return err
}

func (r *Recorder) translate(e event.Event) (Draft, bool) {
	switch ev := e.(type) {
	case event.UserLoggedIn:
		return Draft{
			Type:        domain.EventTypeLogin,
			UserID:      &ev.UserID,
			IPAddress:   ev.IPAddress,
			UserAgent:   ev.UserAgent,
			Description: "user logged in",
		}, true
	case event.UserLoggedOut:
		return Draft{
			Type:        domain.EventTypeLogout,
			UserID:      &ev.UserID,
			IPAddress:   ev.IPAddress,
			UserAgent:   ev.UserAgent,
			Description: "user logged out",
		}, true
	case event.TwoFactorFailed:
		return Draft{
			Type:        domain.EventTypeTwoFactorFailed,
			UserID:      &ev.UserID,
			IPAddress:   ev.IPAddress,
			UserAgent:   ev.UserAgent,
			Description: "second factor verification failed",
			Metadata:    map[string]string{"reason": ev.Reason},
		}, true
	case event.TokenReused:
		return Draft{
			Type:        domain.EventTypeTokenReused,
			UserID:      &ev.UserID,
			IPAddress:   ev.IPAddress,
			UserAgent:   ev.UserAgent,
			Description: "rotated refresh token presented again, lineage revoked",
		}, true
	case event.TokenRevoked:
		return Draft{
			Type:        domain.EventTypeTokenRevoked,
			UserID:      optional(ev.UserID),
			Description: fmt.Sprintf("refresh token %s revoked", ev.RecordID),
		}, true
	case event.CodeConsumed:
		return Draft{
			Type:        domain.EventTypeCodeConsumed,
			UserID:      optional(ev.UserID),
			Description: "verification code consumed",
			Metadata:    map[string]string{"code_kind": ev.CodeKind},
		}, true
	default:
		return Draft{}, false
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
