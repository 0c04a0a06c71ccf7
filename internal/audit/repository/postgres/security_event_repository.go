package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/prasetyowira/credential-core/internal/audit/domain"
)

// DB is the subset of pgxpool.Pool this repository uses, so tests can
// substitute a pgxmock pool.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type SecurityEventRepository struct {
	db DB
}

func NewSecurityEventRepository(db DB) *SecurityEventRepository {
	return &SecurityEventRepository{db: db}
}

func (r *SecurityEventRepository) Store(ctx context.Context, e *domain.SecurityEvent) error {
	query := `INSERT INTO security_events (id, event_type, user_id, user_display_name, tenant_id, occurred_at, ip_address, user_agent, description, metadata)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		e.ID, string(e.Type), e.UserID, e.UserDisplayName, e.TenantID,
		e.OccurredAt, e.IPAddress, e.UserAgent, e.Description, e.Metadata)
	if err != nil {
		return fmt.Errorf("failed to store security event: %w", err)
	}

	return nil
}

// List returns events matching the filter, newest first, keyed on
// (occurred_at, id) so pages stay disjoint while new events are inserted.
func (r *SecurityEventRepository) List(ctx context.Context, f domain.Filter) ([]*domain.SecurityEvent, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.UserID != "" {
		conditions = append(conditions, "user_id = "+arg(f.UserID))
	}
	if f.TenantID != "" {
		conditions = append(conditions, "tenant_id = "+arg(f.TenantID))
	}
	if f.Type != "" {
		conditions = append(conditions, "event_type = "+arg(string(f.Type)))
	}
	if f.From != nil {
		conditions = append(conditions, "occurred_at >= "+arg(*f.From))
	}
	if f.To != nil {
		conditions = append(conditions, "occurred_at < "+arg(*f.To))
	}
	if f.BeforeAt != nil {
		conditions = append(conditions, "(occurred_at, id) < ("+arg(*f.BeforeAt)+", "+arg(f.BeforeID)+")")
	}

	query := `SELECT id, event_type, user_id, user_display_name, tenant_id, occurred_at, ip_address, user_agent, description, metadata
	          FROM security_events`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY occurred_at DESC, id DESC LIMIT " + arg(f.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list security events: %w", err)
	}
	defer rows.Close()

	var events []*domain.SecurityEvent
	for rows.Next() {
		var e domain.SecurityEvent
		var eventType string
		err := rows.Scan(&e.ID, &eventType, &e.UserID, &e.UserDisplayName, &e.TenantID,
			&e.OccurredAt, &e.IPAddress, &e.UserAgent, &e.Description, &e.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to scan security event: %w", err)
		}
		e.Type = domain.EventType(eventType)
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read security events: %w", err)
	}

	return events, nil
}
