package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasetyowira/credential-core/internal/audit/domain"
	repo "github.com/prasetyowira/credential-core/internal/audit/repository/postgres"
)

var securityEventColumns = []string{"id", "event_type", "user_id", "user_display_name", "tenant_id", "occurred_at", "ip_address", "user_agent", "description", "metadata"}

func sampleEvent() *domain.SecurityEvent {
	userID := "user-1"

	return &domain.SecurityEvent{
		ID:          "ev-1",
		Type:        domain.EventTypeLogin,
		UserID:      &userID,
		OccurredAt:  time.Now().UTC(),
		IPAddress:   "10.0.0.1",
		UserAgent:   "test-agent",
		Description: "user logged in",
		Metadata:    map[string]string{"channel": "web"},
	}
}

func TestSecurityEventRepository_Store(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewSecurityEventRepository(mock)
	e := sampleEvent()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO security_events").
			WithArgs(e.ID, string(e.Type), e.UserID, e.UserDisplayName, e.TenantID,
				e.OccurredAt, e.IPAddress, e.UserAgent, e.Description, e.Metadata).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, r.Store(context.Background(), e))
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO security_events").
			WithArgs(e.ID, string(e.Type), e.UserID, e.UserDisplayName, e.TenantID,
				e.OccurredAt, e.IPAddress, e.UserAgent, e.Description, e.Metadata).
			WillReturnError(fmt.Errorf("db error"))

		assert.Error(t, r.Store(context.Background(), e))
	})
}

func TestSecurityEventRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewSecurityEventRepository(mock)
	ctx := context.Background()
	e := sampleEvent()

	t.Run("unfiltered", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM security_events ORDER BY occurred_at DESC, id DESC").
			WithArgs(20).
			WillReturnRows(pgxmock.NewRows(securityEventColumns).
				AddRow(e.ID, string(e.Type), e.UserID, e.UserDisplayName, e.TenantID,
					e.OccurredAt, e.IPAddress, e.UserAgent, e.Description, e.Metadata))

		events, err := r.List(ctx, domain.Filter{Limit: 20})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, e.ID, events[0].ID)
		assert.Equal(t, domain.EventTypeLogin, events[0].Type)
		assert.Equal(t, "web", events[0].Metadata["channel"])
	})

	t.Run("filters and keyset cursor become conditions", func(t *testing.T) {
		beforeAt := e.OccurredAt
		mock.ExpectQuery(`SELECT (.+) FROM security_events WHERE user_id = \$1 AND event_type = \$2 AND \(occurred_at, id\) < \(\$3, \$4\)`).
			WithArgs("user-1", string(domain.EventTypeLogin), beforeAt, "ev-1", 20).
			WillReturnRows(pgxmock.NewRows(securityEventColumns))

		events, err := r.List(ctx, domain.Filter{
			UserID:   "user-1",
			Type:     domain.EventTypeLogin,
			BeforeAt: &beforeAt,
			BeforeID: "ev-1",
			Limit:    20,
		})
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM security_events").
			WithArgs(20).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.List(ctx, domain.Filter{Limit: 20})
		assert.Error(t, err)
	})
}
