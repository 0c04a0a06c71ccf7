package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prasetyowira/credential-core/internal/audit/domain"
	"github.com/prasetyowira/credential-core/internal/audit/service"
	"github.com/prasetyowira/credential-core/internal/event"
	"github.com/prasetyowira/credential-core/internal/mocks"
)

// The recorder is what links the domain-event pipeline to the audit trail:
// dispatching a committed event must land a persisted security event.
func TestRecorder_TranslatesDomainEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSecurityEventRepository(ctrl)
	publisher := service.NewPublisher(mockRepo, service.NewHub(zap.NewNop()), zap.NewNop())

	dispatcher := event.NewDispatcher(zap.NewNop())
	service.NewRecorder(publisher).RegisterWith(dispatcher)

	var stored []*domain.SecurityEvent
	mockRepo.EXPECT().Store(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.SecurityEvent) error {
			stored = append(stored, e)
			return nil
		}).Times(3)

	dispatcher.Dispatch(context.Background(), []event.Event{
		event.UserLoggedIn{Base: event.Base{At: time.Now()}, UserID: "user-1", IPAddress: "10.0.0.1"},
		event.TwoFactorFailed{Base: event.Base{At: time.Now()}, UserID: "user-1", Reason: "code mismatch"},
		event.TokenReused{Base: event.Base{At: time.Now()}, UserID: "user-1"},
	})

	require.Len(t, stored, 3)
	assert.Equal(t, domain.EventTypeLogin, stored[0].Type)
	assert.Equal(t, "10.0.0.1", stored[0].IPAddress)
	assert.Equal(t, domain.EventTypeTwoFactorFailed, stored[1].Type)
	assert.Equal(t, "code mismatch", stored[1].Metadata["reason"])
	assert.Equal(t, domain.EventTypeTokenReused, stored[2].Type)

	for _, e := range stored {
		require.NotNil(t, e.UserID)
		assert.Equal(t, "user-1", *e.UserID)
	}
}

func TestRecorder_AnonymousRevocationOmitsUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockSecurityEventRepository(ctrl)
	publisher := service.NewPublisher(mockRepo, service.NewHub(zap.NewNop()), zap.NewNop())
	recorder := service.NewRecorder(publisher)

	var stored *domain.SecurityEvent
	mockRepo.EXPECT().Store(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.SecurityEvent) error {
			stored = e
			return nil
		})

	err := recorder.Handle(context.Background(), event.TokenRevoked{RecordID: "rt-1"})
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, domain.EventTypeTokenRevoked, stored.Type)
	assert.Nil(t, stored.UserID)
	assert.Contains(t, stored.Description, "rt-1")
}
