package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasetyowira/credential-core/internal/audit/domain"
	"github.com/prasetyowira/credential-core/internal/audit/dto"
	"github.com/prasetyowira/credential-core/internal/audit/service"
	autherror "github.com/prasetyowira/credential-core/internal/errors"
	"github.com/prasetyowira/credential-core/internal/mocks"
)

const testPageSizeCap = 100

func newReader(t *testing.T) (*service.Reader, *mocks.MockSecurityEventRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockSecurityEventRepository(ctrl)

	return service.NewReader(mockRepo, testPageSizeCap), mockRepo
}

func eventAt(id string, at time.Time) *domain.SecurityEvent {
	return &domain.SecurityEvent{ID: id, Type: domain.EventTypeLogin, OccurredAt: at}
}

func TestReader_Read_SinglePage(t *testing.T) {
	reader, mockRepo := newReader(t)

	now := time.Now().UTC()
	events := []*domain.SecurityEvent{
		eventAt("ev-3", now),
		eventAt("ev-2", now.Add(-time.Minute)),
	}

	// The reader over-fetches by one row to learn whether a next page exists.
	mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f domain.Filter) ([]*domain.SecurityEvent, error) {
			assert.Equal(t, 11, f.Limit)
			assert.Nil(t, f.BeforeAt)
			return events, nil
		})

	page, err := reader.Read(context.Background(), dto.ListInput{PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page.Events, 2)
	assert.Empty(t, page.NextPageToken, "no next page when the overfetch row is absent")
}

func TestReader_Read_PagesAreKeysetChained(t *testing.T) {
	reader, mockRepo := newReader(t)

	now := time.Now().UTC()
	first := []*domain.SecurityEvent{
		eventAt("ev-5", now),
		eventAt("ev-4", now.Add(-1*time.Minute)),
		eventAt("ev-3", now.Add(-2*time.Minute)), // overfetch row
	}

	mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(first, nil)

	page1, err := reader.Read(context.Background(), dto.ListInput{PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page1.Events, 2)
	require.NotEmpty(t, page1.NextPageToken)

	// The second fetch must be keyed strictly before the last returned row,
	// so rows inserted after page one never shift this page.
	mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f domain.Filter) ([]*domain.SecurityEvent, error) {
			require.NotNil(t, f.BeforeAt)
			assert.Equal(t, now.Add(-1*time.Minute).Format(time.RFC3339Nano), f.BeforeAt.Format(time.RFC3339Nano))
			assert.Equal(t, "ev-4", f.BeforeID)
			return []*domain.SecurityEvent{eventAt("ev-3", now.Add(-2 * time.Minute))}, nil
		})

	page2, err := reader.Read(context.Background(), dto.ListInput{PageSize: 2, PageToken: page1.NextPageToken})
	require.NoError(t, err)
	require.Len(t, page2.Events, 1)
	assert.Equal(t, "ev-3", page2.Events[0].ID)
	assert.Empty(t, page2.NextPageToken)

	// Pages are disjoint.
	seen := map[string]bool{}
	for _, e := range append(page1.Events, page2.Events...) {
		assert.False(t, seen[e.ID], "event %s appeared on two pages", e.ID)
		seen[e.ID] = true
	}
}

func TestReader_Read_FiltersPassThrough(t *testing.T) {
	reader, mockRepo := newReader(t)

	from := time.Now().UTC().Add(-time.Hour)
	to := time.Now().UTC()

	mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f domain.Filter) ([]*domain.SecurityEvent, error) {
			assert.Equal(t, "user-1", f.UserID)
			assert.Equal(t, "tenant-1", f.TenantID)
			assert.Equal(t, domain.EventTypeTokenReused, f.Type)
			assert.Equal(t, &from, f.From)
			assert.Equal(t, &to, f.To)
			return nil, nil
		})

	_, err := reader.Read(context.Background(), dto.ListInput{
		UserID:   "user-1",
		TenantID: "tenant-1",
		Type:     string(domain.EventTypeTokenReused),
		From:     &from,
		To:       &to,
	})
	require.NoError(t, err)
}

func TestReader_Read_PageSizeCapApplies(t *testing.T) {
	reader, mockRepo := newReader(t)

	mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f domain.Filter) ([]*domain.SecurityEvent, error) {
			assert.Equal(t, testPageSizeCap+1, f.Limit)
			return nil, nil
		})

	_, err := reader.Read(context.Background(), dto.ListInput{PageSize: 10_000})
	require.NoError(t, err)
}

func TestReader_Read_NonPositiveCapFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockSecurityEventRepository(ctrl)
	reader := service.NewReader(mockRepo, 0)

	now := time.Now().UTC()
	mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f domain.Filter) ([]*domain.SecurityEvent, error) {
			assert.Greater(t, f.Limit, 1, "a zero cap must not clamp pages to nothing")
			return []*domain.SecurityEvent{eventAt("ev-1", now)}, nil
		})

	page, err := reader.Read(context.Background(), dto.ListInput{PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.Equal(t, "ev-1", page.Events[0].ID)
}

func TestReader_Read_BadPageToken(t *testing.T) {
	reader, _ := newReader(t)

	_, err := reader.Read(context.Background(), dto.ListInput{PageToken: "!!not-base64!!"})
	assert.ErrorIs(t, err, autherror.ErrInvalidPageToken)
}
