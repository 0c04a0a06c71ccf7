package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prasetyowira/credential-core/internal/credential/domain"
	"github.com/prasetyowira/credential-core/internal/credential/dto"
	"github.com/prasetyowira/credential-core/internal/credential/service"
	autherror "github.com/prasetyowira/credential-core/internal/errors"
	"github.com/prasetyowira/credential-core/internal/mocks"
)

const (
	testTTLMinutes   = 60
	testMaxWalkDepth = 8
)

func newLedger(t *testing.T) (*service.RefreshTokenLedger, *mocks.MockRefreshTokenRepository, *mocks.MockAccessTokenSigner) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockRefreshTokenRepository(ctrl)
	mockSigner := mocks.NewMockAccessTokenSigner(ctrl)
	ledger := service.NewRefreshTokenLedger(mockRepo, mockSigner, testTTLMinutes, testMaxWalkDepth, zap.NewNop())

	return ledger, mockRepo, mockSigner
}

func activeToken(plaintext, userID string) *domain.RefreshToken {
	now := time.Now().UTC()

	return &domain.RefreshToken{
		ID:        "rt-1",
		UserID:    userID,
		TokenHash: domain.HashSecret(plaintext),
		IssuedAt:  now.Add(-time.Minute),
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestRefreshTokenLedger_Issue(t *testing.T) {
	ledger, mockRepo, mockSigner := newLedger(t)
	ctx := context.Background()

	var stored *domain.RefreshToken
	mockRepo.EXPECT().Store(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rt *domain.RefreshToken) error {
			stored = rt
			return nil
		})
	mockSigner.EXPECT().Sign("user-1").Return("access-jwt", time.Now().Add(15*time.Minute), nil)

	pair, record, err := ledger.Issue(ctx, dto.IssueTokenInput{
		UserID:    "user-1",
		IPAddress: "10.0.0.1",
		UserAgent: "test-agent",
	})

	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, "access-jwt", pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// Only the hash is stored, and it matches the returned plaintext.
	require.NotNil(t, stored)
	assert.Equal(t, record, stored)
	assert.NotEqual(t, pair.RefreshToken, stored.TokenHash)
	assert.Equal(t, domain.HashSecret(pair.RefreshToken), stored.TokenHash)
	assert.Nil(t, stored.RevokedAt)
	assert.Nil(t, stored.ReplacedByHash)
	assert.Equal(t, "10.0.0.1", stored.IPAddress)
}

func TestRefreshTokenLedger_Issue_EmptyUserID(t *testing.T) {
	ledger, _, _ := newLedger(t)

	_, _, err := ledger.Issue(context.Background(), dto.IssueTokenInput{})
	assert.ErrorIs(t, err, autherror.ErrInvalidInput)
}

func TestRefreshTokenLedger_Rotate_Success(t *testing.T) {
	ledger, mockRepo, mockSigner := newLedger(t)
	ctx := context.Background()

	current := activeToken("old-plaintext", "user-1")

	var replacement *domain.RefreshToken
	mockRepo.EXPECT().GetByTokenHash(gomock.Any(), current.TokenHash).Return(current, nil)
	mockRepo.EXPECT().Rotate(gomock.Any(), current.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, r *domain.RefreshToken) error {
			replacement = r
			return nil
		})
	mockSigner.EXPECT().Sign("user-1").Return("access-jwt", time.Now().Add(15*time.Minute), nil)

	outcome, err := ledger.Rotate(ctx, dto.RotateTokenInput{RefreshToken: "old-plaintext"})

	require.NoError(t, err)
	assert.Equal(t, domain.RotateRotated, outcome.Result)
	require.NotNil(t, outcome.Tokens)
	assert.NotEqual(t, "old-plaintext", outcome.Tokens.RefreshToken)

	require.NotNil(t, replacement)
	assert.Equal(t, "user-1", replacement.UserID)
	assert.Equal(t, domain.HashSecret(outcome.Tokens.RefreshToken), replacement.TokenHash)
}

func TestRefreshTokenLedger_Rotate_UnknownToken(t *testing.T) {
	ledger, mockRepo, _ := newLedger(t)

	mockRepo.EXPECT().GetByTokenHash(gomock.Any(), gomock.Any()).Return(nil, nil)

	outcome, err := ledger.Rotate(context.Background(), dto.RotateTokenInput{RefreshToken: "never-issued"})
	require.NoError(t, err)
	assert.Equal(t, domain.RotateInvalid, outcome.Result)
}

func TestRefreshTokenLedger_Rotate_Expired(t *testing.T) {
	ledger, mockRepo, _ := newLedger(t)

	expired := activeToken("stale", "user-1")
	expired.ExpiresAt = time.Now().UTC().Add(-time.Minute)

	mockRepo.EXPECT().GetByTokenHash(gomock.Any(), expired.TokenHash).Return(expired, nil)

	outcome, err := ledger.Rotate(context.Background(), dto.RotateTokenInput{RefreshToken: "stale"})
	require.NoError(t, err)
	assert.Equal(t, domain.RotateExpiredOrRevoked, outcome.Result)
}

func TestRefreshTokenLedger_Rotate_RevokedWithoutReplacement(t *testing.T) {
	ledger, mockRepo, _ := newLedger(t)

	revokedAt := time.Now().UTC().Add(-time.Minute)
	revoked := activeToken("revoked", "user-1")
	revoked.RevokedAt = &revokedAt

	mockRepo.EXPECT().GetByTokenHash(gomock.Any(), revoked.TokenHash).Return(revoked, nil)

	outcome, err := ledger.Rotate(context.Background(), dto.RotateTokenInput{RefreshToken: "revoked"})
	require.NoError(t, err)
	assert.Equal(t, domain.RotateExpiredOrRevoked, outcome.Result)
}

// Presenting a token that was already rotated is the theft signal: every link
// of its lineage, in both directions, gets revoked.
func TestRefreshTokenLedger_Rotate_ReuseRevokesLineage(t *testing.T) {
	ledger, mockRepo, _ := newLedger(t)
	ctx := context.Background()

	revokedAt := time.Now().UTC().Add(-time.Hour)
	hashA := domain.HashSecret("token-a")
	hashB := domain.HashSecret("token-b")
	hashC := domain.HashSecret("token-c")

	// Lineage a -> b -> c; the stolen token "b" is re-presented.
	tokenA := &domain.RefreshToken{ID: "rt-a", UserID: "user-1", TokenHash: hashA,
		RevokedAt: &revokedAt, ReplacedByHash: &hashB, ExpiresAt: time.Now().Add(time.Hour)}
	tokenB := &domain.RefreshToken{ID: "rt-b", UserID: "user-1", TokenHash: hashB,
		RevokedAt: &revokedAt, ReplacedByHash: &hashC, ExpiresAt: time.Now().Add(time.Hour)}
	tokenC := &domain.RefreshToken{ID: "rt-c", UserID: "user-1", TokenHash: hashC,
		ExpiresAt: time.Now().Add(time.Hour)}

	mockRepo.EXPECT().GetByTokenHash(gomock.Any(), hashB).Return(tokenB, nil)

	// Forward walk from b: revoke b, then c.
	mockRepo.EXPECT().Revoke(gomock.Any(), "rt-b", gomock.Any()).Return(nil)
	mockRepo.EXPECT().GetByTokenHash(gomock.Any(), hashC).Return(tokenC, nil)
	mockRepo.EXPECT().Revoke(gomock.Any(), "rt-c", gomock.Any()).Return(nil)

	// Backward walk from b: revoke a, then stop at the lineage root.
	mockRepo.EXPECT().GetPredecessor(gomock.Any(), hashB).Return(tokenA, nil)
	mockRepo.EXPECT().Revoke(gomock.Any(), "rt-a", gomock.Any()).Return(nil)
	mockRepo.EXPECT().GetPredecessor(gomock.Any(), hashA).Return(nil, nil)

	outcome, err := ledger.Rotate(ctx, dto.RotateTokenInput{RefreshToken: "token-b"})

	require.NoError(t, err)
	assert.Equal(t, domain.RotateReused, outcome.Result)
	assert.Equal(t, "user-1", outcome.UserID)
}

// A corrupted replacement chain forming a cycle must terminate at the depth
// cap instead of walking forever.
func TestRefreshTokenLedger_Rotate_LineageCycleDetected(t *testing.T) {
	ledger, mockRepo, _ := newLedger(t)

	revokedAt := time.Now().UTC().Add(-time.Hour)
	hashA := domain.HashSecret("cycle-a")
	hashB := domain.HashSecret("cycle-b")

	tokenA := &domain.RefreshToken{ID: "rt-a", UserID: "user-1", TokenHash: hashA,
		RevokedAt: &revokedAt, ReplacedByHash: &hashB, ExpiresAt: time.Now().Add(time.Hour)}
	tokenB := &domain.RefreshToken{ID: "rt-b", UserID: "user-1", TokenHash: hashB,
		RevokedAt: &revokedAt, ReplacedByHash: &hashA, ExpiresAt: time.Now().Add(time.Hour)}

	mockRepo.EXPECT().GetByTokenHash(gomock.Any(), hashA).Return(tokenA, nil).AnyTimes()
	mockRepo.EXPECT().GetByTokenHash(gomock.Any(), hashB).Return(tokenB, nil).AnyTimes()
	mockRepo.EXPECT().Revoke(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	_, err := ledger.Rotate(context.Background(), dto.RotateTokenInput{RefreshToken: "cycle-a"})
	assert.ErrorIs(t, err, autherror.ErrLineageCorrupted)
}

// Losing the conditional rotation means another caller already rotated this
// token; the loser observes post-rotation state, it does not revoke the
// winner's fresh lineage.
func TestRefreshTokenLedger_Rotate_LosesRace(t *testing.T) {
	ledger, mockRepo, _ := newLedger(t)

	current := activeToken("contested", "user-1")

	newHash := domain.HashSecret("winner")
	now := time.Now().UTC()
	afterRace := &domain.RefreshToken{ID: current.ID, UserID: "user-1", TokenHash: current.TokenHash,
		RevokedAt: &now, ReplacedByHash: &newHash, ExpiresAt: current.ExpiresAt}

	mockRepo.EXPECT().GetByTokenHash(gomock.Any(), current.TokenHash).Return(current, nil)
	mockRepo.EXPECT().Rotate(gomock.Any(), current.ID, gomock.Any()).Return(autherror.ErrConflict)
	mockRepo.EXPECT().GetByTokenHash(gomock.Any(), current.TokenHash).Return(afterRace, nil)

	outcome, err := ledger.Rotate(context.Background(), dto.RotateTokenInput{RefreshToken: "contested"})
	require.NoError(t, err)
	assert.Equal(t, domain.RotateExpiredOrRevoked, outcome.Result)
}

func TestRefreshTokenLedger_Rotate_PersistenceError(t *testing.T) {
	ledger, mockRepo, _ := newLedger(t)

	expectedErr := errors.New("db down")
	mockRepo.EXPECT().GetByTokenHash(gomock.Any(), gomock.Any()).Return(nil, expectedErr)

	_, err := ledger.Rotate(context.Background(), dto.RotateTokenInput{RefreshToken: "anything"})
	assert.ErrorIs(t, err, expectedErr)
}

func TestRefreshTokenLedger_Revoke(t *testing.T) {
	ledger, mockRepo, _ := newLedger(t)

	mockRepo.EXPECT().Revoke(gomock.Any(), "rt-1", gomock.Any()).Return(nil)
	assert.NoError(t, ledger.Revoke(context.Background(), "rt-1"))

	assert.ErrorIs(t, ledger.Revoke(context.Background(), ""), autherror.ErrInvalidInput)
}

func TestRefreshTokenLedger_RevokeAllForUser(t *testing.T) {
	ledger, mockRepo, _ := newLedger(t)

	mockRepo.EXPECT().RevokeAllForUser(gomock.Any(), "user-1", gomock.Any()).Return(nil)
	assert.NoError(t, ledger.RevokeAllForUser(context.Background(), "user-1"))

	assert.ErrorIs(t, ledger.RevokeAllForUser(context.Background(), ""), autherror.ErrInvalidInput)
}
