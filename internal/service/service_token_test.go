package service

import (
	"context"
	"testing"
	"time"

	"github.com/Z3ron7/server/internal/config"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenSvc(now *time.Time) *tokenService {
	svc := NewTokenService(config.App{
		TokenSignKey:  "sign-key",
		TokenIssuer:   "exam-hub",
		TokenDuration: 72 * time.Hour,
	}, logger.Nop()).(*tokenService)
	svc.now = func() time.Time { return *now }
	return svc
}

func TestTokenService_RoundTrip(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestTokenSvc(&now)
	ctx := context.Background()

	token, err := svc.Issue(ctx, models.User{
		UserID:       1,
		Name:         "Admin",
		Image:        "https://cdn/a.png",
		Role:         models.RoleAdmin,
		IsVerified:   models.Verified,
		SchoolID:     "A-1",
		TokenVersion: 4,
	})
	require.NoError(t, err)

	claims, err := svc.Verify(ctx, token.String())
	require.NoError(t, err)

	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, models.Verified, claims.IsVerified)
	assert.Equal(t, "Admin", claims.Name)
	assert.Equal(t, "https://cdn/a.png", claims.Image)
	assert.Equal(t, "A-1", claims.SchoolID)
	assert.Equal(t, 4, claims.TokenVersion)
	assert.Equal(t, now.Add(72*time.Hour), claims.ExpiresAt.Time)
}

func TestTokenService_ExpiredByOneSecond(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestTokenSvc(&now)
	ctx := context.Background()

	token, err := svc.Issue(ctx, models.User{UserID: 1, Role: models.RoleAdmin, IsVerified: models.Verified})
	require.NoError(t, err)

	now = now.Add(72*time.Hour - time.Second)
	_, err = svc.Verify(ctx, token.String())
	require.NoError(t, err, "still valid one second before expiry")

	now = now.Add(2 * time.Second)
	_, err = svc.Verify(ctx, token.String())
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestTokenService_RejectsForeignTokens(t *testing.T) {
	now := time.Now()
	svc := newTestTokenSvc(&now)
	other := NewTokenService(config.App{TokenSignKey: "other", TokenIssuer: "exam-hub", TokenDuration: time.Hour}, logger.Nop())

	token, err := other.Issue(context.Background(), models.User{UserID: 1})
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), token.String())
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_IssueWithoutKey(t *testing.T) {
	svc := NewTokenService(config.App{TokenIssuer: "i", TokenDuration: time.Hour}, logger.Nop())

	_, err := svc.Issue(context.Background(), models.User{UserID: 1})

	assert.ErrorIs(t, err, ErrTokenIssue)
	assert.ErrorIs(t, err, ErrDependency)
}
