package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Z3ron7/server/internal/service"
	"github.com/Z3ron7/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUnverifiedUsers(t *testing.T) {
	env := newTestEnv(t, cookieConfig())
	env.verification.EXPECT().ListPending(gomock.Any()).Return([]models.User{{UserID: 3, Username: "p@example.com"}}, nil)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/verify/unverified-users", nil), adminToken)

	require.Equal(t, http.StatusOK, rr.Code)
	users := decodeBody[[]models.User](t, rr)
	require.Len(t, users, 1)
	assert.Equal(t, int64(3), users[0].UserID)
}

func TestSendVerification_DoesNotLeakCode(t *testing.T) {
	env := newTestEnv(t, cookieConfig())
	env.verification.EXPECT().IssueChallenge(gomock.Any(), int64(3)).Return("A1B2C3D4E5F6A7", nil)

	rr := env.do(httptest.NewRequest(http.MethodPost, "/verify/send-verification/3", nil), adminToken)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "A1B2C3D4E5F6A7")
}

func TestSendVerification_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		serviceErr error
		wantStatus int
	}{
		{"bad id", "/verify/send-verification/abc", nil, http.StatusBadRequest},
		{"unknown account", "/verify/send-verification/3", service.ErrUserNotFound, http.StatusNotFound},
		{"not pending", "/verify/send-verification/3", service.ErrInvalidTransition, http.StatusConflict},
		{"mail failed", "/verify/send-verification/3", service.ErrMailDispatch, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, cookieConfig())
			if tt.serviceErr != nil {
				env.verification.EXPECT().IssueChallenge(gomock.Any(), int64(3)).Return("CODE", tt.serviceErr)
			}

			rr := env.do(httptest.NewRequest(http.MethodPost, tt.path, nil), adminToken)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestRedeemVerification_IsPublic(t *testing.T) {
	env := newTestEnv(t, cookieConfig())
	env.verification.EXPECT().Redeem(gomock.Any(), int64(4), "abc123").Return(nil)

	rr := env.do(httptest.NewRequest(http.MethodPost, "/verify/4/abc123", nil), "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.StatusSuccess, decodeBody[models.StatusResponse](t, rr).Status)
}

func TestRedeemVerification_Errors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"wrong code", service.ErrInvalidCode, http.StatusBadRequest},
		{"no active code", service.ErrNoActiveChallenge, http.StatusConflict},
		{"rejected account", service.ErrInvalidTransition, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, cookieConfig())
			env.verification.EXPECT().Redeem(gomock.Any(), int64(4), "BAD").Return(tt.serviceErr)

			rr := env.do(httptest.NewRequest(http.MethodPost, "/verify/4/BAD", nil), "")

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestAdminDecisions(t *testing.T) {
	env := newTestEnv(t, cookieConfig())
	env.verification.EXPECT().AdminAccept(gomock.Any(), int64(6)).Return(nil)
	env.verification.EXPECT().AdminReject(gomock.Any(), int64(7)).Return(nil)
	env.verification.EXPECT().AdminReject(gomock.Any(), int64(8)).Return(service.ErrUserNotFound)

	accepted := env.do(httptest.NewRequest(http.MethodPost, "/verify/accept-user/6", nil), adminToken)
	rejected := env.do(httptest.NewRequest(http.MethodPost, "/verify/reject-user/7", nil), adminToken)
	missing := env.do(httptest.NewRequest(http.MethodPost, "/verify/reject-user/8", nil), adminToken)

	assert.Equal(t, http.StatusOK, accepted.Code)
	assert.Equal(t, http.StatusOK, rejected.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
