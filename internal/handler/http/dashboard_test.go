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

func TestFetchLatest(t *testing.T) {
	score := 80.0
	latest := models.LatestActivity{LatestActivity: []models.Activity{{UserID: 5, Score: score}}, Score: &score}

	tests := []struct {
		name       string
		token      string
		query      string
		expectUser int64
		expectLim  uint64
		wantStatus int
	}{
		{name: "defaults to caller", token: takerToken, query: "", expectUser: 5, expectLim: 0, wantStatus: http.StatusOK},
		{name: "own id with limit", token: takerToken, query: "?userId=5&limit=3", expectUser: 5, expectLim: 3, wantStatus: http.StatusOK},
		{name: "admin reads anyone", token: adminToken, query: "?userId=9", expectUser: 9, wantStatus: http.StatusOK},
		{name: "other account", token: takerToken, query: "?userId=9", wantStatus: http.StatusForbidden},
		{name: "bad limit", token: takerToken, query: "?limit=-1", wantStatus: http.StatusBadRequest},
		{name: "bad user id", token: takerToken, query: "?userId=x", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, cookieConfig())
			if tt.wantStatus == http.StatusOK {
				env.dashboard.EXPECT().LatestActivity(gomock.Any(), tt.expectUser, tt.expectLim).Return(latest, nil)
			}

			rr := env.do(httptest.NewRequest(http.MethodGet, "/dashboard/fetch-latest"+tt.query, nil), tt.token)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				got := decodeBody[models.LatestActivity](t, rr)
				require.NotNil(t, got.Score)
				assert.Equal(t, score, *got.Score)
			}
		})
	}
}

func TestFetchExamRoom(t *testing.T) {
	env := newTestEnv(t, cookieConfig())
	env.dashboard.EXPECT().RoomSessions(gomock.Any()).Return([]models.RoomSession{{}}, nil)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/dashboard/fetch-exam-room", nil), takerToken)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[[]models.RoomSession](t, rr), 1)
}

func TestFetchRankings(t *testing.T) {
	env := newTestEnv(t, cookieConfig())
	env.dashboard.EXPECT().Rankings(gomock.Any(), int64(0)).Return([]models.RoomSession{}, nil)
	env.dashboard.EXPECT().Rankings(gomock.Any(), int64(2)).Return(nil, service.ErrStorage)

	byDefault := env.do(httptest.NewRequest(http.MethodGet, "/dashboard/fetch-rankings", nil), takerToken)
	failing := env.do(httptest.NewRequest(http.MethodGet, "/dashboard/fetch-rankings?competencyId=2", nil), takerToken)

	assert.Equal(t, http.StatusOK, byDefault.Code)
	assert.Equal(t, http.StatusInternalServerError, failing.Code)
}
