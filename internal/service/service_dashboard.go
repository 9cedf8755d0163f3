package service

import (
	"context"

	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/store"
	"github.com/Z3ron7/server/models"
)

const (
	// DefaultActivityLimit applies when no limit is requested.
	DefaultActivityLimit uint64 = 1
	// MaxActivityLimit caps the latest-activity listing.
	MaxActivityLimit uint64 = 100
	// DefaultRankingCompetencyID is the comprehensive examination.
	DefaultRankingCompetencyID int64 = 6
)

type dashboardService struct {
	dashboardRepository store.DashboardRepository

	logger *logger.Logger
}

func NewDashboardService(dashboard store.DashboardRepository, logger *logger.Logger) DashboardService {
	return &dashboardService{
		dashboardRepository: dashboard,
		logger:              logger,
	}
}

// LatestActivity returns the newest exams of userID across practice and
// room sessions, along with the score of the most recent one.
func (s *dashboardService) LatestActivity(ctx context.Context, userID int64, limit uint64) (models.LatestActivity, error) {
	switch {
	case limit == 0:
		limit = DefaultActivityLimit
	case limit > MaxActivityLimit:
		limit = MaxActivityLimit
	}

	activities, err := s.dashboardRepository.LatestActivity(ctx, userID, limit)
	if err != nil {
		return models.LatestActivity{}, storageError(err)
	}

	result := models.LatestActivity{LatestActivity: activities}
	if len(activities) > 0 {
		score := activities[0].Score
		result.Score = &score
	}

	return result, nil
}

func (s *dashboardService) UserActivities(ctx context.Context, userID int64) ([]models.Activity, error) {
	activities, err := s.dashboardRepository.UserActivities(ctx, userID)
	if err != nil {
		return nil, storageError(err)
	}
	return activities, nil
}

func (s *dashboardService) RoomSessions(ctx context.Context) ([]models.RoomSession, error) {
	sessions, err := s.dashboardRepository.RoomSessions(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return sessions, nil
}

// Rankings lists room sessions of one competency, grouped by room.
func (s *dashboardService) Rankings(ctx context.Context, competencyID int64) ([]models.RoomSession, error) {
	if competencyID <= 0 {
		competencyID = DefaultRankingCompetencyID
	}

	sessions, err := s.dashboardRepository.Rankings(ctx, competencyID)
	if err != nil {
		return nil, storageError(err)
	}
	return sessions, nil
}
