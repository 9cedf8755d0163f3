package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/models"
)

type dashboardRepository struct {
	*DB
	logger *logger.Logger
}

// NewDashboardRepository constructs a [DashboardRepository] backed by db.
func NewDashboardRepository(db *DB, logger *logger.Logger) DashboardRepository {
	logger.Debug().Msg("creating dashboard repository")
	return &dashboardRepository{
		DB:     db,
		logger: logger,
	}
}

// LatestActivity returns at most limit of the user's most recent practice
// and room exams, newest first. Start times are not loaded.
func (r *dashboardRepository) LatestActivity(ctx context.Context, userID int64, limit uint64) ([]models.Activity, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, latestActivity, userID, limit)
	if err != nil {
		log.Err(err).Str("func", "*dashboardRepository.LatestActivity").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	activities := make([]models.Activity, 0)
	for rows.Next() {
		var activity models.Activity
		if err = rows.Scan(&activity.UserID, &activity.ProgramID, &activity.CompetencyID, &activity.EndTime, &activity.Score); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		activities = append(activities, activity)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return activities, nil
}

// UserActivities returns the user's whole exam history, newest first.
func (r *dashboardRepository) UserActivities(ctx context.Context, userID int64) ([]models.Activity, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, userActivities, userID)
	if err != nil {
		log.Err(err).Str("func", "*dashboardRepository.UserActivities").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	activities := make([]models.Activity, 0)
	for rows.Next() {
		var activity models.Activity
		if err = rows.Scan(&activity.UserID, &activity.ProgramID, &activity.CompetencyID, &activity.StartTime, &activity.EndTime, &activity.Score); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		activities = append(activities, activity)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return activities, nil
}

// RoomSessions lists every room session with its taker and room, newest
// first.
func (r *dashboardRepository) RoomSessions(ctx context.Context) ([]models.RoomSession, error) {
	return r.sessions(ctx, "*dashboardRepository.RoomSessions", roomSessions)
}

// Rankings lists room sessions of one competency grouped by room.
func (r *dashboardRepository) Rankings(ctx context.Context, competencyID int64) ([]models.RoomSession, error) {
	return r.sessions(ctx, "*dashboardRepository.Rankings", rankings, competencyID)
}

func (r *dashboardRepository) sessions(ctx context.Context, funcName, query string, args ...any) ([]models.RoomSession, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	sessions := make([]models.RoomSession, 0)
	for rows.Next() {
		var (
			session models.RoomSession
			roomID  sql.NullInt64
		)
		if err = rows.Scan(
			&session.ID,
			&session.UserID,
			&roomID,
			&session.ProgramID,
			&session.CompetencyID,
			&session.StartTime,
			&session.EndTime,
			&session.Score,
			&session.Name,
			&session.Image,
			&session.RoomName,
		); err != nil {
			log.Err(err).Str("func", funcName).Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if roomID.Valid {
			session.RoomID = &roomID.Int64
		}
		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return sessions, nil
}
