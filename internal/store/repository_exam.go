package store

import (
	"context"
	"fmt"

	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/models"
	"github.com/jackc/pgerrcode"
)

type examRepository struct {
	*DB
	logger *logger.Logger
}

// NewExamRepository constructs an [ExamRepository] backed by db.
func NewExamRepository(db *DB, logger *logger.Logger) ExamRepository {
	logger.Debug().Msg("creating exam repository")
	return &examRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveUserExam records a practice exam and returns its id.
func (r *examRepository) SaveUserExam(ctx context.Context, result models.ExamResult) (int64, error) {
	return r.insert(ctx, "*examRepository.SaveUserExam", saveUserExam,
		result.UserID, result.ProgramID, result.CompetencyID, result.StartTime, result.EndTime, result.Score)
}

// SaveRoomSession records an exam taken inside a room and returns its id.
func (r *examRepository) SaveRoomSession(ctx context.Context, result models.ExamResult) (int64, error) {
	return r.insert(ctx, "*examRepository.SaveRoomSession", saveRoomSession,
		result.UserID, result.RoomID, result.ProgramID, result.CompetencyID, result.StartTime, result.EndTime, result.Score)
}

func (r *examRepository) insert(ctx context.Context, funcName, query string, args ...any) (int64, error) {
	log := logger.FromContext(ctx)

	var id int64
	if err := r.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		log.Err(err).Str("func", funcName).Msg("error saving exam result")
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return 0, ErrReferenceNotFound
		}
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return id, nil
}
