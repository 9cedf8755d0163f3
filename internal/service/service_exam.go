package service

import (
	"context"
	"errors"

	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/store"
	"github.com/Z3ron7/server/internal/validators"
	"github.com/Z3ron7/server/models"
)

type examService struct {
	examRepository store.ExamRepository
	validator      validators.Validator

	logger *logger.Logger
}

func NewExamService(exams store.ExamRepository, validator validators.Validator, logger *logger.Logger) ExamService {
	return &examService{
		examRepository: exams,
		validator:      validator,
		logger:         logger,
	}
}

// SaveResult records a practice exam taken by userID. Any room in the input
// is ignored.
func (s *examService) SaveResult(ctx context.Context, userID int64, result models.ExamResult) (models.ExamResult, error) {
	result.UserID = userID
	result.RoomID = nil

	return s.save(ctx, result, s.examRepository.SaveUserExam)
}

// SaveRoomResult records an exam taken by userID inside a room.
func (s *examService) SaveRoomResult(ctx context.Context, userID int64, result models.ExamResult) (models.ExamResult, error) {
	if result.RoomID == nil || *result.RoomID <= 0 {
		return models.ExamResult{}, ErrRoomRequired
	}
	result.UserID = userID

	return s.save(ctx, result, s.examRepository.SaveRoomSession)
}

func (s *examService) save(ctx context.Context, result models.ExamResult, insert func(context.Context, models.ExamResult) (int64, error)) (models.ExamResult, error) {
	if err := s.validator.Validate(ctx, result); err != nil {
		return models.ExamResult{}, validationError(err)
	}

	id, err := insert(ctx, result)
	if errors.Is(err, store.ErrReferenceNotFound) {
		return models.ExamResult{}, ErrUnknownReference
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*examService.save").Int64("user_id", result.UserID).Msg("error saving exam result")
		return models.ExamResult{}, storageError(err)
	}

	result.ID = id
	return result, nil
}
