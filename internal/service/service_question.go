package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/store"
	"github.com/Z3ron7/server/internal/validators"
	"github.com/Z3ron7/server/models"
)

type questionService struct {
	questionRepository store.QuestionRepository
	validator          validators.Validator

	logger *logger.Logger
}

func NewQuestionService(questions store.QuestionRepository, validator validators.Validator, logger *logger.Logger) QuestionService {
	return &questionService{
		questionRepository: questions,
		validator:          validator,
		logger:             logger,
	}
}

// Create stores a question with its choices and returns its id.
func (s *questionService) Create(ctx context.Context, input models.QuestionInput) (int64, error) {
	if err := s.validator.Validate(ctx, input); err != nil {
		return 0, validationError(err)
	}

	questionID, err := s.questionRepository.CreateQuestion(ctx, input)
	if err != nil {
		return 0, storageError(err)
	}

	logger.FromContext(ctx).Info().Str("func", "*questionService.Create").Int64("question_id", questionID).Msg("question created")
	return questionID, nil
}

// Update replaces a question and its whole set of choices.
func (s *questionService) Update(ctx context.Context, questionID int64, input models.QuestionInput) error {
	if err := s.validator.Validate(ctx, input); err != nil {
		return validationError(err)
	}

	return mapQuestionError(s.questionRepository.UpdateQuestion(ctx, questionID, input))
}

func (s *questionService) Delete(ctx context.Context, questionID int64) error {
	return mapQuestionError(s.questionRepository.DeleteQuestion(ctx, questionID))
}

// FetchData returns the flat question/choice listing.
func (s *questionService) FetchData(ctx context.Context) ([]models.QuestionRow, error) {
	rows, err := s.questionRepository.FetchQuestionRows(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	return rows, nil
}

// Find lists questions matching every non-empty field of filter.
func (s *questionService) Find(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	filter.Program = strings.TrimSpace(filter.Program)
	filter.Competency = strings.TrimSpace(filter.Competency)
	filter.Search = strings.TrimSpace(filter.Search)

	questions, err := s.questionRepository.FindQuestions(ctx, filter)
	if err != nil {
		return nil, storageError(err)
	}
	return questions, nil
}

// Refresh is Find narrowed by program and competency only.
func (s *questionService) Refresh(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	filter.Search = ""
	return s.Find(ctx, filter)
}

func (s *questionService) SearchText(ctx context.Context, text string) ([]models.Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: search text is empty", ErrValidation)
	}

	questions, err := s.questionRepository.SearchQuestionText(ctx, text)
	if err != nil {
		return nil, storageError(err)
	}
	return questions, nil
}

func mapQuestionError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrQuestionNotFound):
		return ErrQuestionNotFound
	default:
		return storageError(err)
	}
}
