package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/models"
)

type questionRepository struct {
	*DB
	logger *logger.Logger
}

// NewQuestionRepository constructs a [QuestionRepository] backed by db.
func NewQuestionRepository(db *DB, logger *logger.Logger) QuestionRepository {
	logger.Debug().Msg("creating question repository")
	return &questionRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateQuestion inserts a question and its choices in one transaction and
// returns the new question id. Program and competency names that match no
// catalogue entry are stored as NULL.
func (r *questionRepository) CreateQuestion(ctx context.Context, input models.QuestionInput) (int64, error) {
	log := logger.FromContext(ctx)

	var questionID int64
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		programID, competencyID, err := resolveCatalogIDs(ctx, tx, input.Program, input.Competency)
		if err != nil {
			return err
		}

		if err = tx.QueryRowContext(ctx, createQuestion, input.QuestionText, programID, competencyID).Scan(&questionID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return insertChoices(ctx, tx, questionID, input.Choices)
	})
	if err != nil {
		log.Err(err).Str("func", "*questionRepository.CreateQuestion").Msg("error creating question")
		return 0, err
	}

	return questionID, nil
}

// UpdateQuestion replaces the text, catalogue references and the whole set
// of choices of a question in one transaction.
func (r *questionRepository) UpdateQuestion(ctx context.Context, questionID int64, input models.QuestionInput) error {
	log := logger.FromContext(ctx)

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		programID, competencyID, err := resolveCatalogIDs(ctx, tx, input.Program, input.Competency)
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, updateQuestion, questionID, input.QuestionText, programID, competencyID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if affected, err := result.RowsAffected(); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		} else if affected == 0 {
			return ErrQuestionNotFound
		}

		if _, err = tx.ExecContext(ctx, deleteChoices, questionID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return insertChoices(ctx, tx, questionID, input.Choices)
	})
	if err != nil {
		log.Err(err).Str("func", "*questionRepository.UpdateQuestion").Int64("question_id", questionID).Msg("error updating question")
		return err
	}

	return nil
}

// DeleteQuestion removes a question; its choices cascade.
func (r *questionRepository) DeleteQuestion(ctx context.Context, questionID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.ExecContext(ctx, deleteQuestion, questionID)
	if err != nil {
		log.Err(err).Str("func", "*questionRepository.DeleteQuestion").Msg("error deleting question")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrQuestionNotFound
	}

	return nil
}

// FetchQuestionRows returns the flat question/catalogue/choice join, newest
// question first.
func (r *questionRepository) FetchQuestionRows(ctx context.Context) ([]models.QuestionRow, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, fetchQuestionRows)
	if err != nil {
		log.Err(err).Str("func", "*questionRepository.FetchQuestionRows").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]models.QuestionRow, 0)
	for rows.Next() {
		var row models.QuestionRow
		if err = rows.Scan(
			&row.QuestionID,
			&row.ProgramID,
			&row.ProgramName,
			&row.CompetencyID,
			&row.CompetencyName,
			&row.QuestionText,
			&row.ChoiceID,
			&row.ChoiceText,
			&row.IsCorrect,
		); err != nil {
			log.Err(err).Str("func", "*questionRepository.FetchQuestionRows").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

// FindQuestions lists questions matching filter, newest first, each with
// its choices in insertion order.
func (r *questionRepository) FindQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindQuestionsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*questionRepository.FindQuestions").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*questionRepository.FindQuestions").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	questions := make([]models.Question, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var (
			question   models.Question
			choiceID   sql.NullInt64
			choiceText sql.NullString
			isCorrect  sql.NullBool
		)
		if err = rows.Scan(
			&question.QuestionID,
			&question.ProgramID,
			&question.CompetencyID,
			&question.QuestionText,
			&choiceID,
			&choiceText,
			&isCorrect,
		); err != nil {
			log.Err(err).Str("func", "*questionRepository.FindQuestions").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		i, ok := index[question.QuestionID]
		if !ok {
			question.Choices = make([]models.Choice, 0)
			questions = append(questions, question)
			i = len(questions) - 1
			index[question.QuestionID] = i
		}

		// questions without choices come back with a NULL-filled join
		if choiceID.Valid {
			questions[i].Choices = append(questions[i].Choices, models.Choice{
				ChoiceID:   choiceID.Int64,
				QuestionID: question.QuestionID,
				ChoiceText: choiceText.String,
				IsCorrect:  isCorrect.Bool,
			})
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return questions, nil
}

// SearchQuestionText lists questions whose text contains text, without
// choices.
func (r *questionRepository) SearchQuestionText(ctx context.Context, text string) ([]models.Question, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, searchQuestionText, containsPattern(text))
	if err != nil {
		log.Err(err).Str("func", "*questionRepository.SearchQuestionText").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	questions := make([]models.Question, 0)
	for rows.Next() {
		var question models.Question
		if err = rows.Scan(
			&question.QuestionID,
			&question.ProgramID,
			&question.CompetencyID,
			&question.QuestionText,
			&question.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		questions = append(questions, question)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return questions, nil
}

// resolveCatalogIDs looks up program and competency ids by exact name.
// Unknown or empty names resolve to NULL.
func resolveCatalogIDs(ctx context.Context, tx *sql.Tx, program, competency string) (*int64, *int64, error) {
	programID, err := lookupID(ctx, tx, findProgramIDByName, program)
	if err != nil {
		return nil, nil, err
	}

	competencyID, err := lookupID(ctx, tx, findCompetencyIDByName, competency)
	if err != nil {
		return nil, nil, err
	}

	return programID, competencyID, nil
}

func lookupID(ctx context.Context, tx *sql.Tx, query, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}

	var id int64
	err := tx.QueryRowContext(ctx, query, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return &id, nil
}

func insertChoices(ctx context.Context, tx *sql.Tx, questionID int64, choices []models.Choice) error {
	if len(choices) == 0 {
		return nil
	}

	query, args, err := buildInsertChoicesQuery(questionID, choices)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
