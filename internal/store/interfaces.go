package store

import (
	"context"

	"github.com/Z3ron7/server/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository persists accounts together with their verification state,
// one-time codes and reset tokens.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	ListUsersByState(ctx context.Context, state models.VerificationState) ([]models.User, error)
	ListVerifiedExamTakers(ctx context.Context) ([]models.User, error)

	SetOTP(ctx context.Context, userID int64, otp string) error
	RedeemOTP(ctx context.Context, userID int64, otp string) error
	SetVerificationState(ctx context.Context, userID int64, state models.VerificationState) error

	SetResetToken(ctx context.Context, userID int64, token string) error
	ResetPassword(ctx context.Context, token, passwordHash string) (int64, error)
	GetTokenVersion(ctx context.Context, userID int64) (int, error)

	UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	GetUserStats(ctx context.Context) (models.UserStats, error)
}

// QuestionRepository manages the question bank.
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, input models.QuestionInput) (int64, error)
	UpdateQuestion(ctx context.Context, questionID int64, input models.QuestionInput) error
	DeleteQuestion(ctx context.Context, questionID int64) error
	FetchQuestionRows(ctx context.Context) ([]models.QuestionRow, error)
	FindQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	SearchQuestionText(ctx context.Context, text string) ([]models.Question, error)
}

// CatalogRepository reads programs and competencies and manages exam rooms.
type CatalogRepository interface {
	ListPrograms(ctx context.Context) ([]models.Program, error)
	ListCompetencies(ctx context.Context) ([]models.Competency, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	CreateRoom(ctx context.Context, room models.Room) (models.Room, error)
}

// ExamRepository records finished exam attempts.
type ExamRepository interface {
	SaveUserExam(ctx context.Context, result models.ExamResult) (int64, error)
	SaveRoomSession(ctx context.Context, result models.ExamResult) (int64, error)
}

// DashboardRepository aggregates exam history for dashboards.
type DashboardRepository interface {
	LatestActivity(ctx context.Context, userID int64, limit uint64) ([]models.Activity, error)
	UserActivities(ctx context.Context, userID int64) ([]models.Activity, error)
	RoomSessions(ctx context.Context) ([]models.RoomSession, error)
	Rankings(ctx context.Context, competencyID int64) ([]models.RoomSession, error)
}
