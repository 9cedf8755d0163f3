package service

import (
	"context"

	"github.com/Z3ron7/server/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenService issues and verifies bearer credentials.
type TokenService interface {
	Issue(ctx context.Context, user models.User) (models.Token, error)
	Verify(ctx context.Context, tokenString string) (models.Claims, error)
}

// AuthService covers registration, login and password recovery, and backs
// the session gate.
type AuthService interface {
	Register(ctx context.Context, user models.User, image *models.ImageUpload) (models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (models.LoginResponse, error)
	ForgotPassword(ctx context.Context, request models.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, request models.ResetPasswordRequest) error
	Authenticate(ctx context.Context, tokenString string) (models.Identity, error)
}

// VerificationService drives accounts through Pending, Verified and
// Rejected.
type VerificationService interface {
	ListPending(ctx context.Context) ([]models.User, error)
	IssueChallenge(ctx context.Context, userID int64) (string, error)
	Redeem(ctx context.Context, userID int64, code string) error
	AdminAccept(ctx context.Context, userID int64) error
	AdminReject(ctx context.Context, userID int64) error
}

// UserService manages profiles.
type UserService interface {
	GetProfile(ctx context.Context, caller models.Identity, userID int64) (models.User, error)
	ListExamTakers(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, caller models.Identity, update models.UserUpdate, image *models.ImageUpload) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	Stats(ctx context.Context) (models.UserStats, error)
}

// QuestionService manages the question bank.
type QuestionService interface {
	Create(ctx context.Context, input models.QuestionInput) (int64, error)
	Update(ctx context.Context, questionID int64, input models.QuestionInput) error
	Delete(ctx context.Context, questionID int64) error
	FetchData(ctx context.Context) ([]models.QuestionRow, error)
	Find(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	Refresh(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	SearchText(ctx context.Context, text string) ([]models.Question, error)
}

// CatalogService exposes programs, competencies and exam rooms.
type CatalogService interface {
	ListPrograms(ctx context.Context) ([]models.Program, error)
	ListCompetencies(ctx context.Context) ([]models.Competency, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	CreateRoom(ctx context.Context, room models.Room) (models.Room, error)
}

// ExamService records finished exam attempts.
type ExamService interface {
	SaveResult(ctx context.Context, userID int64, result models.ExamResult) (models.ExamResult, error)
	SaveRoomResult(ctx context.Context, userID int64, result models.ExamResult) (models.ExamResult, error)
}

// DashboardService aggregates exam history.
type DashboardService interface {
	LatestActivity(ctx context.Context, userID int64, limit uint64) (models.LatestActivity, error)
	UserActivities(ctx context.Context, userID int64) ([]models.Activity, error)
	RoomSessions(ctx context.Context) ([]models.RoomSession, error)
	Rankings(ctx context.Context, competencyID int64) ([]models.RoomSession, error)
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// Notifier queues fire-and-forget mail. It reports whether the message was
// accepted.
type Notifier interface {
	Notify(ctx context.Context, msg models.MailMessage) bool
}
