package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var userColumnNames = []string{
	"user_id", "username", "password", "name", "gender", "image", "school_id",
	"status", "role", "is_verified", "otp", "reset_token", "token_version", "created_at",
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     NewDB(db, l),
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func pgConstraintError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func userRow(id int64, state models.VerificationState, otp any) *sqlmock.Rows {
	return sqlmock.NewRows(userColumnNames).
		AddRow(id, "ann@example.com", "hash", "Ann", "F", "", "S-1", "student", "Exam-taker", int64(state), otp, nil, 0, time.Now())
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Username: "ann@example.com",
		Password: "hash",
		Name:     "Ann",
		Gender:   "F",
		SchoolID: "S-1",
		Status:   models.StatusStudent,
		Role:     models.RoleExamTaker,
	}

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.Password, user.Name, user.Gender, user.Image, user.SchoolID, "student", "Exam-taker", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "created_at"}).AddRow(1, now))

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Username != user.Username {
		t.Errorf("expected username %s, got %s", user.Username, created.Username)
	}
	if !created.CreatedAt.Equal(now) {
		t.Errorf("expected created_at %v, got %v", now, created.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{name: "username", constraint: "users_username_key", want: ErrLoginAlreadyExists},
		{name: "school id", constraint: "users_school_id_key", want: ErrSchoolIDAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newTestUserRepo(t)
			defer db.Close()

			mock.ExpectQuery("INSERT INTO users").
				WillReturnError(pgConstraintError(pgerrcode.UniqueViolation, tt.constraint))

			_, err := repo.CreateUser(context.Background(), models.User{Username: "ann@example.com"})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "ann@example.com"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestCreateUser_ScanError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"user_id"}). // intentionally wrong shape → scan error
		AddRow(1)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(rows)

	_, err := repo.CreateUser(context.Background(), models.User{Username: "ann@example.com"})
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}

func TestFindUserByUsername_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM users WHERE username = \\$1").
		WithArgs("ann@example.com").
		WillReturnRows(userRow(7, models.Verified, nil))

	user, err := repo.FindUserByUsername(context.Background(), "ann@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.UserID != 7 || user.IsVerified != models.Verified {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.Status != models.StatusStudent || user.Role != models.RoleExamTaker {
		t.Errorf("unexpected status/role: %s/%s", user.Status, user.Role)
	}
	if user.OTP != nil {
		t.Errorf("expected nil otp, got %v", *user.OTP)
	}
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM users WHERE username").
		WillReturnRows(sqlmock.NewRows(userColumnNames))

	_, err := repo.FindUserByUsername(context.Background(), "ghost@example.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_LoadsOTP(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM users WHERE user_id = \\$1").
		WithArgs(int64(3)).
		WillReturnRows(userRow(3, models.Pending, "A1B2C3D4E5F6A7"))

	user, err := repo.FindUserByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.OTP == nil || *user.OTP != "A1B2C3D4E5F6A7" {
		t.Fatalf("expected stored otp, got %v", user.OTP)
	}
}

func TestFindUserByID_DBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM users WHERE user_id").
		WillReturnError(errors.New("boom"))

	_, err := repo.FindUserByID(context.Background(), 3)
	if err == nil || errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected unexpected DB error, got %v", err)
	}
}

func TestListUsersByState(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(userColumnNames).
		AddRow(1, "a@example.com", "h", "A", "F", "", "S-1", "student", "Exam-taker", int64(0), nil, nil, 0, time.Now()).
		AddRow(2, "b@example.com", "h", "B", "M", "", "S-2", "alumni", "Exam-taker", int64(0), nil, nil, 0, time.Now())

	mock.ExpectQuery("WHERE is_verified = \\$1\\s+ORDER BY created_at").
		WithArgs(int64(models.Pending)).
		WillReturnRows(rows)

	users, err := repo.ListUsersByState(context.Background(), models.Pending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[0].UserID != 1 || users[1].UserID != 2 {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestListUsersByState_Empty(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("WHERE is_verified = \\$1").
		WillReturnRows(sqlmock.NewRows(userColumnNames))

	users, err := repo.ListUsersByState(context.Background(), models.Pending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", users)
	}
}

func TestListVerifiedExamTakers_QueryError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("status IN \\('student', 'alumni'\\)").
		WillReturnError(errors.New("boom"))

	_, err := repo.ListVerifiedExamTakers(context.Background())
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestSetOTP(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET otp = \\$2 WHERE user_id = \\$1").
		WithArgs(int64(5), "ABCDEF12345678").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetOTP(context.Background(), 5, "ABCDEF12345678"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetOTP_UnknownUser(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET otp").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetOTP(context.Background(), 404, "ABCDEF12345678")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestRedeemOTP_GuardedUpdate(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("SET is_verified = 1, otp = NULL\\s+WHERE user_id = \\$1 AND otp = \\$2 AND is_verified = 0").
		WithArgs(int64(5), "CODE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RedeemOTP(context.Background(), 5, "CODE"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRedeemOTP_NoRowMatched(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("SET is_verified = 1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RedeemOTP(context.Background(), 5, "CODE")
	if !errors.Is(err, ErrChallengeNotRedeemed) {
		t.Fatalf("expected ErrChallengeNotRedeemed, got %v", err)
	}
}

func TestSetVerificationState_ExecError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET is_verified = \\$2, otp = NULL").
		WithArgs(int64(5), int64(models.Rejected)).
		WillReturnError(errors.New("boom"))

	err := repo.SetVerificationState(context.Background(), 5, models.Rejected)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("token_version = token_version \\+ 1").
		WithArgs("reset-token", "new-hash").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(9))

	userID, err := repo.ResetPassword(context.Background(), "reset-token", "new-hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != 9 {
		t.Errorf("expected user 9, got %d", userID)
	}
}

func TestResetPassword_UnknownToken(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("WHERE reset_token = \\$1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := repo.ResetPassword(context.Background(), "stale", "new-hash")
	if !errors.Is(err, ErrResetTokenNotFound) {
		t.Fatalf("expected ErrResetTokenNotFound, got %v", err)
	}
}

func TestGetTokenVersion(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT token_version FROM users").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"token_version"}).AddRow(4))

	version, err := repo.GetTokenVersion(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != 4 {
		t.Errorf("expected version 4, got %d", version)
	}
}

func TestUpdateUser_PartialFields(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	name := "Annie"
	mock.ExpectQuery("UPDATE users SET name = \\$1 WHERE user_id = \\$2 RETURNING").
		WithArgs(name, int64(7)).
		WillReturnRows(userRow(7, models.Verified, nil))

	user, err := repo.UpdateUser(context.Background(), models.UserUpdate{UserID: 7, Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.UserID != 7 {
		t.Errorf("expected user 7, got %d", user.UserID)
	}
}

func TestUpdateUser_Empty(t *testing.T) {
	repo, _, db := newTestUserRepo(t)
	defer db.Close()

	_, err := repo.UpdateUser(context.Background(), models.UserUpdate{UserID: 7})
	if !errors.Is(err, ErrBuildingSQLQuery) {
		t.Fatalf("expected ErrBuildingSQLQuery, got %v", err)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	name := "Annie"
	mock.ExpectQuery("UPDATE users SET name").
		WillReturnRows(sqlmock.NewRows(userColumnNames))

	_, err := repo.UpdateUser(context.Background(), models.UserUpdate{UserID: 404, Name: &name})
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateUser_UsernameTaken(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	username := "taken@example.com"
	mock.ExpectQuery("UPDATE users SET username").
		WillReturnError(pgConstraintError(pgerrcode.UniqueViolation, "users_username_key"))

	_, err := repo.UpdateUser(context.Background(), models.UserUpdate{UserID: 7, Username: &username})
	if !errors.Is(err, ErrLoginAlreadyExists) {
		t.Fatalf("expected ErrLoginAlreadyExists, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM users WHERE user_id = \\$1").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM users WHERE user_id = \\$1").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteUser(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.DeleteUser(context.Background(), 7); !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound on second delete, got %v", err)
	}
}

func TestGetUserStats(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"status", "is_verified", "count"}).
		AddRow("student", int64(1), int64(10)).
		AddRow("student", int64(0), int64(3)).
		AddRow("alumni", int64(1), int64(4)).
		AddRow("alumni", int64(0), int64(1))

	mock.ExpectQuery("GROUP BY status, is_verified").WillReturnRows(rows)

	stats, err := repo.GetUserStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := models.UserStats{
		TotalStudentsVerified:    10,
		TotalStudentsNotVerified: 3,
		TotalAlumniVerified:      4,
		TotalAlumniNotVerified:   1,
	}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}
}

func TestUniqueViolation_DefaultsToLogin(t *testing.T) {
	if err := uniqueViolation(pgError(pgerrcode.UniqueViolation)); !errors.Is(err, ErrLoginAlreadyExists) {
		t.Fatalf("expected ErrLoginAlreadyExists, got %v", err)
	}
}
