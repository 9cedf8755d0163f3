package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup and verification state changes
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.Password,
		&user.Name,
		&user.Gender,
		&user.Image,
		&user.SchoolID,
		&user.Status,
		&user.Role,
		&user.IsVerified,
		&user.OTP,
		&user.ResetToken,
		&user.TokenVersion,
		&user.CreatedAt,
	)

	return user, err
}

// uniqueViolation maps a unique constraint failure on users to the matching
// sentinel.
func uniqueViolation(err error) error {
	if postgresConstraint(err) == "users_school_id_key" {
		return ErrSchoolIDAlreadyExists
	}

	return ErrLoginAlreadyExists
}

// CreateUser persists a new account and returns it with the server-assigned
// UserID and CreatedAt.
//
// Error handling:
//   - unique_violation on username → [ErrLoginAlreadyExists];
//   - unique_violation on school id → [ErrSchoolIDAlreadyExists];
//   - anything else → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Username, user.Password, user.Name, user.Gender, user.Image,
		user.SchoolID, user.Status, user.Role, user.IsVerified,
	)

	// create user in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, uniqueViolation(err)
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan generated fields
	if err := row.Scan(&user.UserID, &user.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// FindUserByUsername retrieves the account registered under username.
// A missing account yields [ErrNoUserWasFound].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByUsername", findUserByUsername, username)
}

// FindUserByID retrieves the account with the given id.
// A missing account yields [ErrNoUserWasFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", findUserByID, userID)
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// ListUsersByState returns every account in state, oldest first.
func (r *userRepository) ListUsersByState(ctx context.Context, state models.VerificationState) ([]models.User, error) {
	return r.list(ctx, "*userRepository.ListUsersByState", listUsersByState, state)
}

// ListVerifiedExamTakers returns verified student and alumni accounts.
func (r *userRepository) ListVerifiedExamTakers(ctx context.Context) ([]models.User, error) {
	return r.list(ctx, "*userRepository.ListVerifiedExamTakers", listVerifiedExamTakers)
}

func (r *userRepository) list(ctx context.Context, funcName, query string, args ...any) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("error scanning user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error iterating user rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// SetOTP stores otp for the account, overwriting any previous code.
func (r *userRepository) SetOTP(ctx context.Context, userID int64, otp string) error {
	return r.execOne(ctx, "*userRepository.SetOTP", ErrNoUserWasFound, setOTP, userID, otp)
}

// RedeemOTP marks a pending account verified and clears its code, provided
// the stored code still equals otp. Otherwise nothing changes and
// [ErrChallengeNotRedeemed] is returned.
func (r *userRepository) RedeemOTP(ctx context.Context, userID int64, otp string) error {
	return r.execOne(ctx, "*userRepository.RedeemOTP", ErrChallengeNotRedeemed, redeemOTP, userID, otp)
}

// SetVerificationState moves the account to state and drops any
// outstanding code.
func (r *userRepository) SetVerificationState(ctx context.Context, userID int64, state models.VerificationState) error {
	return r.execOne(ctx, "*userRepository.SetVerificationState", ErrNoUserWasFound, setVerificationState, userID, state)
}

// SetResetToken stores a password reset token, replacing an older one.
func (r *userRepository) SetResetToken(ctx context.Context, userID int64, token string) error {
	return r.execOne(ctx, "*userRepository.SetResetToken", ErrNoUserWasFound, setResetToken, userID, token)
}

// DeleteUser removes the account; its exam history goes with it.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	return r.execOne(ctx, "*userRepository.DeleteUser", ErrNoUserWasFound, deleteUser, userID)
}

// execOne runs a single-row write and returns notFound when it touched
// nothing.
func (r *userRepository) execOne(ctx context.Context, funcName string, notFound error, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return notFound
	}

	return nil
}

// ResetPassword swaps the password of the account holding token, clears the
// token and bumps the token version so older credentials can be told apart.
// It returns the id of the updated account.
func (r *userRepository) ResetPassword(ctx context.Context, token, passwordHash string) (int64, error) {
	log := logger.FromContext(ctx)

	var userID int64
	err := r.db.QueryRowContext(ctx, resetPassword, token, passwordHash).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrResetTokenNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ResetPassword").Msg("error resetting password")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return userID, nil
}

// GetTokenVersion returns the current token version of the account.
func (r *userRepository) GetTokenVersion(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContext(ctx)

	var version int
	err := r.db.QueryRowContext(ctx, getTokenVersion, userID).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetTokenVersion").Msg("error reading token version")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return version, nil
}

// UpdateUser applies a partial profile update and returns the stored
// account afterwards.
func (r *userRepository) UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error building update query")
		return models.User{}, err
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, uniqueViolation(err)
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// GetUserStats counts student and alumni accounts by verification state.
func (r *userRepository) GetUserStats(ctx context.Context) (models.UserStats, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, userStats)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetUserStats").Msg("error executing query")
		return models.UserStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var stats models.UserStats
	for rows.Next() {
		var (
			status models.Status
			state  models.VerificationState
			count  int64
		)
		if err = rows.Scan(&status, &state, &count); err != nil {
			log.Err(err).Str("func", "*userRepository.GetUserStats").Msg("error scanning stats row")
			return models.UserStats{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		switch {
		case status == models.StatusStudent && state == models.Verified:
			stats.TotalStudentsVerified = count
		case status == models.StatusStudent && state == models.Pending:
			stats.TotalStudentsNotVerified = count
		case status == models.StatusAlumni && state == models.Verified:
			stats.TotalAlumniVerified = count
		case status == models.StatusAlumni && state == models.Pending:
			stats.TotalAlumniNotVerified = count
		}
	}

	if err = rows.Err(); err != nil {
		return models.UserStats{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return stats, nil
}
