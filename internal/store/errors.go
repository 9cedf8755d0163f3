package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an insert or update collides
	// with an existing username.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrSchoolIDAlreadyExists is returned when an insert collides with an
	// existing school id.
	ErrSchoolIDAlreadyExists = errors.New("school id already exists")

	// ErrNoUserWasFound is returned when a query or update targets an
	// account that does not exist.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrChallengeNotRedeemed is returned when the guarded redeem update
	// matched no row: the code changed, was cleared, or the account left
	// the pending state in between.
	ErrChallengeNotRedeemed = errors.New("verification code was not redeemed")

	// ErrResetTokenNotFound is returned when no account holds the supplied
	// reset token.
	ErrResetTokenNotFound = errors.New("reset token was not found")

	// ErrQuestionNotFound is returned when an update or delete targets a
	// question that does not exist.
	ErrQuestionNotFound = errors.New("question was not found")

	// ErrRoomAlreadyExists is returned when a room name is taken.
	ErrRoomAlreadyExists = errors.New("room already exists")

	// ErrReferenceNotFound is returned when a foreign key (room, program,
	// competency or user) points nowhere.
	ErrReferenceNotFound = errors.New("referenced record was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning fails during multi-row
	// iteration.
	ErrScanningRows = errors.New("failed to scan rows")
)
