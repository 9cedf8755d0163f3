package service

import (
	"errors"
	"fmt"
)

// Taxonomy roots. Every error returned by a service wraps exactly one of
// them so the transport layer can classify it with [errors.Is].
var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrAuthentication = errors.New("authentication error")
	ErrForbidden      = errors.New("forbidden")
	ErrDependency     = errors.New("dependency error")
)

var (
	ErrUserNotFound     = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrQuestionNotFound = fmt.Errorf("%w: question not found", ErrNotFound)

	ErrUsernameTaken = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrSchoolIDTaken = fmt.Errorf("%w: school id already exists", ErrConflict)
	ErrRoomExists    = fmt.Errorf("%w: room already exists", ErrConflict)

	ErrNoActiveChallenge = fmt.Errorf("%w: no active verification code", ErrConflict)
	ErrInvalidTransition = fmt.Errorf("%w: account is not pending verification", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrAuthentication)
	ErrAccountNotVerified = fmt.Errorf("%w: account is not verified", ErrAuthentication)
	ErrTokenInvalid       = fmt.Errorf("%w: token is invalid or expired", ErrAuthentication)
	ErrTokenRevoked       = fmt.Errorf("%w: token was revoked", ErrAuthentication)

	ErrAdminOnly     = fmt.Errorf("%w: admin role required", ErrForbidden)
	ErrNotOwnAccount = fmt.Errorf("%w: access to another account", ErrForbidden)

	ErrInvalidCode       = fmt.Errorf("%w: invalid verification code", ErrValidation)
	ErrInvalidResetToken = fmt.Errorf("%w: invalid or used reset token", ErrValidation)
	ErrNothingToUpdate   = fmt.Errorf("%w: nothing to update", ErrValidation)
	ErrUnknownReference  = fmt.Errorf("%w: unknown room, program or competency", ErrValidation)
	ErrRoomRequired      = fmt.Errorf("%w: room_id is required", ErrValidation)
	ErrInvalidImage      = fmt.Errorf("%w: unsupported image", ErrValidation)

	ErrMailDispatch     = fmt.Errorf("%w: mail could not be sent", ErrDependency)
	ErrImageStorage     = fmt.Errorf("%w: image could not be stored", ErrDependency)
	ErrTokenIssue       = fmt.Errorf("%w: token could not be issued", ErrDependency)
	ErrSecretGeneration = fmt.Errorf("%w: secret could not be generated", ErrDependency)
	ErrPasswordHashing  = fmt.Errorf("%w: password could not be hashed", ErrDependency)
	ErrStorage          = fmt.Errorf("%w: storage failure", ErrDependency)
)

// ErrVersionIsNotSpecified is returned when no version is configured.
var ErrVersionIsNotSpecified = errors.New("app version is not specified")

// validationError wraps a validator failure into the taxonomy.
func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// storageError wraps an unexpected repository failure.
func storageError(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
