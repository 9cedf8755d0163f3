// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Smart Exam Hub Authors

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Z3ron7/server/internal/adapter"
	"github.com/Z3ron7/server/internal/config"
	"github.com/Z3ron7/server/internal/crypto"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/store"
	"github.com/Z3ron7/server/internal/validators"
	"github.com/Z3ron7/server/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification, password recovery and
// session authentication.
type authService struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
	secrets        crypto.SecretGenerator
	tokens         TokenService
	images         adapter.ImageStore
	mailer         adapter.Mailer
	notifier       Notifier
	validator      validators.Validator

	// publicURL prefixes links in outgoing mail.
	publicURL string

	// adminEmail receives new-registration notices; empty disables them.
	adminEmail string

	// versionCheck makes Authenticate compare the token version claim with
	// the stored one.
	versionCheck bool

	logger *logger.Logger
}

// AuthDeps groups the collaborators of the auth service.
type AuthDeps struct {
	Users     store.UserRepository
	Hasher    crypto.PasswordHasher
	Secrets   crypto.SecretGenerator
	Tokens    TokenService
	Images    adapter.ImageStore
	Mailer    adapter.Mailer
	Notifier  Notifier
	Validator validators.Validator
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(deps AuthDeps, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: deps.Users,
		hasher:         deps.Hasher,
		secrets:        deps.Secrets,
		tokens:         deps.Tokens,
		images:         deps.Images,
		mailer:         deps.Mailer,
		notifier:       deps.Notifier,
		validator:      deps.Validator,
		publicURL:      cfg.PublicURL,
		adminEmail:     cfg.AdminEmail,
		versionCheck:   cfg.TokenVersionCheck,
		logger:         logger,
	}
}

// Register creates a Pending account.
//
// The role is derived from the status, never taken from input. The optional
// image is stored before the row is inserted so the row carries its URL.
// A notice to the administrator is queued on success.
//
// Errors:
//   - [ErrValidation] for malformed input;
//   - [ErrUsernameTaken] / [ErrSchoolIDTaken] on duplicates;
//   - [ErrImageStorage] / [ErrInvalidImage] when the image cannot be kept.
func (a *authService) Register(ctx context.Context, user models.User, image *models.ImageUpload) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, user); err != nil {
		return models.User{}, validationError(err)
	}

	hash, err := a.hashPassword(user.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error hashing password")
		return models.User{}, err
	}

	imageURL, err := uploadImage(ctx, a.images, image)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error storing profile image")
		return models.User{}, err
	}

	user.Password = hash
	user.Role = models.RoleForStatus(user.Status)
	user.IsVerified = models.Pending
	user.Image = imageURL

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, mapUserError(err)
	}

	a.notifyAdmin(ctx, registeredUser)

	return registeredUser.Public(), nil
}

func (a *authService) notifyAdmin(ctx context.Context, user models.User) {
	if a.adminEmail == "" {
		return
	}

	msg, err := registrationMail(a.adminEmail, user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.notifyAdmin").Msg("error rendering mail")
		return
	}

	a.notifier.Notify(ctx, msg)
}

// Login authenticates an account and issues a credential.
//
// The password is checked before the verification state so an unverified
// account is only revealed to someone who knows its password. The role is
// re-derived from the status.
//
// Errors:
//   - [ErrInvalidCredentials] for unknown usernames and wrong passwords alike;
//   - [ErrAccountNotVerified] for Pending or Rejected accounts.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, credentials); err != nil {
		return models.LoginResponse{}, validationError(err)
	}

	user, err := a.userRepository.FindUserByUsername(ctx, credentials.Username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("func", "*authService.Login").Str("username", credentials.Username).Msg("unknown username")
		return models.LoginResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.LoginResponse{}, storageError(err)
	}

	if err = a.hasher.Compare(user.Password, credentials.Password); err != nil {
		if !errors.Is(err, crypto.ErrPasswordMismatch) {
			log.Err(err).Str("func", "*authService.Login").Int64("user_id", user.UserID).Msg("stored hash is unusable")
		}
		return models.LoginResponse{}, ErrInvalidCredentials
	}

	if user.IsVerified != models.Verified {
		log.Info().Str("func", "*authService.Login").Int64("user_id", user.UserID).Stringer("state", user.IsVerified).Msg("login of unverified account")
		return models.LoginResponse{}, ErrAccountNotVerified
	}

	user.Role = models.RoleForStatus(user.Status)

	token, err := a.tokens.Issue(ctx, user)
	if err != nil {
		return models.LoginResponse{}, err
	}

	return models.LoginResponse{
		Status:     models.StatusLoginSucceeded,
		Token:      token.String(),
		UserID:     user.UserID,
		Name:       user.Name,
		Image:      user.Image,
		Role:       user.Role,
		IsVerified: user.IsVerified,
	}, nil
}

// ForgotPassword issues a reset token and mails it. Only the token's
// SHA-256 digest is stored. Mail is sent synchronously so a delivery
// failure reaches the caller.
func (a *authService) ForgotPassword(ctx context.Context, request models.ForgotPasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, request); err != nil {
		return validationError(err)
	}

	user, err := a.userRepository.FindUserByUsername(ctx, request.Username)
	if err != nil {
		return mapUserError(err)
	}

	token, err := a.secrets.ResetToken()
	if err != nil {
		log.Err(err).Str("func", "*authService.ForgotPassword").Msg("error generating reset token")
		return fmt.Errorf("%w: %w", ErrSecretGeneration, err)
	}

	if err = a.userRepository.SetResetToken(ctx, user.UserID, crypto.HashToken(token)); err != nil {
		return mapUserError(err)
	}

	msg, err := resetMail(a.publicURL, user, token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMailDispatch, err)
	}

	if err = a.mailer.Send(ctx, msg); err != nil {
		log.Err(err).Str("func", "*authService.ForgotPassword").Int64("user_id", user.UserID).Msg("error mailing reset token")
		return fmt.Errorf("%w: %w", ErrMailDispatch, err)
	}

	return nil
}

// ResetPassword redeems a reset token. The token is single use and the
// account's token version is bumped.
func (a *authService) ResetPassword(ctx context.Context, request models.ResetPasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, request); err != nil {
		return validationError(err)
	}

	hash, err := a.hashPassword(request.Password)
	if err != nil {
		return err
	}

	userID, err := a.userRepository.ResetPassword(ctx, crypto.HashToken(request.Token), hash)
	if errors.Is(err, store.ErrResetTokenNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return storageError(err)
	}

	log.Info().Str("func", "*authService.ResetPassword").Int64("user_id", userID).Msg("password was reset")
	return nil
}

// Authenticate verifies a bearer credential and returns the identity it
// carries. With the version check enabled the stored token version must
// still match the claim.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Identity, error) {
	if tokenString == "" {
		return models.Identity{}, ErrTokenInvalid
	}

	claims, err := a.tokens.Verify(ctx, tokenString)
	if err != nil {
		return models.Identity{}, err
	}

	if a.versionCheck {
		version, err := a.userRepository.GetTokenVersion(ctx, claims.UserID)
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Identity{}, ErrTokenRevoked
		}
		if err != nil {
			return models.Identity{}, storageError(err)
		}
		if version != claims.TokenVersion {
			return models.Identity{}, ErrTokenRevoked
		}
	}

	return claims.Identity(), nil
}

// hashPassword hashes password, reporting an over-long one as the caller's
// mistake rather than a hashing failure.
func (a *authService) hashPassword(password string) (string, error) {
	hash, err := a.hasher.Hash(password)
	if errors.Is(err, crypto.ErrPasswordTooLong) {
		return "", validationError(err)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPasswordHashing, err)
	}

	return hash, nil
}
