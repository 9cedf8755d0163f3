package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Z3ron7/server/internal/adapter"
	"github.com/Z3ron7/server/internal/config"
	"github.com/Z3ron7/server/internal/crypto"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/store"
	"github.com/Z3ron7/server/models"
)

// verificationService moves accounts between Pending, Verified and
// Rejected. Every transition is a single guarded write; concurrent admin
// and OTP paths resolve as last writer wins, except that a redeem never
// overrides a decision that already left Pending.
type verificationService struct {
	userRepository store.UserRepository
	secrets        crypto.SecretGenerator
	mailer         adapter.Mailer
	notifier       Notifier

	publicURL string

	logger *logger.Logger
}

// NewVerificationService constructs a [VerificationService].
func NewVerificationService(users store.UserRepository, secrets crypto.SecretGenerator, mailer adapter.Mailer, notifier Notifier, cfg config.App, logger *logger.Logger) VerificationService {
	return &verificationService{
		userRepository: users,
		secrets:        secrets,
		mailer:         mailer,
		notifier:       notifier,
		publicURL:      cfg.PublicURL,
		logger:         logger,
	}
}

// ListPending returns accounts awaiting a decision, oldest first.
func (s *verificationService) ListPending(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.ListUsersByState(ctx, models.Pending)
	if err != nil {
		return nil, storageError(err)
	}

	for i := range users {
		users[i] = users[i].Public()
	}

	return users, nil
}

// IssueChallenge stores a fresh code for a Pending account, overwriting
// any earlier one, and mails it inside a verification link. The code is
// returned so callers inside the process can use it; it stays stored when
// the mail fails so the admin can retry.
func (s *verificationService) IssueChallenge(ctx context.Context, userID int64) (string, error) {
	log := logger.FromContext(ctx)

	user, err := s.pendingUser(ctx, userID)
	if err != nil {
		return "", err
	}

	code, err := s.secrets.OTP()
	if err != nil {
		log.Err(err).Str("func", "*verificationService.IssueChallenge").Msg("error generating code")
		return "", fmt.Errorf("%w: %w", ErrSecretGeneration, err)
	}

	if err = s.userRepository.SetOTP(ctx, userID, code); err != nil {
		return "", mapUserError(err)
	}

	msg, err := verificationMail(s.publicURL, user, code)
	if err != nil {
		return code, fmt.Errorf("%w: %w", ErrMailDispatch, err)
	}

	if err = s.mailer.Send(ctx, msg); err != nil {
		log.Err(err).Str("func", "*verificationService.IssueChallenge").Int64("user_id", userID).Msg("error mailing verification code")
		return code, fmt.Errorf("%w: %w", ErrMailDispatch, err)
	}

	log.Info().Str("func", "*verificationService.IssueChallenge").Int64("user_id", userID).Msg("verification code issued")
	return code, nil
}

// Redeem verifies a Pending account holding code and clears the code.
// A mismatch changes nothing and may be retried. An account without a
// stored code, including one that already redeemed it, gets
// [ErrNoActiveChallenge]; a code left on a non-Pending account is refused
// with [ErrInvalidTransition].
func (s *verificationService) Redeem(ctx context.Context, userID int64, code string) error {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return mapUserError(err)
	}

	if user.OTP == nil || *user.OTP == "" {
		return ErrNoActiveChallenge
	}

	if user.IsVerified != models.Pending {
		return ErrInvalidTransition
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if !crypto.EqualCodes(*user.OTP, code) {
		log.Info().Str("func", "*verificationService.Redeem").Int64("user_id", userID).Msg("verification code mismatch")
		return ErrInvalidCode
	}

	// the stored code or the state changed since the read
	err = s.userRepository.RedeemOTP(ctx, userID, code)
	if errors.Is(err, store.ErrChallengeNotRedeemed) {
		return ErrNoActiveChallenge
	}
	if err != nil {
		return storageError(err)
	}

	log.Info().Str("func", "*verificationService.Redeem").Int64("user_id", userID).Msg("account verified")
	return nil
}

// AdminAccept verifies the account regardless of its state and queues a
// notice to its owner.
func (s *verificationService) AdminAccept(ctx context.Context, userID int64) error {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return mapUserError(err)
	}

	if err = s.userRepository.SetVerificationState(ctx, userID, models.Verified); err != nil {
		return mapUserError(err)
	}

	msg, err := acceptedMail(user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*verificationService.AdminAccept").Msg("error rendering mail")
		return nil
	}
	s.notifier.Notify(ctx, msg)

	return nil
}

// AdminReject moves the account to Rejected. No mail is sent.
func (s *verificationService) AdminReject(ctx context.Context, userID int64) error {
	if err := s.userRepository.SetVerificationState(ctx, userID, models.Rejected); err != nil {
		return mapUserError(err)
	}

	logger.FromContext(ctx).Info().Str("func", "*verificationService.AdminReject").Int64("user_id", userID).Msg("account rejected")
	return nil
}

func (s *verificationService) pendingUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, mapUserError(err)
	}

	if user.IsVerified != models.Pending {
		return models.User{}, ErrInvalidTransition
	}

	return user, nil
}
