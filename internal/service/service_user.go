package service

import (
	"context"

	"github.com/Z3ron7/server/internal/adapter"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/store"
	"github.com/Z3ron7/server/internal/validators"
	"github.com/Z3ron7/server/models"
)

type userService struct {
	userRepository store.UserRepository
	images         adapter.ImageStore
	validator      validators.Validator

	logger *logger.Logger
}

func NewUserService(users store.UserRepository, images adapter.ImageStore, validator validators.Validator, logger *logger.Logger) UserService {
	return &userService{
		userRepository: users,
		images:         images,
		validator:      validator,
		logger:         logger,
	}
}

// GetProfile returns an account. Non-admin callers may only read their own.
func (s *userService) GetProfile(ctx context.Context, caller models.Identity, userID int64) (models.User, error) {
	if err := authorizeAccount(caller, userID); err != nil {
		return models.User{}, err
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, mapUserError(err)
	}

	return user.Public(), nil
}

func (s *userService) ListExamTakers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.ListVerifiedExamTakers(ctx)
	if err != nil {
		return nil, storageError(err)
	}

	for i := range users {
		users[i] = users[i].Public()
	}

	return users, nil
}

// UpdateProfile applies a partial update of name, username and image.
// Role, status and verification state cannot change here.
func (s *userService) UpdateProfile(ctx context.Context, caller models.Identity, update models.UserUpdate, image *models.ImageUpload) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := authorizeAccount(caller, update.UserID); err != nil {
		return models.User{}, err
	}

	if err := s.validator.Validate(ctx, update); err != nil {
		return models.User{}, validationError(err)
	}

	imageURL, err := uploadImage(ctx, s.images, image)
	if err != nil {
		log.Err(err).Str("func", "*userService.UpdateProfile").Msg("error storing profile image")
		return models.User{}, err
	}
	if imageURL != "" {
		update.Image = &imageURL
	}

	if update.Empty() {
		return models.User{}, ErrNothingToUpdate
	}

	user, err := s.userRepository.UpdateUser(ctx, update)
	if err != nil {
		log.Err(err).Str("func", "*userService.UpdateProfile").Int64("user_id", update.UserID).Msg("error updating user")
		return models.User{}, mapUserError(err)
	}

	return user.Public(), nil
}

func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		return mapUserError(err)
	}

	logger.FromContext(ctx).Info().Str("func", "*userService.DeleteUser").Int64("user_id", userID).Msg("user deleted")
	return nil
}

func (s *userService) Stats(ctx context.Context) (models.UserStats, error) {
	stats, err := s.userRepository.GetUserStats(ctx)
	if err != nil {
		return models.UserStats{}, storageError(err)
	}
	return stats, nil
}
