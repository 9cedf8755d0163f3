package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Z3ron7/server/internal/adapter"
	"github.com/Z3ron7/server/internal/store"
	"github.com/Z3ron7/server/models"
)

// mapUserError translates user repository sentinels into the taxonomy.
func mapUserError(err error) error {
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrLoginAlreadyExists):
		return ErrUsernameTaken
	case errors.Is(err, store.ErrSchoolIDAlreadyExists):
		return ErrSchoolIDTaken
	default:
		return storageError(err)
	}
}

// uploadImage stores image and returns its URL. A nil image yields "".
func uploadImage(ctx context.Context, images adapter.ImageStore, image *models.ImageUpload) (string, error) {
	if image == nil {
		return "", nil
	}

	url, err := images.Upload(ctx, image.Filename, image.Body, image.ContentType)
	switch {
	case errors.Is(err, adapter.ErrUnsupportedImage):
		return "", fmt.Errorf("%w: %w", ErrInvalidImage, err)
	case err != nil:
		return "", fmt.Errorf("%w: %w", ErrImageStorage, err)
	}

	return url, nil
}

// authorizeAccount lets admins act on any account and everyone else only on
// their own.
func authorizeAccount(caller models.Identity, userID int64) error {
	if caller.IsAdmin() || caller.UserID == userID {
		return nil
	}
	return ErrNotOwnAccount
}
