package adapter

import "errors"

var (
	// ErrMailDelivery wraps any failure of the mail relay.
	ErrMailDelivery = errors.New("mail delivery failed")
	// ErrImageUpload wraps any failure of the object store.
	ErrImageUpload = errors.New("image upload failed")
	// ErrImageStoreDisabled is returned when no bucket is configured.
	ErrImageStoreDisabled = errors.New("image store is not configured")
	// ErrUnsupportedImage is returned for uploads that are not images.
	ErrUnsupportedImage = errors.New("unsupported image type")
)
