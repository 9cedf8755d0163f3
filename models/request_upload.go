package models

import "io"

// ImageUpload is a profile image received with a multipart request.
type ImageUpload struct {
	// Filename is the client-supplied name; it is logged but never used as
	// a storage key.
	Filename string

	// ContentType is the declared MIME type of the part.
	ContentType string

	Size int64
	Body io.Reader
}
