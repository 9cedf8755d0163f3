package crypto

import "errors"

var (
	// ErrPasswordMismatch is returned by [PasswordHasher.Compare] when the
	// candidate does not match the stored hash.
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrPasswordTooLong is returned by [PasswordHasher.Hash] for passwords
	// longer than bcrypt can take.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

	// ErrRandomSource is returned when the OS CSPRNG cannot be read.
	ErrRandomSource = errors.New("failed to read random bytes")
)
