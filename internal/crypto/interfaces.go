package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns plain-text passwords into slow, salted hashes and
// checks candidates against them.
type PasswordHasher interface {
	// Hash returns the encoded hash of password.
	Hash(password string) (string, error)

	// Compare reports whether password matches hash. A mismatch is
	// [ErrPasswordMismatch]; any other error means the hash is unusable.
	Compare(hash, password string) error
}

// SecretGenerator produces the random secrets handed out by the server.
type SecretGenerator interface {
	// OTP returns a fresh verification code: random bytes rendered as
	// upper-case hex.
	OTP() (string, error)

	// ResetToken returns a URL-safe password reset token.
	ResetToken() (string, error)
}
