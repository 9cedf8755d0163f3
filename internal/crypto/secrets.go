package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

const resetTokenBytes = 32

// secretGenerator is the CSPRNG-backed implementation of [SecretGenerator].
type secretGenerator struct {
	otpBytes int
	random   io.Reader
}

// NewSecretGenerator constructs a [SecretGenerator] whose verification
// codes carry otpBytes bytes of entropy (2*otpBytes hex characters).
func NewSecretGenerator(otpBytes int) SecretGenerator {
	return &secretGenerator{
		otpBytes: otpBytes,
		random:   rand.Reader,
	}
}

func (g *secretGenerator) read(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(g.random, b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return b, nil
}

// OTP implements [SecretGenerator].
func (g *secretGenerator) OTP() (string, error) {
	b, err := g.read(g.otpBytes)
	if err != nil {
		return "", err
	}

	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// ResetToken implements [SecretGenerator].
func (g *secretGenerator) ResetToken() (string, error) {
	b, err := g.read(resetTokenBytes)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashToken returns the hex SHA-256 digest of token. Reset tokens are
// stored only in this form.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// EqualCodes compares two secrets in constant time.
func EqualCodes(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
