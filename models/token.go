package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of the bearer credential. Besides the registered
// claims it carries a snapshot of the account taken at issuance time; the
// verification state in particular is not refreshed until the next login.
type Claims struct {
	jwt.RegisteredClaims

	UserID       int64             `json:"user_id"`
	Name         string            `json:"name"`
	Image        string            `json:"image"`
	Role         Role              `json:"role"`
	IsVerified   VerificationState `json:"isVerified"`
	SchoolID     string            `json:"school_id"`
	TokenVersion int               `json:"tv"`
}

// Identity returns the request-scoped identity described by the claims.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:       c.UserID,
		Name:         c.Name,
		Image:        c.Image,
		Role:         c.Role,
		IsVerified:   c.IsVerified,
		SchoolID:     c.SchoolID,
		TokenVersion: c.TokenVersion,
	}
}

// Token wraps a signed JWT together with its decoded claims.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// Claims holds the decoded payload.
	Claims *Claims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// GetUserID extracts the user identifier from the "sub" claim.
func (t *Token) GetUserID() (int64, error) {
	if t.Claims == nil {
		return 0, fmt.Errorf("error extracting UserID from token: no claims")
	}

	userIDString, err := t.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

// Identity is what the session gate exposes to downstream handlers.
type Identity struct {
	UserID       int64             `json:"user_id"`
	Name         string            `json:"name"`
	Image        string            `json:"image"`
	Role         Role              `json:"role"`
	IsVerified   VerificationState `json:"isVerified"`
	SchoolID     string            `json:"school_id"`
	TokenVersion int               `json:"-"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Status     string            `json:"Status"`
	Token      string            `json:"token"`
	UserID     int64             `json:"user_id"`
	Name       string            `json:"name"`
	Image      string            `json:"image"`
	Role       Role              `json:"role"`
	IsVerified VerificationState `json:"isVerified"`
}
