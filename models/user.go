package models

import "time"

// VerificationState is the lifecycle state of an account. It is persisted
// as a small integer in users.is_verified.
type VerificationState int

const (
	// Pending is the initial state of every registered account.
	Pending VerificationState = iota
	// Verified accounts may log in.
	Verified
	// Rejected accounts were declined by an administrator.
	Rejected
)

// String returns a human-readable name of the state.
func (s VerificationState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Verified:
		return "verified"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the known states.
func (s VerificationState) Valid() bool {
	return s >= Pending && s <= Rejected
}

// Role is the authorization role carried by an account and its tokens.
type Role string

const (
	RoleExamTaker Role = "Exam-taker"
	RoleAdmin     Role = "Admin"
)

// Status is the institutional classification chosen at registration.
type Status string

const (
	StatusStudent Status = "student"
	StatusAlumni  Status = "alumni"
	StatusAdmin   Status = "admin"
)

// RoleForStatus derives the role of an account from its status. Only the
// admin status ever maps to [RoleAdmin].
func RoleForStatus(status Status) Role {
	if status == StatusAdmin {
		return RoleAdmin
	}
	return RoleExamTaker
}

// User represents an account of the exam hub.
// Sensitive fields (password hash, OTP, reset token) are never serialized.
type User struct {
	// UserID is the server-assigned identifier.
	UserID int64 `json:"user_id"`

	// Username is the unique, email-shaped login.
	Username string `json:"username" validate:"required,email,max=255"`

	// Password holds the plain-text password on input and the bcrypt hash
	// once loaded from storage.
	Password string `json:"password,omitempty" validate:"required,min=6,maxbytes=72"`

	Name     string `json:"name" validate:"required,max=255"`
	Gender   string `json:"gender" validate:"required,max=32"`
	Image    string `json:"image"`
	SchoolID string `json:"school_id" validate:"required,max=64"`

	Status Status `json:"status" validate:"required,oneof=student alumni admin"`
	Role   Role   `json:"role"`

	IsVerified VerificationState `json:"isVerified"`

	OTP          *string `json:"-"`
	ResetToken   *string `json:"-"`
	TokenVersion int     `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns a copy of u with the password cleared so it can be
// written to a response.
func (u User) Public() User {
	u.Password = ""
	return u
}

// UserUpdate is a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	UserID   int64   `json:"-"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Username *string `json:"username,omitempty" validate:"omitempty,email,max=255"`
	Image    *string `json:"image,omitempty"`
}

// Empty reports whether the update carries no field to change.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Username == nil && u.Image == nil
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest starts a password reset.
type ForgotPasswordRequest struct {
	Username string `json:"username" validate:"required,email"`
}

// ResetPasswordRequest redeems a reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

// UserStats counts exam takers per status and verification state.
type UserStats struct {
	TotalStudentsVerified    int64 `json:"totalStudentsVerified"`
	TotalAlumniVerified      int64 `json:"totalAlumniVerified"`
	TotalStudentsNotVerified int64 `json:"totalStudentsNotVerified"`
	TotalAlumniNotVerified   int64 `json:"totalAlumniNotVerified"`
}
