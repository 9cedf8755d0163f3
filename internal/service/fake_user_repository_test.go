package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Z3ron7/server/internal/store"
	"github.com/Z3ron7/server/models"
)

// memoryUserRepository is an in-memory store.UserRepository that keeps the
// same single-row semantics as the SQL implementation.
type memoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[int64]models.User)}
}

func (r *memoryUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return models.User{}, store.ErrLoginAlreadyExists
		}
		if u.SchoolID == user.SchoolID {
			return models.User{}, store.ErrSchoolIDAlreadyExists
		}
	}

	r.nextID++
	user.UserID = r.nextID
	user.CreatedAt = time.Unix(r.nextID, 0)
	r.users[user.UserID] = user

	return user, nil
}

func (r *memoryUserRepository) FindUserByUsername(_ context.Context, username string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (r *memoryUserRepository) FindUserByID(_ context.Context, userID int64) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	return u, nil
}

func (r *memoryUserRepository) ListUsersByState(_ context.Context, state models.VerificationState) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]models.User, 0)
	for _, u := range r.users {
		if u.IsVerified == state {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (r *memoryUserRepository) ListVerifiedExamTakers(context.Context) ([]models.User, error) {
	return nil, nil
}

func (r *memoryUserRepository) SetOTP(_ context.Context, userID int64, otp string) error {
	return r.update(userID, store.ErrNoUserWasFound, func(u *models.User) bool {
		u.OTP = &otp
		return true
	})
}

func (r *memoryUserRepository) RedeemOTP(_ context.Context, userID int64, otp string) error {
	return r.update(userID, store.ErrChallengeNotRedeemed, func(u *models.User) bool {
		if u.OTP == nil || *u.OTP != otp || u.IsVerified != models.Pending {
			return false
		}
		u.IsVerified = models.Verified
		u.OTP = nil
		return true
	})
}

func (r *memoryUserRepository) SetVerificationState(_ context.Context, userID int64, state models.VerificationState) error {
	return r.update(userID, store.ErrNoUserWasFound, func(u *models.User) bool {
		u.IsVerified = state
		u.OTP = nil
		return true
	})
}

func (r *memoryUserRepository) SetResetToken(_ context.Context, userID int64, token string) error {
	return r.update(userID, store.ErrNoUserWasFound, func(u *models.User) bool {
		u.ResetToken = &token
		return true
	})
}

func (r *memoryUserRepository) ResetPassword(_ context.Context, token, passwordHash string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			u.Password = passwordHash
			u.ResetToken = nil
			u.TokenVersion++
			r.users[id] = u
			return id, nil
		}
	}
	return 0, store.ErrResetTokenNotFound
}

func (r *memoryUserRepository) GetTokenVersion(_ context.Context, userID int64) (int, error) {
	u, err := r.FindUserByID(context.Background(), userID)
	return u.TokenVersion, err
}

func (r *memoryUserRepository) UpdateUser(context.Context, models.UserUpdate) (models.User, error) {
	return models.User{}, nil
}

func (r *memoryUserRepository) DeleteUser(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return store.ErrNoUserWasFound
	}
	delete(r.users, userID)
	return nil
}

func (r *memoryUserRepository) GetUserStats(context.Context) (models.UserStats, error) {
	return models.UserStats{}, nil
}

func (r *memoryUserRepository) update(userID int64, notFound error, fn func(u *models.User) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return notFound
	}
	if !fn(&u) {
		return notFound
	}
	r.users[userID] = u
	return nil
}

func (r *memoryUserRepository) state(userID int64) models.VerificationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[userID].IsVerified
}

// recordingMailer captures outgoing mail.
type recordingMailer struct {
	mu   sync.Mutex
	sent []models.MailMessage
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg models.MailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// recordingNotifier captures queued notifications.
type recordingNotifier struct {
	mu   sync.Mutex
	msgs []models.MailMessage
}

func (n *recordingNotifier) Notify(_ context.Context, msg models.MailMessage) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return true
}

// sequenceSecrets hands out predictable codes.
type sequenceSecrets struct {
	codes []string
	next  int
}

func (s *sequenceSecrets) OTP() (string, error) {
	code := s.codes[s.next%len(s.codes)]
	s.next++
	return code, nil
}

func (s *sequenceSecrets) ResetToken() (string, error) {
	return "reset-token", nil
}
