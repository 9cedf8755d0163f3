package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Z3ron7/server/internal/adapter"
	"github.com/Z3ron7/server/internal/config"
	"github.com/Z3ron7/server/internal/crypto"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/mock"
	"github.com/Z3ron7/server/internal/store"
	"github.com/Z3ron7/server/internal/validators"
	"github.com/Z3ron7/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authMocks struct {
	users    *mock.MockUserRepository
	hasher   *mock.MockPasswordHasher
	secrets  *mock.MockSecretGenerator
	tokens   *mock.MockTokenService
	images   *mock.MockImageStore
	mailer   *mock.MockMailer
	notifier *mock.MockNotifier
}

// newTestAuthSvc creates an authService wired to mocks and a real validator.
func newTestAuthSvc(t *testing.T, cfg config.App) (*authService, authMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := authMocks{
		users:    mock.NewMockUserRepository(ctrl),
		hasher:   mock.NewMockPasswordHasher(ctrl),
		secrets:  mock.NewMockSecretGenerator(ctrl),
		tokens:   mock.NewMockTokenService(ctrl),
		images:   mock.NewMockImageStore(ctrl),
		mailer:   mock.NewMockMailer(ctrl),
		notifier: mock.NewMockNotifier(ctrl),
	}

	svc := NewAuthService(AuthDeps{
		Users:     m.users,
		Hasher:    m.hasher,
		Secrets:   m.secrets,
		Tokens:    m.tokens,
		Images:    m.images,
		Mailer:    m.mailer,
		Notifier:  m.notifier,
		Validator: validators.NewStructValidator(),
	}, cfg, logger.Nop()).(*authService)

	return svc, m
}

func registration() models.User {
	return models.User{
		Username: "ann@example.com",
		Password: "secret1",
		Name:     "Ann",
		Gender:   "female",
		SchoolID: "S-1",
		Status:   models.StatusStudent,
		Role:     models.RoleAdmin,
	}
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	svc, m := newTestAuthSvc(t, config.App{AdminEmail: "admin@example.com"})
	ctx := context.Background()

	gomock.InOrder(
		m.hasher.EXPECT().Hash("secret1").Return("$2a$hash", nil),
		m.users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "$2a$hash", u.Password)
				assert.Equal(t, models.RoleExamTaker, u.Role, "role must come from status")
				assert.Equal(t, models.Pending, u.IsVerified)
				u.UserID = 7
				return u, nil
			},
		),
		m.notifier.EXPECT().Notify(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, msg models.MailMessage) bool {
				assert.Equal(t, "admin@example.com", msg.To)
				assert.Equal(t, "New Exam-taker Registration", msg.Subject)
				return true
			},
		),
	)

	user, err := svc.Register(ctx, registration(), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(7), user.UserID)
	assert.Empty(t, user.Password)
}

func TestAuthService_Register_AdminStatusGetsAdminRole(t *testing.T) {
	svc, m := newTestAuthSvc(t, config.App{})
	u := registration()
	u.Status = models.StatusAdmin

	m.hasher.EXPECT().Hash(gomock.Any()).Return("h", nil)
	m.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, models.RoleAdmin, u.Role)
			return u, nil
		},
	)

	_, err := svc.Register(context.Background(), u, nil)
	require.NoError(t, err)
}

func TestAuthService_Register_WithImage(t *testing.T) {
	svc, m := newTestAuthSvc(t, config.App{})
	image := &models.ImageUpload{Filename: "me.png", ContentType: "image/png", Body: strings.NewReader("png")}

	m.hasher.EXPECT().Hash(gomock.Any()).Return("h", nil)
	m.images.EXPECT().Upload(gomock.Any(), "me.png", image.Body, "image/png").Return("https://cdn/profiles/x.png", nil)
	m.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "https://cdn/profiles/x.png", u.Image)
			return u, nil
		},
	)

	_, err := svc.Register(context.Background(), registration(), image)
	require.NoError(t, err)
}

func TestAuthService_Register_ImageFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"unsupported", adapter.ErrUnsupportedImage, ErrValidation},
		{"store down", adapter.ErrImageUpload, ErrDependency},
		{"disabled", adapter.ErrImageStoreDisabled, ErrDependency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestAuthSvc(t, config.App{})
			m.hasher.EXPECT().Hash(gomock.Any()).Return("h", nil)
			m.images.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", tt.err)

			_, err := svc.Register(context.Background(), registration(), &models.ImageUpload{Body: strings.NewReader("")})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, m := newTestAuthSvc(t, config.App{})

	m.hasher.EXPECT().Hash(gomock.Any()).Return("h", nil)
	m.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrLoginAlreadyExists)

	_, err := svc.Register(context.Background(), registration(), nil)

	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Register_DuplicateSchoolID(t *testing.T) {
	svc, m := newTestAuthSvc(t, config.App{})

	m.hasher.EXPECT().Hash(gomock.Any()).Return("h", nil)
	m.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrSchoolIDAlreadyExists)

	_, err := svc.Register(context.Background(), registration(), nil)

	assert.ErrorIs(t, err, ErrSchoolIDTaken)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	svc, _ := newTestAuthSvc(t, config.App{})
	u := registration()
	u.Username = "not-an-email"

	_, err := svc.Register(context.Background(), u, nil)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_Register_MultiBytePasswordOverBcryptLimit(t *testing.T) {
	svc, _ := newTestAuthSvc(t, config.App{})
	u := registration()
	u.Password = strings.Repeat("é", 40)

	_, err := svc.Register(context.Background(), u, nil)

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrPasswordHashing)
}

func TestAuthService_Register_HasherRejectsLongPassword(t *testing.T) {
	svc, m := newTestAuthSvc(t, config.App{})
	m.hasher.EXPECT().Hash("secret1").Return("", crypto.ErrPasswordTooLong)

	_, err := svc.Register(context.Background(), registration(), nil)

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrDependency)
}

// ── Login ────────────────────────────────────────────────────────────────────

func storedUser(state models.VerificationState) models.User {
	return models.User{
		UserID:     3,
		Username:   "ann@example.com",
		Password:   "$2a$hash",
		Name:       "Ann",
		Status:     models.StatusStudent,
		Role:       models.RoleAdmin,
		IsVerified: state,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, m := newTestAuthSvc(t, config.App{})
	ctx := context.Background()

	m.users.EXPECT().FindUserByUsername(ctx, "ann@example.com").Return(storedUser(models.Verified), nil)
	m.hasher.EXPECT().Compare("$2a$hash", "secret1").Return(nil)
	m.tokens.EXPECT().Issue(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.Token, error) {
			assert.Equal(t, models.RoleExamTaker, u.Role, "role re-derived from status")
			return models.Token{SignedString: "signed"}, nil
		},
	)

	resp, err := svc.Login(ctx, models.Credentials{Username: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, models.StatusLoginSucceeded, resp.Status)
	assert.Equal(t, "signed", resp.Token)
	assert.Equal(t, int64(3), resp.UserID)
	assert.Equal(t, models.RoleExamTaker, resp.Role)
	assert.Equal(t, models.Verified, resp.IsVerified)
}

func TestAuthService_Login_UnverifiedFailsRegardlessOfPassword(t *testing.T) {
	for _, state := range []models.VerificationState{models.Pending, models.Rejected} {
		for _, compareErr := range []error{nil, crypto.ErrPasswordMismatch} {
			t.Run(state.String(), func(t *testing.T) {
				svc, m := newTestAuthSvc(t, config.App{})

				m.users.EXPECT().FindUserByUsername(gomock.Any(), gomock.Any()).Return(storedUser(state), nil)
				m.hasher.EXPECT().Compare(gomock.Any(), gomock.Any()).Return(compareErr)

				_, err := svc.Login(context.Background(), models.Credentials{Username: "ann@example.com", Password: "whatever"})

				assert.ErrorIs(t, err, ErrAuthentication)
			})
		}
	}
}

func TestAuthService_Login_PendingWithRightPassword(t *testing.T) {
	svc, m := newTestAuthSvc(t, config.App{})

	m.users.EXPECT().FindUserByUsername(gomock.Any(), gomock.Any()).Return(storedUser(models.Pending), nil)
	m.hasher.EXPECT().Compare(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Login(context.Background(), models.Credentials{Username: "ann@example.com", Password: "secret1"})

	assert.ErrorIs(t, err, ErrAccountNotVerified)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, m := newTestAuthSvc(t, config.App{})

	m.users.EXPECT().FindUserByUsername(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.Login(context.Background(), models.Credentials{Username: "x@example.com", Password: "p"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc, _ := newTestAuthSvc(t, config.App{})

	_, err := svc.Login(context.Background(), models.Credentials{Username: "x@example.com"})

	assert.ErrorIs(t, err, ErrValidation)
}

// ── Password recovery ────────────────────────────────────────────────────────

func TestAuthService_ForgotPassword_StoresDigestAndMailsToken(t *testing.T) {
	svc, m := newTestAuthSvc(t, config.App{PublicURL: "https://hub.example.com"})
	ctx := context.Background()

	m.users.EXPECT().FindUserByUsername(ctx, "ann@example.com").Return(storedUser(models.Verified), nil)
	m.secrets.EXPECT().ResetToken().Return("tok123", nil)
	m.users.EXPECT().SetResetToken(ctx, int64(3), crypto.HashToken("tok123")).Return(nil)
	m.mailer.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, msg models.MailMessage) error {
			assert.Equal(t, "ann@example.com", msg.To)
			assert.Contains(t, msg.Body, "https://hub.example.com/reset-password?token=tok123")
			return nil
		},
	)

	require.NoError(t, svc.ForgotPassword(ctx, models.ForgotPasswordRequest{Username: "ann@example.com"}))
}

func TestAuthService_ForgotPassword_UnknownUser(t *testing.T) {
	svc, m := newTestAuthSvc(t, config.App{})

	m.users.EXPECT().FindUserByUsername(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrNoUserWasFound)

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Username: "x@example.com"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthService_ForgotPassword_MailFailure(t *testing.T) {
	svc, m := newTestAuthSvc(t, config.App{})

	m.users.EXPECT().FindUserByUsername(gomock.Any(), gomock.Any()).Return(storedUser(models.Verified), nil)
	m.secrets.EXPECT().ResetToken().Return("tok", nil)
	m.users.EXPECT().SetResetToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(adapter.ErrMailDelivery)

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Username: "ann@example.com"})

	assert.ErrorIs(t, err, ErrMailDispatch)
}

func TestAuthService_ResetPassword(t *testing.T) {
	svc, m := newTestAuthSvc(t, config.App{})
	ctx := context.Background()

	m.hasher.EXPECT().Hash("newpass1").Return("newhash", nil)
	m.users.EXPECT().ResetPassword(ctx, crypto.HashToken("tok"), "newhash").Return(int64(3), nil)

	require.NoError(t, svc.ResetPassword(ctx, models.ResetPasswordRequest{Token: "tok", Password: "newpass1"}))
}

func TestAuthService_ResetPassword_PasswordOverBcryptLimit(t *testing.T) {
	svc, _ := newTestAuthSvc(t, config.App{})

	err := svc.ResetPassword(context.Background(), models.ResetPasswordRequest{Token: "tok", Password: strings.Repeat("é", 40)})

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrDependency)
}

func TestAuthService_HashPassword_RealHasherTooLong(t *testing.T) {
	svc, _ := newTestAuthSvc(t, config.App{})
	svc.hasher = crypto.NewBcryptHasher(4)

	_, err := svc.hashPassword(strings.Repeat("é", 40))

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_ResetPassword_UnknownToken(t *testing.T) {
	svc, m := newTestAuthSvc(t, config.App{})

	m.hasher.EXPECT().Hash(gomock.Any()).Return("h", nil)
	m.users.EXPECT().ResetPassword(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), store.ErrResetTokenNotFound)

	err := svc.ResetPassword(context.Background(), models.ResetPasswordRequest{Token: "tok", Password: "newpass1"})

	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

// ── Authenticate ─────────────────────────────────────────────────────────────

func TestAuthService_Authenticate(t *testing.T) {
	claims := models.Claims{UserID: 3, Name: "Ann", Role: models.RoleAdmin, IsVerified: models.Verified, TokenVersion: 2}

	t.Run("stateless", func(t *testing.T) {
		svc, m := newTestAuthSvc(t, config.App{})
		m.tokens.EXPECT().Verify(gomock.Any(), "tok").Return(claims, nil)

		identity, err := svc.Authenticate(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, claims.Identity(), identity)
	})

	t.Run("empty token", func(t *testing.T) {
		svc, _ := newTestAuthSvc(t, config.App{})

		_, err := svc.Authenticate(context.Background(), "")
		assert.ErrorIs(t, err, ErrAuthentication)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc, m := newTestAuthSvc(t, config.App{})
		m.tokens.EXPECT().Verify(gomock.Any(), "tok").Return(models.Claims{}, ErrTokenInvalid)

		_, err := svc.Authenticate(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrAuthentication)
	})

	t.Run("version matches", func(t *testing.T) {
		svc, m := newTestAuthSvc(t, config.App{TokenVersionCheck: true})
		m.tokens.EXPECT().Verify(gomock.Any(), "tok").Return(claims, nil)
		m.users.EXPECT().GetTokenVersion(gomock.Any(), int64(3)).Return(2, nil)

		_, err := svc.Authenticate(context.Background(), "tok")
		assert.NoError(t, err)
	})

	t.Run("version bumped", func(t *testing.T) {
		svc, m := newTestAuthSvc(t, config.App{TokenVersionCheck: true})
		m.tokens.EXPECT().Verify(gomock.Any(), "tok").Return(claims, nil)
		m.users.EXPECT().GetTokenVersion(gomock.Any(), int64(3)).Return(3, nil)

		_, err := svc.Authenticate(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})
}

// ── End to end over the in-memory store ──────────────────────────────────────

func TestScenario_RegisterVerifyLogin(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepository()
	mailer := &recordingMailer{}
	notifier := &recordingNotifier{}
	secrets := crypto.NewSecretGenerator(7)
	cfg := config.App{
		TokenSignKey:  "test-key",
		TokenIssuer:   "exam-hub",
		TokenDuration: 72 * time.Hour,
		PublicURL:     "https://hub.example.com",
		AdminEmail:    "admin@example.com",
	}
	tokens := NewTokenService(cfg, logger.Nop())

	auth := NewAuthService(AuthDeps{
		Users:     users,
		Hasher:    crypto.NewBcryptHasher(4),
		Secrets:   secrets,
		Tokens:    tokens,
		Mailer:    mailer,
		Notifier:  notifier,
		Validator: validators.NewStructValidator(),
	}, cfg, logger.Nop())
	verification := NewVerificationService(users, secrets, mailer, notifier, cfg, logger.Nop())

	registered, err := auth.Register(ctx, registration(), nil)
	require.NoError(t, err)
	require.Len(t, notifier.msgs, 1)

	credentials := models.Credentials{Username: "ann@example.com", Password: "secret1"}
	_, err = auth.Login(ctx, credentials)
	require.ErrorIs(t, err, ErrAccountNotVerified)

	code, err := verification.IssueChallenge(ctx, registered.UserID)
	require.NoError(t, err)
	assert.Len(t, code, 14)
	assert.Equal(t, strings.ToUpper(code), code)

	require.NoError(t, verification.Redeem(ctx, registered.UserID, code))

	resp, err := auth.Login(ctx, credentials)
	require.NoError(t, err)

	identity, err := auth.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, identity.UserID)
	assert.Equal(t, models.Verified, identity.IsVerified)
	assert.Equal(t, models.RoleExamTaker, identity.Role)
}

func TestScenario_ResetPasswordBumpsVersion(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUserRepository()
	mailer := &recordingMailer{}
	cfg := config.App{TokenSignKey: "k", TokenIssuer: "i", TokenDuration: time.Hour, TokenVersionCheck: true}
	hasher := crypto.NewBcryptHasher(4)

	auth := NewAuthService(AuthDeps{
		Users:     users,
		Hasher:    hasher,
		Secrets:   &sequenceSecrets{codes: []string{"X"}},
		Tokens:    NewTokenService(cfg, logger.Nop()),
		Mailer:    mailer,
		Notifier:  &recordingNotifier{},
		Validator: validators.NewStructValidator(),
	}, cfg, logger.Nop())

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	_, err = users.CreateUser(ctx, models.User{Username: "ann@example.com", Password: hash, SchoolID: "S", Status: models.StatusStudent, IsVerified: models.Verified})
	require.NoError(t, err)

	before, err := auth.Login(ctx, models.Credentials{Username: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, auth.ForgotPassword(ctx, models.ForgotPasswordRequest{Username: "ann@example.com"}))
	require.NoError(t, auth.ResetPassword(ctx, models.ResetPasswordRequest{Token: "reset-token", Password: "newpass1"}))

	// token is single use
	err = auth.ResetPassword(ctx, models.ResetPasswordRequest{Token: "reset-token", Password: "other12"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	_, err = auth.Authenticate(ctx, before.Token)
	assert.True(t, errors.Is(err, ErrTokenRevoked))

	_, err = auth.Login(ctx, models.Credentials{Username: "ann@example.com", Password: "newpass1"})
	assert.NoError(t, err)
}
