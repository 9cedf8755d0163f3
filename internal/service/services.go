package service

import (
	"github.com/Z3ron7/server/internal/adapter"
	"github.com/Z3ron7/server/internal/config"
	"github.com/Z3ron7/server/internal/crypto"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/store"
	"github.com/Z3ron7/server/internal/validators"
	"github.com/Z3ron7/server/models"
)

// Services aggregates every service the transport layer depends on.
type Services struct {
	AuthService         AuthService
	TokenService        TokenService
	VerificationService VerificationService
	UserService         UserService
	QuestionService     QuestionService
	CatalogService      CatalogService
	ExamService         ExamService
	DashboardService    DashboardService
	AppInfoService      AppInfoService
}

// Integrations groups the outbound collaborators shared by services.
type Integrations struct {
	Mailer   adapter.Mailer
	Notifier Notifier
	Images   adapter.ImageStore
}

func NewServices(storages *store.Storages, integrations Integrations, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	validator := validators.NewStructValidator()
	hasher := crypto.NewBcryptHasher(cfg.App.PasswordCost)
	secrets := crypto.NewSecretGenerator(cfg.App.OTPBytes)
	tokens := NewTokenService(cfg.App, logger)

	appInfo, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService: NewAuthService(AuthDeps{
			Users:     storages.UserRepository,
			Hasher:    hasher,
			Secrets:   secrets,
			Tokens:    tokens,
			Images:    integrations.Images,
			Mailer:    integrations.Mailer,
			Notifier:  integrations.Notifier,
			Validator: validator,
		}, cfg.App, logger),
		TokenService:        tokens,
		VerificationService: NewVerificationService(storages.UserRepository, secrets, integrations.Mailer, integrations.Notifier, cfg.App, logger),
		UserService:         NewUserService(storages.UserRepository, integrations.Images, validator, logger),
		QuestionService:     NewQuestionService(storages.QuestionRepository, validator, logger),
		CatalogService:      NewCatalogService(storages.CatalogRepository, validator, logger),
		ExamService:         NewExamService(storages.ExamRepository, validator, logger),
		DashboardService:    NewDashboardService(storages.DashboardRepository, logger),
		AppInfoService:      appInfo,
	}, nil
}
