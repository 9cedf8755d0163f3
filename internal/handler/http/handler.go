package http

import (
	"github.com/Z3ron7/server/internal/config"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/service"
	"github.com/Z3ron7/server/internal/utils"
	"golang.org/x/time/rate"
)

const (
	// authRateLimit and authRateBurst bound each client IP on the public
	// register, login and forgot-password endpoints.
	authRateLimit = rate.Limit(5)
	authRateBurst = 10

	// maxUploadSize caps multipart bodies carrying a profile image.
	maxUploadSize = 10 << 20

	tokenCookieName = "token"
)

type Handler struct {
	services *service.Services
	cfg      config.Server
	traceIDs *utils.UUIDGenerator
	limiter  *RateLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		traceIDs: utils.NewUUIDGenerator(),
		limiter:  NewRateLimiter(authRateLimit, authRateBurst),
		logger:   logger,
	}
}
