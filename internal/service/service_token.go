package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Z3ron7/server/internal/config"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/utils"
	"github.com/Z3ron7/server/models"
)

// tokenService signs credentials with HMAC-SHA256. The payload is a
// snapshot of the account; nothing is refreshed until the next login.
type tokenService struct {
	signKey  string
	issuer   string
	duration time.Duration
	now      func() time.Time

	logger *logger.Logger
}

// NewTokenService constructs a [TokenService] from the token settings in cfg.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		signKey:  cfg.TokenSignKey,
		issuer:   cfg.TokenIssuer,
		duration: cfg.TokenDuration,
		now:      time.Now,
		logger:   logger,
	}
}

// Issue implements [TokenService].
func (s *tokenService) Issue(ctx context.Context, user models.User) (models.Token, error) {
	claims := models.Claims{
		UserID:       user.UserID,
		Name:         user.Name,
		Image:        user.Image,
		Role:         user.Role,
		IsVerified:   user.IsVerified,
		SchoolID:     user.SchoolID,
		TokenVersion: user.TokenVersion,
	}

	token, err := utils.GenerateJWTToken(claims, s.issuer, s.duration, s.signKey, s.now())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenService.Issue").Int64("user_id", user.UserID).Msg("error issuing token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIssue, err)
	}

	return token, nil
}

// Verify implements [TokenService]. Bad signature, wrong issuer, expiry and
// malformed input all collapse into [ErrTokenInvalid].
func (s *tokenService) Verify(ctx context.Context, tokenString string) (models.Claims, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.signKey, s.issuer, s.now())
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*tokenService.Verify").Msg("token rejected")
		return models.Claims{}, ErrTokenInvalid
	}

	return *token.Claims, nil
}
