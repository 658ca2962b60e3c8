package service

import (
	"context"
	"strings"
	"time"

	"travel-ticket-api/core/cache"
	"travel-ticket-api/core/config"
	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/errors"
	"travel-ticket-api/core/logger"
	"travel-ticket-api/core/utils"
	"travel-ticket-api/modules/auth/dto"
)

type AuthService struct {
	users  map[string]config.User
	secret []byte
	cache  cache.Cache
	now    func() time.Time
}

// NewAuthService indexes the configured users by lower-cased email. Without a
// session secret a random one is generated, so sessions end on restart.
func NewAuthService(cfg config.AuthConfig, cache cache.Cache) *AuthService {
	users := make(map[string]config.User, len(cfg.Users))
	for _, u := range cfg.Users {
		users[strings.ToLower(u.Email)] = u
	}

	secret := cfg.SessionSecret
	if secret == "" {
		logger.Warn("AuthService:New:GeneratedSessionSecret", "reason", "AUTH_SESSION_SECRET not set")
		secret = utils.GenerateRandomString(48)
	}

	return &AuthService{
		users:  users,
		secret: []byte(secret),
		cache:  cache,
		now:    time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.Session, error) {
	user, ok := s.users[strings.ToLower(strings.TrimSpace(req.Email))]
	if !ok {
		logger.Warn("AuthService:Login:UnknownEmail", "email", req.Email)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Email not found", nil)
	}
	if !utils.ComparePassword(user.PasswordHash, req.Password) {
		logger.Warn("AuthService:Login:WrongPassword", "email", user.Email)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Incorrect password", nil)
	}

	token, claims, err := utils.GenerateSessionToken(s.secret, user.Name, user.Email, constants.SessionTTL, s.now())
	if err != nil {
		logger.Error("AuthService:Login:GenerateSessionToken", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create session", err)
	}

	logger.Info("AuthService:Login:Success", "email", user.Email)
	return &dto.Session{
		Token:     token,
		Name:      user.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// CurrentUser returns the claims of a valid session that has not been logged out.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*utils.SessionClaims, error) {
	if token == "" {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Not authenticated", nil)
	}

	claims, err := utils.ValidateAndParseToken(s.secret, token)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid session", err)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	revoked, err := s.cache.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		logger.Error("AuthService:CurrentUser:IsTokenBlacklisted", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check session", err)
	}
	if revoked {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Session has been logged out", nil)
	}
	return claims, nil
}

// Logout revokes the token until it would have expired anyway. Invalid or
// missing tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := utils.ValidateAndParseToken(s.secret, token)
	if err != nil {
		return nil
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := s.cache.AddToTokenBlacklist(ctx, claims.ID, ttl); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist", "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to add token to blacklist", err)
	}
	return nil
}
