package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/dto"
	"vessel-orders/internal/entities"
	"vessel-orders/internal/repositories"
	"vessel-orders/pkg/config"
	apperrors "vessel-orders/pkg/errors"
	"vessel-orders/pkg/service"
	"vessel-orders/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokensDTO, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokensDTO, error)
	Me(ctx context.Context) (*dto.UserDTO, error)
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	jwt       service.JWTService
	identity  *IdentityLoader
	logger    *zap.Logger
	cfg       config.AuthConfig
	domain    string
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwt service.JWTService,
	identity *IdentityLoader,
	logger *zap.Logger,
	cfg config.AuthConfig,
	emailDomain string,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		jwt:       jwt,
		identity:  identity,
		logger:    logger,
		cfg:       cfg,
		domain:    emailDomain,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokensDTO, error) {
	if !(authz.Identity{Email: payload.Email}).HasEmailDomain(s.domain) {
		s.logger.Info("login refused for foreign domain", zap.String("email", payload.Email))
		return nil, apperrors.NewHttpError(http.StatusForbidden, authz.ReasonEmailDomain, nil)
	}

	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.checkLockout(ctx, user.ID); err != nil {
		s.logger.Warn("login attempt on locked account", zap.String("userID", user.ID.String()))
		return nil, err
	}
	if err := utils.ComparePasswords(user.PasswordHash, payload.Password); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			s.logger.Error("stored password digest is unusable", zap.String("userID", user.ID.String()), zap.Error(err))
			return nil, apperrors.ErrInvalidCredentials
		}
		s.handleFailedLoginAttempt(ctx, user.ID)
		return nil, err
	}
	s.resetLoginAttempts(ctx, user.ID)

	s.logger.Info("user logged in", zap.String("userID", user.ID.String()))
	return s.issue(user)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokensDTO, error) {
	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context) (*dto.UserDTO, error) {
	user, _, err := s.identity.Actor(ctx)
	if err != nil {
		return nil, err
	}
	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *AuthService) issue(user *entities.User) (*dto.TokensDTO, error) {
	access, refresh, err := s.jwt.GenerateTokens(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}
	return &dto.TokensDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwt.GetAccessTokenTTL().Seconds()),
		User:         dto.NewUserDTO(user),
	}, nil
}

func lockoutKey(userID uuid.UUID) string  { return "lockout:" + userID.String() }
func attemptsKey(userID uuid.UUID) string { return "login_attempts:" + userID.String() }

func (s *AuthService) checkLockout(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.cacheRepo.Get(ctx, lockoutKey(userID)); err == nil {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID uuid.UUID) {
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey(userID))
	if err != nil {
		s.logger.Error("count failed login", zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, attemptsKey(userID), s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		s.logger.Warn("account locked after failed logins", zap.String("userID", userID.String()), zap.Int64("attempts", attempts))
		_ = s.cacheRepo.Set(ctx, lockoutKey(userID), "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey(userID))
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID uuid.UUID) {
	_ = s.cacheRepo.Del(ctx, attemptsKey(userID), lockoutKey(userID))
}
