package service

import (
	"context"
	"errors"
	"fmt"
	"survey_backend/internal/config"
	"survey_backend/internal/model"
	"survey_backend/internal/util"
	"survey_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo UserStore
	Denylist TokenDenylist
	Cfg      *config.Config
}

func NewAuthService(userRepo UserStore, denylist TokenDenylist, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Denylist: denylist,
		Cfg:      cfg,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	// 机器人用户没有可用密码
	if user.TgFlag || user.Password == model.TelegramPasswordStub {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	logger.Log.Info("user logged in", zap.String("username", username))
	return token, user, nil
}

// ParseToken 校验签名、有效期以及是否已注销
func (s *AuthService) ParseToken(ctx context.Context, token string) (*util.Claims, error) {
	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}
	if s.Denylist != nil && claims.ID != "" {
		revoked, err := s.Denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, fmt.Errorf("%w: token has been revoked", util.ErrInvalidToken)
		}
	}
	return claims, nil
}

func (s *AuthService) Logout(ctx context.Context, claims *util.Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return util.ErrInvalidToken
	}
	if s.Denylist == nil {
		return nil
	}
	if err := s.Denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}
	logger.Log.Info("user logged out", zap.String("username", claims.Username))
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirmPassword string) error {
	claims, err := s.ParseToken(ctx, token)
	if err != nil {
		return err
	}
	if password != confirmPassword {
		return util.ErrPasswordMismatch
	}
	if len(password) < util.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", util.ErrValidation, util.MinPasswordLength)
	}

	user, err := s.UserRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return notFound(err, util.ErrUserNotFound)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.UserRepo.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return err
	}
	// 修改密码后当前 token 作废
	if err := s.Logout(ctx, claims); err != nil && !errors.Is(err, util.ErrInvalidToken) {
		logger.Log.Warn("failed to revoke token after password reset", zap.Error(err))
	}
	logger.Log.Info("password reset", zap.String("username", user.Username))
	return nil
}
