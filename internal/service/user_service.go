package service

import (
	"context"
	"errors"
	"fmt"
	"survey_backend/internal/model"
	"survey_backend/internal/util"
	"survey_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService 处理用户相关的业务逻辑
type UserService struct {
	UserRepo UserStore
}

// NewUserService 创建一个新的用户服务实例
func NewUserService(userRepo UserStore) *UserService {
	return &UserService{
		UserRepo: userRepo,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.UserRepo.FindAll(ctx)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", username, notFound(err, util.ErrUserNotFound))
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.UserRepo.Delete(ctx, user); err != nil {
		return err
	}
	logger.Log.Info("user deleted", zap.String("username", username))
	return nil
}

// ResolveTelegramUser 按 chat id 查找机器人用户，首次接触时创建
func (s *UserService) ResolveTelegramUser(ctx context.Context, profile model.TelegramProfile) (*model.User, error) {
	username := profile.LocalUsername()
	user, err := s.UserRepo.FindByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &model.User{
		Username:    username,
		Password:    model.TelegramPasswordStub,
		TgFlag:      true,
		TgFirstName: profile.FirstName,
		TgLastName:  profile.LastName,
		TgUsername:  profile.Username,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create telegram user %s: %w", username, err)
	}
	logger.Log.Info("telegram user created", zap.String("username", username), zap.Uint("userID", user.ID))
	return user, nil
}
