package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"survey_backend/internal/model"
	"survey_backend/internal/util"
	"survey_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegistrationService struct {
	UserRepo UserStore
	RoleRepo RoleStore
}

func NewRegistrationService(userRepo UserStore, roleRepo RoleStore) *RegistrationService {
	return &RegistrationService{UserRepo: userRepo, RoleRepo: roleRepo}
}

func (s *RegistrationService) userExists(ctx context.Context, username string) (bool, error) {
	_, err := s.UserRepo.FindByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (s *RegistrationService) Register(ctx context.Context, username, password string, roles ...string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password must not be empty", util.ErrValidation)
	}
	if len(password) < util.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", util.ErrValidation, util.MinPasswordLength)
	}

	exists, err := s.userExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if len(roles) == 0 {
		roles = []string{model.RoleUser}
	}
	user := &model.User{Username: username, Password: string(hashedPassword)}
	for _, name := range roles {
		role, err := s.RoleRepo.FindOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		user.Roles = append(user.Roles, *role)
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.Log.Info("user registered", zap.String("username", username), zap.Strings("roles", roles))
	return user, nil
}

// EnsureAdmin 启动时按配置创建初始管理员，已存在则跳过
func (s *RegistrationService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := s.Register(ctx, username, password, model.RoleUser, model.RoleAdmin)
	if errors.Is(err, util.ErrUserExists) {
		return nil
	}
	return err
}
