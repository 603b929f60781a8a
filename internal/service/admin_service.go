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
	"gorm.io/gorm"
)

type AdminService struct {
	UserRepo UserStore
	RoleRepo RoleStore
}

func NewAdminService(userRepo UserStore, roleRepo RoleStore) *AdminService {
	return &AdminService{UserRepo: userRepo, RoleRepo: roleRepo}
}

func (s *AdminService) lookup(ctx context.Context, username, roleName string) (*model.User, *model.Role, error) {
	user, err := s.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf("user %q: %w", username, notFound(err, util.ErrUserNotFound))
	}
	role, err := s.RoleRepo.FindByName(ctx, roleName)
	if err != nil {
		return nil, nil, fmt.Errorf("role %q: %w", roleName, notFound(err, util.ErrRoleNotFound))
	}
	return user, role, nil
}

func (s *AdminService) AddRoleToUser(ctx context.Context, username, roleName string) error {
	user, role, err := s.lookup(ctx, username, roleName)
	if err != nil {
		return err
	}
	if user.HasRole(role.Name) {
		return nil
	}
	logger.Log.Info("adding role to user", zap.String("username", username), zap.String("role", roleName))
	return s.UserRepo.AddRole(ctx, user, role)
}

func (s *AdminService) RemoveRoleFromUser(ctx context.Context, username, roleName string) error {
	user, role, err := s.lookup(ctx, username, roleName)
	if err != nil {
		return err
	}
	logger.Log.Info("removing role from user", zap.String("username", username), zap.String("role", roleName))
	return s.UserRepo.RemoveRole(ctx, user, role)
}

func (s *AdminService) CreateRole(ctx context.Context, roleName string) (*model.Role, error) {
	roleName = strings.ToUpper(strings.TrimSpace(roleName))
	if roleName == "" {
		return nil, fmt.Errorf("%w: role name must not be empty", util.ErrValidation)
	}
	_, err := s.RoleRepo.FindByName(ctx, roleName)
	if err == nil {
		return nil, util.ErrRoleExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := &model.Role{Name: roleName}
	if err := s.RoleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}
