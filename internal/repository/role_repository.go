package repository

import (
	"context"
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type RoleRepository struct {
	DB *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) Create(ctx context.Context, role *model.Role) error {
	return r.DB.WithContext(ctx).Create(role).Error
}

// FindOrCreate 注册用户时按名称获取角色，不存在则创建
func (r *RoleRepository) FindOrCreate(ctx context.Context, name string) (*model.Role, error) {
	role := model.Role{Name: name}
	err := r.DB.WithContext(ctx).Where(model.Role{Name: name}).FirstOrCreate(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}
