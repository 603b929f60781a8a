package repository

import (
	"context"
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Preload("Roles").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Preload("Roles").Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).Preload("Roles").Order("id asc").Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, hashed string) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("password", hashed).
		Error
}

func (r *UserRepository) AddRole(ctx context.Context, user *model.User, role *model.Role) error {
	return r.DB.WithContext(ctx).Model(user).Association("Roles").Append(role)
}

func (r *UserRepository) RemoveRole(ctx context.Context, user *model.User, role *model.Role) error {
	return r.DB.WithContext(ctx).Model(user).Association("Roles").Delete(role)
}

// Delete 同时清理角色关联和该用户的答题结果
func (r *UserRepository) Delete(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Association("Roles").Clear(); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.Result{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, user.ID).Error
	})
}
