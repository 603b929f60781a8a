package repository

import (
	"context"
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) FindByUserAndSurvey(ctx context.Context, userID, surveyID uint) (*model.Result, error) {
	var result model.Result
	err := r.DB.WithContext(ctx).Where("user_id = ? AND survey_id = ?", userID, surveyID).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepository) FindByID(ctx context.Context, id uint) (*model.Result, error) {
	var result model.Result
	err := r.DB.WithContext(ctx).First(&result, id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepository) ExistsByUserAndSurvey(ctx context.Context, userID, surveyID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Result{}).
		Where("user_id = ? AND survey_id = ?", userID, surveyID).
		Count(&count).Error
	return count > 0, err
}

// FindByGroupID 导出用：分组下所有问题的答题结果
func (r *ResultRepository) FindByGroupID(ctx context.Context, groupID uint) ([]model.Result, error) {
	var results []model.Result
	db := r.DB.WithContext(ctx)
	surveyIDs := db.Model(&model.Survey{}).Select("id").Where("survey_group_id = ?", groupID)
	err := db.
		Where("survey_id IN (?)", surveyIDs).
		Order("survey_id asc").Order("user_id asc").
		Find(&results).Error
	return results, err
}

func (r *ResultRepository) Create(ctx context.Context, result *model.Result) error {
	return r.DB.WithContext(ctx).Create(result).Error
}

func (r *ResultRepository) Update(ctx context.Context, result *model.Result) error {
	return r.DB.WithContext(ctx).Save(result).Error
}

func (r *ResultRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Result{}, id).Error
}
