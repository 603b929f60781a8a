package repository

import (
	"context"
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type SurveyGroupRepository struct {
	DB *gorm.DB
}

func NewSurveyGroupRepository(db *gorm.DB) *SurveyGroupRepository {
	return &SurveyGroupRepository{DB: db}
}

func (r *SurveyGroupRepository) FindAll(ctx context.Context) ([]model.SurveyGroup, error) {
	var groups []model.SurveyGroup
	err := r.DB.WithContext(ctx).Order("id asc").Find(&groups).Error
	return groups, err
}

// FindRecent 按创建时间倒序取最近的若干个分组
func (r *SurveyGroupRepository) FindRecent(ctx context.Context, limit int) ([]model.SurveyGroup, error) {
	var groups []model.SurveyGroup
	err := r.DB.WithContext(ctx).Order("created_at desc").Order("id desc").Limit(limit).Find(&groups).Error
	return groups, err
}

func (r *SurveyGroupRepository) FindByName(ctx context.Context, name string) (*model.SurveyGroup, error) {
	var group model.SurveyGroup
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *SurveyGroupRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.SurveyGroup{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *SurveyGroupRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.SurveyGroup{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *SurveyGroupRepository) Create(ctx context.Context, group *model.SurveyGroup) error {
	return r.DB.WithContext(ctx).Create(group).Error
}

func (r *SurveyGroupRepository) Update(ctx context.Context, group *model.SurveyGroup) error {
	return r.DB.WithContext(ctx).Save(group).Error
}

// Delete 级联删除分组下的问题、选项和答题结果
func (r *SurveyGroupRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		surveyIDs := tx.Model(&model.Survey{}).Select("id").Where("survey_group_id = ?", id)
		if err := tx.Where("survey_id IN (?)", surveyIDs).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id IN (?)", surveyIDs).Delete(&model.Result{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_group_id = ?", id).Delete(&model.Survey{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SurveyGroup{}, id).Error
	})
}
