package repository

import (
	"context"
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type SurveyTypeRepository struct {
	DB *gorm.DB
}

func NewSurveyTypeRepository(db *gorm.DB) *SurveyTypeRepository {
	return &SurveyTypeRepository{DB: db}
}

func (r *SurveyTypeRepository) FindAll(ctx context.Context) ([]model.SurveyType, error) {
	var types []model.SurveyType
	err := r.DB.WithContext(ctx).Order("id asc").Find(&types).Error
	return types, err
}

func (r *SurveyTypeRepository) FindByID(ctx context.Context, id uint) (*model.SurveyType, error) {
	var t model.SurveyType
	err := r.DB.WithContext(ctx).First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SurveyTypeRepository) FindByFlags(ctx context.Context, multipleChoice, quiz bool) (*model.SurveyType, error) {
	var t model.SurveyType
	err := r.DB.WithContext(ctx).
		Where("multiple_choice = ? AND quiz = ?", multipleChoice, quiz).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SurveyTypeRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.SurveyType{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
