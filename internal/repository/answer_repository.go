package repository

import (
	"context"
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) FindBySurveyID(ctx context.Context, surveyID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.WithContext(ctx).Where("survey_id = ?", surveyID).Order("id asc").Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) FindByID(ctx context.Context, id uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.DB.WithContext(ctx).First(&answer, id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepository) Create(ctx context.Context, answer *model.Answer) error {
	return r.DB.WithContext(ctx).Create(answer).Error
}

func (r *AnswerRepository) Update(ctx context.Context, answer *model.Answer) error {
	return r.DB.WithContext(ctx).Save(answer).Error
}

func (r *AnswerRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&model.Answer{}, id).Error
}
