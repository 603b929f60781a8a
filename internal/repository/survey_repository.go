package repository

import (
	"context"
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type SurveyRepository struct {
	DB *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{DB: db}
}

func orderedAnswers(db *gorm.DB) *gorm.DB {
	return db.Order("answers.id asc")
}

func (r *SurveyRepository) FindByGroupID(ctx context.Context, groupID uint, withAnswers bool) ([]model.Survey, error) {
	var surveys []model.Survey
	q := r.DB.WithContext(ctx).Where("survey_group_id = ?", groupID).Order("id asc")
	if withAnswers {
		q = q.Preload("Answers", orderedAnswers)
	}
	err := q.Find(&surveys).Error
	return surveys, err
}

func (r *SurveyRepository) FindByID(ctx context.Context, id uint) (*model.Survey, error) {
	var survey model.Survey
	err := r.DB.WithContext(ctx).Preload("Answers", orderedAnswers).First(&survey, id).Error
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *SurveyRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Survey, error) {
	var surveys []model.Survey
	if len(ids) == 0 {
		return surveys, nil
	}
	err := r.DB.WithContext(ctx).Preload("Answers", orderedAnswers).Where("id IN ?", ids).Find(&surveys).Error
	return surveys, err
}

func (r *SurveyRepository) Create(ctx context.Context, survey *model.Survey) error {
	return r.DB.WithContext(ctx).Create(survey).Error
}

func (r *SurveyRepository) Update(ctx context.Context, survey *model.Survey) error {
	return r.DB.WithContext(ctx).Omit("Answers").Save(survey).Error
}

func (r *SurveyRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("survey_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.Result{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Survey{}, id).Error
	})
}
