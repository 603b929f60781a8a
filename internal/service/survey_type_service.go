package service

import (
	"context"
	"fmt"
	"survey_backend/internal/model"
	"survey_backend/internal/util"
)

type SurveyTypeService struct {
	Repo SurveyTypeStore
}

func NewSurveyTypeService(repo SurveyTypeStore) *SurveyTypeService {
	return &SurveyTypeService{Repo: repo}
}

func (s *SurveyTypeService) ListSurveyTypes(ctx context.Context) ([]model.SurveyType, error) {
	return s.Repo.FindAll(ctx)
}

func (s *SurveyTypeService) GetSurveyTypeByID(ctx context.Context, id uint) (*model.SurveyType, error) {
	t, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("survey type %d: %w", id, notFound(err, util.ErrSurveyTypeNotFound))
	}
	return t, nil
}

func (s *SurveyTypeService) GetSurveyTypeByFlags(ctx context.Context, multipleChoice, quiz bool) (*model.SurveyType, error) {
	t, err := s.Repo.FindByFlags(ctx, multipleChoice, quiz)
	if err != nil {
		return nil, notFound(err, util.ErrSurveyTypeNotFound)
	}
	return t, nil
}
