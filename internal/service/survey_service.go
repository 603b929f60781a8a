package service

import (
	"context"
	"fmt"
	"strings"
	"survey_backend/internal/model"
	"survey_backend/internal/util"
	"survey_backend/pkg/logger"

	"go.uber.org/zap"
)

type SurveyInput struct {
	Question     string
	SurveyTypeID uint
}

type SurveyService struct {
	Repo   SurveyStore
	Groups SurveyGroupStore
}

func NewSurveyService(repo SurveyStore, groups SurveyGroupStore) *SurveyService {
	return &SurveyService{Repo: repo, Groups: groups}
}

func (s *SurveyService) ensureGroup(ctx context.Context, groupID uint) error {
	ok, err := s.Groups.ExistsByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("survey group %d: %w", groupID, util.ErrSurveyGroupNotFound)
	}
	return nil
}

func (s *SurveyService) ListSurveysInGroup(ctx context.Context, groupID uint, withAnswers bool) ([]model.Survey, error) {
	if err := s.ensureGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.Repo.FindByGroupID(ctx, groupID, withAnswers)
}

// ListSurveysWithAnswers 机器人组装问卷时使用，选项按 id 升序
func (s *SurveyService) ListSurveysWithAnswers(ctx context.Context, groupID uint) ([]model.Survey, error) {
	surveys, err := s.Repo.FindByGroupID(ctx, groupID, true)
	if err != nil {
		return nil, err
	}
	if surveys == nil {
		surveys = []model.Survey{}
	}
	return surveys, nil
}

func (s *SurveyService) GetSurveyByID(ctx context.Context, id uint) (*model.Survey, error) {
	survey, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("survey %d: %w", id, notFound(err, util.ErrSurveyNotFound))
	}
	return survey, nil
}

func (s *SurveyService) CreateSurvey(ctx context.Context, groupID uint, in SurveyInput) (*model.Survey, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: survey question must not be empty", util.ErrValidation)
	}
	if err := s.ensureGroup(ctx, groupID); err != nil {
		return nil, err
	}

	existing, err := s.Repo.FindByGroupID(ctx, groupID, false)
	if err != nil {
		return nil, err
	}
	for _, sv := range existing {
		if strings.EqualFold(sv.Question, question) {
			logger.Log.Warn("survey already in group", zap.Uint("groupID", groupID), zap.String("question", question))
			return nil, util.ErrSurveyExists
		}
	}

	survey := &model.Survey{
		Question:      question,
		SurveyTypeID:  in.SurveyTypeID,
		SurveyGroupID: groupID,
	}
	if err := s.Repo.Create(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) UpdateSurvey(ctx context.Context, id uint, in SurveyInput) (*model.Survey, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: survey question must not be empty", util.ErrValidation)
	}
	survey, err := s.GetSurveyByID(ctx, id)
	if err != nil {
		return nil, err
	}

	survey.Question = question
	survey.SurveyTypeID = in.SurveyTypeID
	if err := s.Repo.Update(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) DeleteSurvey(ctx context.Context, id uint) error {
	if _, err := s.GetSurveyByID(ctx, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
