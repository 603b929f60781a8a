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

type AnswerInput struct {
	Text     string
	Correct  bool
	SurveyID uint
}

type AnswerService struct {
	Repo    AnswerStore
	Surveys SurveyStore
}

func NewAnswerService(repo AnswerStore, surveys SurveyStore) *AnswerService {
	return &AnswerService{Repo: repo, Surveys: surveys}
}

func (s *AnswerService) ListAnswersInSurvey(ctx context.Context, surveyID uint) ([]model.Answer, error) {
	if _, err := s.Surveys.FindByID(ctx, surveyID); err != nil {
		return nil, fmt.Errorf("survey %d: %w", surveyID, notFound(err, util.ErrSurveyNotFound))
	}
	return s.Repo.FindBySurveyID(ctx, surveyID)
}

func (s *AnswerService) GetAnswerByID(ctx context.Context, id uint) (*model.Answer, error) {
	answer, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("answer %d: %w", id, notFound(err, util.ErrAnswerNotFound))
	}
	return answer, nil
}

// validate 同一问题下选项文本不重复，且最多一个正确选项；skipID 为更新时的自身 id
func (s *AnswerService) validate(ctx context.Context, in AnswerInput, skipID uint) error {
	siblings, err := s.Repo.FindBySurveyID(ctx, in.SurveyID)
	if err != nil {
		return err
	}
	for _, a := range siblings {
		if a.ID == skipID {
			continue
		}
		if strings.EqualFold(a.Text, in.Text) {
			logger.Log.Warn("answer already in survey", zap.Uint("surveyID", in.SurveyID), zap.String("answer", in.Text))
			return util.ErrAnswerExists
		}
		if in.Correct && a.Correct {
			return util.ErrCorrectAnswerExists
		}
	}
	return nil
}

func (s *AnswerService) CreateAnswer(ctx context.Context, in AnswerInput) (*model.Answer, error) {
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		return nil, fmt.Errorf("%w: answer must not be empty", util.ErrValidation)
	}
	if _, err := s.Surveys.FindByID(ctx, in.SurveyID); err != nil {
		return nil, fmt.Errorf("survey %d: %w", in.SurveyID, notFound(err, util.ErrSurveyNotFound))
	}
	if err := s.validate(ctx, in, 0); err != nil {
		return nil, err
	}

	answer := &model.Answer{Text: in.Text, Correct: in.Correct, SurveyID: in.SurveyID}
	if err := s.Repo.Create(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) UpdateAnswer(ctx context.Context, id uint, in AnswerInput) (*model.Answer, error) {
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		return nil, fmt.Errorf("%w: answer must not be empty", util.ErrValidation)
	}
	answer, err := s.GetAnswerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// 选项不允许跨问题移动
	in.SurveyID = answer.SurveyID
	if err := s.validate(ctx, in, id); err != nil {
		return nil, err
	}

	answer.Text = in.Text
	answer.Correct = in.Correct
	if err := s.Repo.Update(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) DeleteAnswer(ctx context.Context, id uint) error {
	if _, err := s.GetAnswerByID(ctx, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
