package service

import (
	"context"
	"errors"
	"fmt"
	"survey_backend/internal/model"
	"survey_backend/internal/util"
	"survey_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ResultService struct {
	Repo ResultStore
}

func NewResultService(repo ResultStore) *ResultService {
	return &ResultService{Repo: repo}
}

func (s *ResultService) GetResult(ctx context.Context, userID, surveyID uint) (*model.Result, error) {
	result, err := s.Repo.FindByUserAndSurvey(ctx, userID, surveyID)
	if err != nil {
		return nil, notFound(err, util.ErrResultNotFound)
	}
	return result, nil
}

func (s *ResultService) GetResultByID(ctx context.Context, id uint) (*model.Result, error) {
	result, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("result %d: %w", id, notFound(err, util.ErrResultNotFound))
	}
	return result, nil
}

func (s *ResultService) ResultExists(ctx context.Context, userID, surveyID uint) (bool, error) {
	exists, err := s.Repo.ExistsByUserAndSurvey(ctx, userID, surveyID)
	if err != nil {
		return false, err
	}
	if exists {
		logger.Log.Debug("result already recorded", zap.Uint("userID", userID), zap.Uint("surveyID", surveyID))
	}
	return exists, nil
}

// CreateResult 每个 (用户, 问题) 只允许一条结果
func (s *ResultService) CreateResult(ctx context.Context, userID, surveyID uint, userResult string) (*model.Result, error) {
	exists, err := s.Repo.ExistsByUserAndSurvey(ctx, userID, surveyID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrResultExists
	}

	result := &model.Result{UserID: userID, SurveyID: surveyID, UserResult: userResult}
	err = s.Repo.Create(ctx, result)
	// 并发写入时由唯一索引兜底
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, util.ErrResultExists
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ResultService) UpdateResult(ctx context.Context, id uint, userResult string) (*model.Result, error) {
	result, err := s.GetResultByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result.UserResult = userResult
	if err := s.Repo.Update(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ResultService) DeleteResult(ctx context.Context, id uint) error {
	if _, err := s.GetResultByID(ctx, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
