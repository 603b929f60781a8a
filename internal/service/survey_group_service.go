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

// SurveyGroupInput 创建/更新分组的参数
type SurveyGroupInput struct {
	Name         string
	SurveyTypeID uint
}

type SurveyGroupService struct {
	Repo  SurveyGroupStore
	Types SurveyTypeStore
}

func NewSurveyGroupService(repo SurveyGroupStore, types SurveyTypeStore) *SurveyGroupService {
	return &SurveyGroupService{Repo: repo, Types: types}
}

// NormalizeGroupName 分组名大小写不敏感，统一以小写存储
func NormalizeGroupName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *SurveyGroupService) ListSurveyGroups(ctx context.Context) ([]model.SurveyGroup, error) {
	return s.Repo.FindAll(ctx)
}

func (s *SurveyGroupService) ListRecentSurveyGroups(ctx context.Context, limit int) ([]model.SurveyGroup, error) {
	if limit <= 0 {
		return []model.SurveyGroup{}, nil
	}
	return s.Repo.FindRecent(ctx, limit)
}

func (s *SurveyGroupService) GetSurveyGroupByName(ctx context.Context, name string) (*model.SurveyGroup, error) {
	normalized := NormalizeGroupName(name)
	if normalized == "" {
		return nil, util.ErrSurveyGroupNotFound
	}
	group, err := s.Repo.FindByName(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("survey group %q: %w", normalized, notFound(err, util.ErrSurveyGroupNotFound))
	}
	return group, nil
}

func (s *SurveyGroupService) checkType(ctx context.Context, typeID uint) error {
	ok, err := s.Types.ExistsByID(ctx, typeID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("survey type %d: %w", typeID, util.ErrSurveyTypeNotFound)
	}
	return nil
}

func (s *SurveyGroupService) CreateSurveyGroup(ctx context.Context, in SurveyGroupInput) (*model.SurveyGroup, error) {
	name := NormalizeGroupName(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: survey group name must not be empty", util.ErrValidation)
	}

	exists, err := s.Repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrSurveyGroupExists
	}
	if err := s.checkType(ctx, in.SurveyTypeID); err != nil {
		return nil, err
	}

	group := &model.SurveyGroup{Name: name, SurveyTypeID: in.SurveyTypeID}
	if err := s.Repo.Create(ctx, group); err != nil {
		return nil, err
	}
	logger.Log.Info("survey group created", zap.String("name", name), zap.Uint("id", group.ID))
	return group, nil
}

func (s *SurveyGroupService) UpdateSurveyGroup(ctx context.Context, name string, in SurveyGroupInput) (*model.SurveyGroup, error) {
	group, err := s.GetSurveyGroupByName(ctx, name)
	if err != nil {
		return nil, err
	}

	newName := NormalizeGroupName(in.Name)
	if newName == "" {
		return nil, fmt.Errorf("%w: survey group name must not be empty", util.ErrValidation)
	}
	if newName != group.Name {
		exists, err := s.Repo.ExistsByName(ctx, newName)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, util.ErrSurveyGroupExists
		}
	}
	if err := s.checkType(ctx, in.SurveyTypeID); err != nil {
		return nil, err
	}

	group.Name = newName
	group.SurveyTypeID = in.SurveyTypeID
	if err := s.Repo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *SurveyGroupService) DeleteSurveyGroup(ctx context.Context, name string) error {
	group, err := s.GetSurveyGroupByName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, group.ID); err != nil {
		return err
	}
	logger.Log.Info("survey group deleted", zap.String("name", group.Name))
	return nil
}
