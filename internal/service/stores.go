package service

import (
	"context"
	"errors"
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

// 各 service 依赖的存储接口，由 repository 包中的 gorm 实现满足

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	UpdatePassword(ctx context.Context, userID uint, hashed string) error
	AddRole(ctx context.Context, user *model.User, role *model.Role) error
	RemoveRole(ctx context.Context, user *model.User, role *model.Role) error
	Delete(ctx context.Context, user *model.User) error
}

type RoleStore interface {
	FindByName(ctx context.Context, name string) (*model.Role, error)
	Create(ctx context.Context, role *model.Role) error
	FindOrCreate(ctx context.Context, name string) (*model.Role, error)
}

type SurveyTypeStore interface {
	FindAll(ctx context.Context) ([]model.SurveyType, error)
	FindByID(ctx context.Context, id uint) (*model.SurveyType, error)
	FindByFlags(ctx context.Context, multipleChoice, quiz bool) (*model.SurveyType, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

type SurveyGroupStore interface {
	FindAll(ctx context.Context) ([]model.SurveyGroup, error)
	FindRecent(ctx context.Context, limit int) ([]model.SurveyGroup, error)
	FindByName(ctx context.Context, name string) (*model.SurveyGroup, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, group *model.SurveyGroup) error
	Update(ctx context.Context, group *model.SurveyGroup) error
	Delete(ctx context.Context, id uint) error
}

type SurveyStore interface {
	FindByGroupID(ctx context.Context, groupID uint, withAnswers bool) ([]model.Survey, error)
	FindByID(ctx context.Context, id uint) (*model.Survey, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Survey, error)
	Create(ctx context.Context, survey *model.Survey) error
	Update(ctx context.Context, survey *model.Survey) error
	Delete(ctx context.Context, id uint) error
}

type AnswerStore interface {
	FindBySurveyID(ctx context.Context, surveyID uint) ([]model.Answer, error)
	FindByID(ctx context.Context, id uint) (*model.Answer, error)
	Create(ctx context.Context, answer *model.Answer) error
	Update(ctx context.Context, answer *model.Answer) error
	Delete(ctx context.Context, id uint) error
}

type ResultStore interface {
	FindByUserAndSurvey(ctx context.Context, userID, surveyID uint) (*model.Result, error)
	FindByID(ctx context.Context, id uint) (*model.Result, error)
	ExistsByUserAndSurvey(ctx context.Context, userID, surveyID uint) (bool, error)
	FindByGroupID(ctx context.Context, groupID uint) ([]model.Result, error)
	Create(ctx context.Context, result *model.Result) error
	Update(ctx context.Context, result *model.Result) error
	Delete(ctx context.Context, id uint) error
}

// notFound 把 gorm 的未找到错误替换为业务哨兵错误
func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
